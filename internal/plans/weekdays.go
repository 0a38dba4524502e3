package plans

import "time"

// Weekdays is a set of weekdays packed into a bitmask, bit N for
// time.Weekday(N). Membership checks are O(1), which matters for the
// streak calculator walking day by day.
type Weekdays uint8

func (w Weekdays) Has(day time.Weekday) bool {
	return w&(1<<uint(day)) != 0
}

func (w Weekdays) With(day time.Weekday) Weekdays {
	return w | 1<<uint(day)
}

func (w Weekdays) IsEmpty() bool {
	return w == 0
}

func (w Weekdays) Count() int {
	count := 0
	for day := time.Sunday; day <= time.Saturday; day++ {
		if w.Has(day) {
			count++
		}
	}
	return count
}

// List returns the member weekdays in Sunday..Saturday order.
func (w Weekdays) List() []time.Weekday {
	var days []time.Weekday
	for day := time.Sunday; day <= time.Saturday; day++ {
		if w.Has(day) {
			days = append(days, day)
		}
	}
	return days
}
