package pkg

import (
	"fmt"
	"time"
)

// DayLayout is the ISO-8601 calendar date layout used for session dates.
// All dates in the system are plain UTC calendar days, no local time zones.
const DayLayout = "2006-01-02"

// ParseDay parses an ISO-8601 calendar date (YYYY-MM-DD) as a UTC midnight instant.
func ParseDay(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date [%s]: %w", s, err)
	}
	return d, nil
}

func FormatDay(d time.Time) string {
	return d.UTC().Format(DayLayout)
}

// DayOf truncates an instant to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
