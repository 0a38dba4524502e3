package achievements

import "time"

// Type identifies an achievement. A user unlocks each type at most once.
type Type string

const (
	TypeFirstPR   Type = "first_pr"
	TypeStreak3   Type = "streak_3"
	TypeStreak7   Type = "streak_7"
	TypeStreak14  Type = "streak_14"
	TypeStreak30  Type = "streak_30"
	TypeStreak60  Type = "streak_60"
	TypeStreak100 Type = "streak_100"
)

// streakThresholds must stay sorted ascending.
var streakThresholds = []struct {
	days int
	typ  Type
}{
	{3, TypeStreak3},
	{7, TypeStreak7},
	{14, TypeStreak14},
	{30, TypeStreak30},
	{60, TypeStreak60},
	{100, TypeStreak100},
}

// NewlyCrossed returns the streak achievement types whose threshold lies in
// (oldStreak, newStreak]. Unlocking stays idempotent regardless: the repo
// insert is conditional on the type not being present yet.
func NewlyCrossed(oldStreak, newStreak int) []Type {
	var crossed []Type
	for _, threshold := range streakThresholds {
		if oldStreak < threshold.days && newStreak >= threshold.days {
			crossed = append(crossed, threshold.typ)
		}
	}
	return crossed
}

type Achievement struct {
	ID         int            `json:"id"`
	UserID     int            `json:"userId"`
	Type       Type           `json:"type"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	UnlockedAt time.Time      `json:"unlockedAt"`
}
