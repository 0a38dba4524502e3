package sessions

import (
	"errors"
	"time"
)

// ErrSessionNotFound covers both a missing session and one owned by another
// user; the two cases are indistinguishable to callers.
var ErrSessionNotFound = errors.New("session not found")

// Session is a user's workout on a calendar day (UTC). One session per
// (user, date), enforced by a unique constraint.
type Session struct {
	ID          int          `json:"id"`
	UserID      int          `json:"userId"`
	Date        string       `json:"date"`
	Weekday     time.Weekday `json:"weekday"`
	PlanID      *int         `json:"planId,omitempty"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`

	Sets []SessionSet `json:"sets,omitempty"`
}

func (s *Session) Completed() bool {
	return s.CompletedAt != nil
}

// SessionSet is one logged set. Logging the same (exercise, setIndex) again
// overwrites the previous values.
type SessionSet struct {
	ID         int      `json:"id"`
	SessionID  int      `json:"sessionId"`
	ExerciseID string   `json:"exerciseId"`
	SetIndex   int      `json:"setIndex"`
	Reps       int      `json:"reps"`
	Weight     float64  `json:"weight"`
	RPE        *float64 `json:"rpe,omitempty"`
}
