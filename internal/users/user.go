package users

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

type Units string

const (
	UnitsKg Units = "kg"
	UnitsLb Units = "lb"
)

func (u Units) IsValid() bool {
	return u == UnitsKg || u == UnitsLb
}

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	DisplayName  string `json:"displayName,omitempty"`
	Units        Units  `json:"units"`
	Goals        string `json:"goals,omitempty"`

	// streak counter state, mutated only by the session completion transaction
	CurrentStreak   int     `json:"currentStreak"`
	LongestStreak   int     `json:"longestStreak"`
	LastWorkoutDate *string `json:"lastWorkoutDate,omitempty"` // ISO date, UTC calendar day

	CreatedAt time.Time `json:"createdAt"`
}
