package plans

import (
	"errors"
	"time"
)

var ErrPlanNotFound = errors.New("plan not found")

// Plan is a user's workout program. At most one plan per user is active,
// enforced by a partial unique index on (user_id) WHERE active.
type Plan struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`

	Days []PlanDay `json:"days,omitempty"`
}

// PlanDay assigns a weekday (0=Sunday .. 6=Saturday, UTC) to a plan.
// A day counts as a workout day only when it holds at least one exercise.
type PlanDay struct {
	ID      int          `json:"id"`
	PlanID  int          `json:"planId"`
	Weekday time.Weekday `json:"weekday"`
	Label   string       `json:"label"`

	Exercises []PlanExercise `json:"exercises,omitempty"`
}

type PlanExercise struct {
	ID         int    `json:"id"`
	PlanDayID  int    `json:"planDayId"`
	ExerciseID string `json:"exerciseId"`
	TargetSets int    `json:"targetSets"`
	TargetReps int    `json:"targetReps"`
	Position   int    `json:"position"`
}
