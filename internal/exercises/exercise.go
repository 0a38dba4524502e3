package exercises

import (
	"errors"
	"time"
)

var ErrExerciseNotFound = errors.New("exercise not found")

var MuscleGroup = struct {
	Biceps    string
	Triceps   string
	Back      string
	Legs      string
	Chest     string
	Shoulders string
	Core      string
	Other     string
}{
	Biceps:    "biceps",
	Triceps:   "triceps",
	Back:      "back",
	Legs:      "legs",
	Chest:     "chest",
	Shoulders: "shoulders",
	Core:      "core",
	Other:     "other",
}

var MuscleGroups = []string{
	MuscleGroup.Biceps,
	MuscleGroup.Triceps,
	MuscleGroup.Back,
	MuscleGroup.Legs,
	MuscleGroup.Chest,
	MuscleGroup.Shoulders,
	MuscleGroup.Core,
	MuscleGroup.Other,
}

// ExerciseType is a catalog entry, e.g. "Bench Press". Sets and personal
// records reference it by ID.
type ExerciseType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MuscleGroup string    `json:"muscleGroup"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
