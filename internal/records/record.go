package records

import (
	"math"
	"time"
)

// RecordType is a personal record dimension. Each (user, exercise, type)
// triple holds at most one live record row.
type RecordType string

const (
	RecordWeight RecordType = "weight"
	RecordE1RM   RecordType = "e1rm"
	RecordVolume RecordType = "volume"
)

var RecordTypes = []RecordType{RecordWeight, RecordE1RM, RecordVolume}

type PersonalRecord struct {
	ID            int        `json:"id"`
	UserID        int        `json:"userId"`
	ExerciseID    string     `json:"exerciseId"`
	Type          RecordType `json:"type"`
	Value         float64    `json:"value"`
	PreviousValue *float64   `json:"previousValue,omitempty"`
	Reps          *int       `json:"reps,omitempty"`
	SetDate       string     `json:"setDate"`
	SessionID     int        `json:"sessionId"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// EstimateOneRepMax estimates the one-rep max with the Epley formula,
// rounded to one decimal. A single rep is the lift itself, no estimate.
func EstimateOneRepMax(weight float64, reps int) float64 {
	if reps <= 1 {
		return weight
	}
	return math.Round(weight*(1+float64(reps)/30)*10) / 10
}
