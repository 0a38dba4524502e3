package streaks

import (
	"context"
	"fmt"
	"time"

	"github.com/repforge/repforge/internal/plans"
	"github.com/repforge/repforge/internal/telemetry/tracing"
	"github.com/repforge/repforge/pkg"

	"go.opentelemetry.io/otel/attribute"
)

const (
	// maxLookbackDays bounds the search for the previous scheduled day. A
	// schedule with any workout day repeats within 7 days, so 14 is already
	// generous; it also keeps a degenerate schedule from walking forever.
	maxLookbackDays = 14

	// maxIterations caps the backward walk of the streak count.
	maxIterations = 365
)

// PreviousWorkoutDay returns the latest scheduled workout day strictly
// before day, or false when none lies within maxDaysBack calendar days.
func PreviousWorkoutDay(day time.Time, weekdays plans.Weekdays, maxDaysBack int) (time.Time, bool) {
	for i := 1; i <= maxDaysBack; i++ {
		day = day.AddDate(0, 0, -1)
		if weekdays.Has(day.Weekday()) {
			return day, true
		}
	}
	return time.Time{}, false
}

//go:generate mockgen -source=$GOFILE -destination=calculator_mocks_test.go -package=streaks_test

type completionChecker interface {
	IsCompletedOnDate(ctx context.Context, userID int, date string) (bool, error)
}

// Result is the planned streak as of a day. The streak counts consecutive
// completed scheduled days walking backward; rest days are skipped, and a
// scheduled day not yet completed today leaves the streak intact until the
// day passes.
type Result struct {
	Streak         int  `json:"streak"`
	CompletedToday bool `json:"completedToday"`
	IsWorkoutToday bool `json:"isWorkoutToday"`
}

type Calculator struct {
	sessions completionChecker
}

func NewCalculator(sessions completionChecker) *Calculator {
	return &Calculator{sessions: sessions}
}

func (c *Calculator) PlannedStreak(
	ctx context.Context,
	userID int,
	asOf time.Time,
	weekdays plans.Weekdays,
) (_ Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "streaks.calculator.planned_streak")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("userId", userID),
		attribute.String("asOf", pkg.FormatDay(asOf)),
	)

	asOf = pkg.DayOf(asOf)

	var result Result
	result.IsWorkoutToday = weekdays.Has(asOf.Weekday())

	if result.IsWorkoutToday {
		result.CompletedToday, err = c.sessions.IsCompletedOnDate(ctx, userID, pkg.FormatDay(asOf))
		if err != nil {
			return Result{}, fmt.Errorf("completed on %s: %w", pkg.FormatDay(asOf), err)
		}
	}

	// a completed workout today opens the count; an uncompleted one (or a
	// rest day) just moves the cursor to the previous scheduled day
	cursor := asOf
	if result.IsWorkoutToday && result.CompletedToday {
		result.Streak = 1
	}

	cursor, found := PreviousWorkoutDay(cursor, weekdays, maxLookbackDays)
	if !found {
		return result, nil
	}

	for i := 0; i < maxIterations; i++ {
		completed, err := c.sessions.IsCompletedOnDate(ctx, userID, pkg.FormatDay(cursor))
		if err != nil {
			return Result{}, fmt.Errorf("completed on %s: %w", pkg.FormatDay(cursor), err)
		}
		if !completed {
			break
		}

		result.Streak++

		cursor, found = PreviousWorkoutDay(cursor, weekdays, maxLookbackDays)
		if !found {
			break
		}
	}

	return result, nil
}
