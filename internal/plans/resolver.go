package plans

import (
	"context"
	"errors"
	"fmt"

	"github.com/repforge/repforge/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=resolver_mocks_test.go -package=plans_test

type planReader interface {
	GetActivePlan(ctx context.Context, userID int) (Plan, error)
	WorkoutWeekdays(ctx context.Context, planID int) (Weekdays, error)
}

// Resolver turns a user's active plan into the set of scheduled workout
// weekdays. Having no usable schedule is a normal state, not an error:
// the second return value reports whether a schedule exists at all.
type Resolver struct {
	repo planReader
}

func NewResolver(repo planReader) *Resolver {
	return &Resolver{repo: repo}
}

func (res *Resolver) WorkoutWeekdays(ctx context.Context, userID int) (_ Weekdays, hasSchedule bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "plans.resolver.workout_weekdays")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("userId", userID))

	plan, err := res.repo.GetActivePlan(ctx, userID)
	if errors.Is(err, ErrPlanNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get active plan: %w", err)
	}

	weekdays, err := res.repo.WorkoutWeekdays(ctx, plan.ID)
	if err != nil {
		return 0, false, fmt.Errorf("workout weekdays for plan [%d]: %w", plan.ID, err)
	}

	// a plan whose days hold no exercises schedules nothing
	if weekdays.IsEmpty() {
		return 0, false, nil
	}

	return weekdays, true, nil
}
