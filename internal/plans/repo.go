package plans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/repforge/repforge/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) GetActivePlan(ctx context.Context, userID int) (_ Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.get_active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("userId", userID))

	var plan Plan
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
			    id, user_id, name, active, created_at
			FROM plan
			WHERE user_id = $1 AND active
		`,
		userID,
	).Scan(
		&plan.ID,
		&plan.UserID,
		&plan.Name,
		&plan.Active,
		&plan.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Plan{}, ErrPlanNotFound
	}
	if err != nil {
		return Plan{}, fmt.Errorf("active plan [query row]: %w", err)
	}

	return plan, nil
}

// ListDays returns the plan's days with their exercises, ordered by weekday
// then by position within the day.
func (r *Repo) ListDays(ctx context.Context, planID int) (_ []PlanDay, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.list_days")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    id, plan_id, weekday, label
			FROM plan_day
			WHERE plan_id = $1
			ORDER BY weekday
		`,
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("plan days [query]: %w", err)
	}
	defer rows.Close()

	var days []PlanDay
	for rows.Next() {
		var day PlanDay
		if err := rows.Scan(&day.ID, &day.PlanID, &day.Weekday, &day.Label); err != nil {
			return nil, fmt.Errorf("plan days [rows scan]: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("plan days [rows error]: %w", err)
	}

	for i := range days {
		days[i].Exercises, err = r.listDayExercises(ctx, days[i].ID)
		if err != nil {
			return nil, fmt.Errorf("plan day [%d] exercises: %w", days[i].ID, err)
		}
	}

	return days, nil
}

func (r *Repo) listDayExercises(ctx context.Context, planDayID int) (_ []PlanExercise, err error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    id, plan_day_id, exercise_id, target_sets, target_reps, position
			FROM plan_exercise
			WHERE plan_day_id = $1
			ORDER BY position
		`,
		planDayID,
	)
	if err != nil {
		return nil, fmt.Errorf("plan exercises [query]: %w", err)
	}
	defer rows.Close()

	var planExercises []PlanExercise
	for rows.Next() {
		var pe PlanExercise
		err := rows.Scan(
			&pe.ID,
			&pe.PlanDayID,
			&pe.ExerciseID,
			&pe.TargetSets,
			&pe.TargetReps,
			&pe.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("plan exercises [rows scan]: %w", err)
		}
		planExercises = append(planExercises, pe)
	}

	return planExercises, rows.Err()
}

// WorkoutWeekdays returns the distinct weekdays of the plan that hold at
// least one exercise. Days without exercises do not count as workout days.
func (r *Repo) WorkoutWeekdays(ctx context.Context, planID int) (_ Weekdays, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.workout_weekdays")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT DISTINCT pd.weekday
			FROM plan_day pd
			WHERE pd.plan_id = $1
				AND EXISTS (
					SELECT 1 FROM plan_exercise pe
					WHERE pe.plan_day_id = pd.id
				)
		`,
		planID,
	)
	if err != nil {
		return 0, fmt.Errorf("workout weekdays [query]: %w", err)
	}
	defer rows.Close()

	var weekdays Weekdays
	for rows.Next() {
		var weekday time.Weekday
		if err := rows.Scan(&weekday); err != nil {
			return 0, fmt.Errorf("workout weekdays [rows scan]: %w", err)
		}
		weekdays = weekdays.With(weekday)
	}

	return weekdays, rows.Err()
}

// CreatePlan inserts the plan and makes it the user's active one, in a
// single transaction which first deactivates a previously active plan.
func (r *Repo) CreatePlan(ctx context.Context, plan Plan) (_ Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Plan{}, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if _, err = tx.Exec(
		ctx,
		`UPDATE plan SET active = FALSE WHERE user_id = $1 AND active`,
		plan.UserID,
	); err != nil {
		return Plan{}, fmt.Errorf("deactivate previous plan: %w", err)
	}

	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}
	plan.Active = true

	err = tx.QueryRow(
		ctx,
		`
			INSERT INTO plan (user_id, name, active, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`,
		plan.UserID,
		plan.Name,
		plan.Active,
		plan.CreatedAt,
	).Scan(&plan.ID)
	if err != nil {
		return Plan{}, fmt.Errorf("insert plan: %w", err)
	}

	return plan, nil
}

func (r *Repo) AddDay(ctx context.Context, day PlanDay) (_ PlanDay, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.add_day")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`
			INSERT INTO plan_day (plan_id, weekday, label)
			VALUES ($1, $2, $3)
			RETURNING id
		`,
		day.PlanID,
		day.Weekday,
		day.Label,
	).Scan(&day.ID)
	if err != nil {
		return PlanDay{}, fmt.Errorf("insert plan day: %w", err)
	}

	return day, nil
}

func (r *Repo) AddExercise(ctx context.Context, planExercise PlanExercise) (_ PlanExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.add_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`
			INSERT INTO plan_exercise (plan_day_id, exercise_id, target_sets, target_reps, position)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
		planExercise.PlanDayID,
		planExercise.ExerciseID,
		planExercise.TargetSets,
		planExercise.TargetReps,
		planExercise.Position,
	).Scan(&planExercise.ID)
	if err != nil {
		return PlanExercise{}, fmt.Errorf("insert plan exercise: %w", err)
	}

	return planExercise, nil
}
