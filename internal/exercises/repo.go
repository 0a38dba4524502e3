package exercises

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/repforge/repforge/internal/telemetry/tracing"

	"github.com/google/uuid"
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

type ListParams struct {
	MuscleGroup string
}

func (r *Repo) Get(ctx context.Context, exerciseID string) (_ ExerciseType, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exercise ExerciseType
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
			    id, name, muscle_group, description, created_at
			FROM exercise_type
			WHERE id = $1
		`,
		exerciseID,
	).Scan(
		&exercise.ID,
		&exercise.Name,
		&exercise.MuscleGroup,
		&exercise.Description,
		&exercise.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ExerciseType{}, ErrExerciseNotFound
	}
	if err != nil {
		return ExerciseType{}, fmt.Errorf("exercise type [query row]: %w", err)
	}

	return exercise, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []ExerciseType, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if params.MuscleGroup != "" {
		span.SetAttributes(attribute.String("params.muscleGroup", params.MuscleGroup))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    id, name, muscle_group, description, created_at
			FROM exercise_type
			WHERE ($1::text = '' OR muscle_group = $1)
			ORDER BY name
		`,
		params.MuscleGroup,
	)
	if err != nil {
		return nil, fmt.Errorf("exercise types [query]: %w", err)
	}
	defer rows.Close()

	var exerciseTypes []ExerciseType
	for rows.Next() {
		var exercise ExerciseType
		err := rows.Scan(
			&exercise.ID,
			&exercise.Name,
			&exercise.MuscleGroup,
			&exercise.Description,
			&exercise.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("exercise types [rows scan]: %w", err)
		}
		exerciseTypes = append(exerciseTypes, exercise)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exercise types [rows error]: %w", err)
	}

	return exerciseTypes, nil
}

func (r *Repo) Add(ctx context.Context, exercise ExerciseType) (_ ExerciseType, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now()
	}

	_, err = r.db.Exec(
		ctx,
		`
			INSERT INTO exercise_type
			    (id, name, muscle_group, description, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`,
		exercise.ID,
		exercise.Name,
		exercise.MuscleGroup,
		exercise.Description,
		exercise.CreatedAt,
	)
	if err != nil {
		return ExerciseType{}, err
	}

	return exercise, nil
}
