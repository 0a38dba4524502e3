package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/repforge/repforge/internal/db"
	"github.com/repforge/repforge/internal/telemetry/tracing"
	"github.com/repforge/repforge/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const userColumns = `
	id, username, password_hash, display_name, units, goals,
	current_streak, longest_streak, last_workout_date, created_at`

func (r *Repo) Create(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if user.Units == "" {
		user.Units = UnitsKg
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO app_user
				(username, password_hash, display_name, units, goals, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
		user.Username, user.PasswordHash, user.DisplayName, user.Units, user.Goals, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	return &user, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return r.scanOne(r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM app_user WHERE id = $1;`,
		id,
	))
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByUsername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.scanOne(r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM app_user WHERE username = $1;`,
		username,
	))
}

type UpdateProfileParams struct {
	DisplayName *string
	Units       *Units
	Goals       *string
}

// UpdateProfile updates only the provided fields, the rest stay untouched.
func (r *Repo) UpdateProfile(ctx context.Context, userID int, params UpdateProfileParams) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE app_user SET
			display_name = COALESCE($1, display_name),
			units = COALESCE($2, units),
			goals = COALESCE($3, goals)
		WHERE id = $4;`,
		params.DisplayName, params.Units, params.Goals, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// GetForUpdate reads the user inside the caller's transaction and locks the
// row until commit. The session completion pipeline relies on this to
// serialize streak updates.
func (r *Repo) GetForUpdate(ctx context.Context, q db.Querier, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getForUpdate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return r.scanOne(q.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM app_user WHERE id = $1 FOR UPDATE;`,
		id,
	))
}

// UpdateStreaks persists the streak counters after a session completion,
// within the caller's transaction.
func (r *Repo) UpdateStreaks(
	ctx context.Context,
	q db.Querier,
	userID int,
	currentStreak, longestStreak int,
	lastWorkoutDate string,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateStreaks")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	lastDay, err := pkg.ParseDay(lastWorkoutDate)
	if err != nil {
		return fmt.Errorf("parse last workout date: %w", err)
	}

	tag, err := q.Exec(
		ctx,
		`UPDATE app_user SET
			current_streak = $1,
			longest_streak = $2,
			last_workout_date = $3
		WHERE id = $4;`,
		currentStreak, longestStreak, lastDay, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) scanOne(row pgx.Row) (*User, error) {
	var u User
	var displayName, goals *string
	var lastWorkoutDate *time.Time
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &displayName, &u.Units, &goals,
		&u.CurrentStreak, &u.LongestStreak, &lastWorkoutDate, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}

	if displayName != nil {
		u.DisplayName = *displayName
	}
	if goals != nil {
		u.Goals = *goals
	}
	if lastWorkoutDate != nil {
		lastDay := pkg.FormatDay(*lastWorkoutDate)
		u.LastWorkoutDate = &lastDay
	}
	return &u, nil
}
