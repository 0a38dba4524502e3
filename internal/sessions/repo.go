package sessions

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

const sessionColumns = `
	id, user_id, date, weekday, plan_id, completed_at, notes, created_at
`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func scanSession(row pgx.Row) (*Session, error) {
	var session Session
	var date time.Time
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&date,
		&session.Weekday,
		&session.PlanID,
		&session.CompletedAt,
		&session.Notes,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	session.Date = pkg.FormatDay(date)
	return &session, nil
}

// GetOrCreate returns the user's session for the date, creating it when
// absent. The insert is conditional on the (user_id, date) constraint, so a
// concurrent call from another device converges on the same row.
func (r *Repo) GetOrCreate(ctx context.Context, userID int, date string, planID *int) (_ *Session, created bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get_or_create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("userId", userID),
		attribute.String("date", date),
	)

	day, err := pkg.ParseDay(date)
	if err != nil {
		return nil, false, fmt.Errorf("parse date: %w", err)
	}

	session, err := scanSession(r.db.QueryRow(
		ctx,
		`
			INSERT INTO session (user_id, date, weekday, plan_id, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, date) DO NOTHING
			RETURNING `+sessionColumns+`
		`,
		userID, day, day.Weekday(), planID, time.Now(),
	))
	if err == nil {
		return session, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("insert session: %w", err)
	}

	// lost the race or the session already existed, read it back
	session, err = r.GetByDate(ctx, userID, date)
	if err != nil {
		return nil, false, err
	}
	return session, false, nil
}

func (r *Repo) Get(ctx context.Context, userID, sessionID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := scanSession(r.db.QueryRow(
		ctx,
		`
			SELECT `+sessionColumns+`
			FROM session
			WHERE id = $1 AND user_id = $2
		`,
		sessionID, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session [query row]: %w", err)
	}

	session.Sets, err = r.ListSets(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("session sets: %w", err)
	}
	return session, nil
}

func (r *Repo) GetByDate(ctx context.Context, userID int, date string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get_by_date")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	day, err := pkg.ParseDay(date)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}

	session, err := scanSession(r.db.QueryRow(
		ctx,
		`
			SELECT `+sessionColumns+`
			FROM session
			WHERE user_id = $1 AND date = $2
		`,
		userID, day,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session by date [query row]: %w", err)
	}

	session.Sets, err = r.ListSets(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("session sets: %w", err)
	}
	return session, nil
}

// GetForUpdate reads the session inside the caller's transaction and locks
// its row until commit.
func (r *Repo) GetForUpdate(ctx context.Context, q db.Querier, userID, sessionID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get_for_update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := scanSession(q.QueryRow(
		ctx,
		`
			SELECT `+sessionColumns+`
			FROM session
			WHERE id = $1 AND user_id = $2
			FOR UPDATE
		`,
		sessionID, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session for update [query row]: %w", err)
	}
	return session, nil
}

// MarkCompleted stamps the session completed. Notes, when given, overwrite
// the stored ones.
func (r *Repo) MarkCompleted(ctx context.Context, q db.Querier, sessionID int, completedAt time.Time, notes *string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.mark_completed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = q.Exec(
		ctx,
		`
			UPDATE session
			SET completed_at = $2, notes = COALESCE($3, notes)
			WHERE id = $1
		`,
		sessionID, completedAt, notes,
	)
	if err != nil {
		return fmt.Errorf("mark session completed: %w", err)
	}
	return nil
}

func (r *Repo) ListSets(ctx context.Context, sessionID int) (_ []SessionSet, err error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    id, session_id, exercise_id, set_index, reps, weight, rpe
			FROM session_set
			WHERE session_id = $1
			ORDER BY exercise_id, set_index
		`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("session sets [query]: %w", err)
	}
	defer rows.Close()

	var sets []SessionSet
	for rows.Next() {
		var set SessionSet
		err := rows.Scan(
			&set.ID,
			&set.SessionID,
			&set.ExerciseID,
			&set.SetIndex,
			&set.Reps,
			&set.Weight,
			&set.RPE,
		)
		if err != nil {
			return nil, fmt.Errorf("session sets [rows scan]: %w", err)
		}
		sets = append(sets, set)
	}

	return sets, rows.Err()
}

// UpsertSet logs a set into the user's session, overwriting a previous log
// of the same (exercise, setIndex). Ownership is checked via the join on
// user_id; a foreign session behaves as missing.
func (r *Repo) UpsertSet(ctx context.Context, userID, sessionID int, set SessionSet) (_ *SessionSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.upsert_set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := r.Get(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	set.SessionID = sessionID
	err = r.db.QueryRow(
		ctx,
		`
			INSERT INTO session_set (session_id, exercise_id, set_index, reps, weight, rpe)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (session_id, exercise_id, set_index) DO UPDATE SET
			    reps = EXCLUDED.reps,
			    weight = EXCLUDED.weight,
			    rpe = EXCLUDED.rpe
			RETURNING id
		`,
		set.SessionID,
		set.ExerciseID,
		set.SetIndex,
		set.Reps,
		set.Weight,
		set.RPE,
	).Scan(&set.ID)
	if err != nil {
		return nil, fmt.Errorf("upsert set: %w", err)
	}

	return &set, nil
}

func (r *Repo) ListRecent(ctx context.Context, userID, limit int) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list_recent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+sessionColumns+`
			FROM session
			WHERE user_id = $1
			ORDER BY date DESC
			LIMIT $2
		`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent sessions [query]: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("recent sessions [rows scan]: %w", err)
		}
		sessions = append(sessions, *session)
	}

	return sessions, rows.Err()
}

// LastWeightForExercise returns the most recently logged set of the exercise
// across the user's sessions, nil when the exercise was never logged.
func (r *Repo) LastWeightForExercise(ctx context.Context, userID int, exerciseID string) (_ *SessionSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.last_weight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var set SessionSet
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
			    ss.id, ss.session_id, ss.exercise_id, ss.set_index, ss.reps, ss.weight, ss.rpe
			FROM session_set ss
			JOIN session s ON s.id = ss.session_id
			WHERE s.user_id = $1 AND ss.exercise_id = $2
			ORDER BY s.date DESC, ss.set_index DESC
			LIMIT 1
		`,
		userID, exerciseID,
	).Scan(
		&set.ID,
		&set.SessionID,
		&set.ExerciseID,
		&set.SetIndex,
		&set.Reps,
		&set.Weight,
		&set.RPE,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last weight [query row]: %w", err)
	}

	return &set, nil
}

// IsCompletedOnDate reports whether the user completed a session on the
// given day. Consumed by the streak calculator.
func (r *Repo) IsCompletedOnDate(ctx context.Context, userID int, date string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.is_completed_on_date")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	day, err := pkg.ParseDay(date)
	if err != nil {
		return false, fmt.Errorf("parse date: %w", err)
	}

	var completed bool
	err = r.db.QueryRow(
		ctx,
		`
			SELECT EXISTS (
				SELECT 1 FROM session
				WHERE user_id = $1 AND date = $2 AND completed_at IS NOT NULL
			)
		`,
		userID, day,
	).Scan(&completed)
	if err != nil {
		return false, fmt.Errorf("completed on date [query row]: %w", err)
	}

	return completed, nil
}
