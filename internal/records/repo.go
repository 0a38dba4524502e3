package records

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
)

const recordColumns = `
	id, user_id, exercise_id, record_type, value,
	previous_value, reps, set_date, session_id, updated_at
`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func scanRecord(row pgx.Row) (PersonalRecord, error) {
	var pr PersonalRecord
	var setDate time.Time
	err := row.Scan(
		&pr.ID,
		&pr.UserID,
		&pr.ExerciseID,
		&pr.Type,
		&pr.Value,
		&pr.PreviousValue,
		&pr.Reps,
		&setDate,
		&pr.SessionID,
		&pr.UpdatedAt,
	)
	if err != nil {
		return PersonalRecord{}, err
	}
	pr.SetDate = pkg.FormatDay(setDate)
	return pr, nil
}

// BestForUpdate reads the user's live record for (exercise, type) and locks
// the row for the duration of the caller's transaction. Returns nil when no
// record exists yet.
func (r *Repo) BestForUpdate(
	ctx context.Context,
	q db.Querier,
	userID int,
	exerciseID string,
	recordType RecordType,
) (_ *PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.best_for_update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pr, err := scanRecord(q.QueryRow(
		ctx,
		`
			SELECT `+recordColumns+`
			FROM personal_record
			WHERE user_id = $1 AND exercise_id = $2 AND record_type = $3
			FOR UPDATE
		`,
		userID, exerciseID, recordType,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("best record [query row]: %w", err)
	}

	return &pr, nil
}

// UpsertBest writes the new best value. On conflict the row is updated in
// place and the old value moves into previous_value, atomically.
func (r *Repo) UpsertBest(ctx context.Context, q db.Querier, pr PersonalRecord) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.upsert_best")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	setDate, err := pkg.ParseDay(pr.SetDate)
	if err != nil {
		return fmt.Errorf("parse set date: %w", err)
	}

	_, err = q.Exec(
		ctx,
		`
			INSERT INTO personal_record
			    (user_id, exercise_id, record_type, value, reps, set_date, session_id, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (user_id, exercise_id, record_type) DO UPDATE SET
			    previous_value = personal_record.value,
			    value = EXCLUDED.value,
			    reps = EXCLUDED.reps,
			    set_date = EXCLUDED.set_date,
			    session_id = EXCLUDED.session_id,
			    updated_at = EXCLUDED.updated_at
		`,
		pr.UserID,
		pr.ExerciseID,
		pr.Type,
		pr.Value,
		pr.Reps,
		setDate,
		pr.SessionID,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}

	return nil
}

// Best is the non-locking read of the live record, for speculative checks.
func (r *Repo) Best(
	ctx context.Context,
	userID int,
	exerciseID string,
	recordType RecordType,
) (_ *PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.best")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pr, err := scanRecord(r.db.QueryRow(
		ctx,
		`
			SELECT `+recordColumns+`
			FROM personal_record
			WHERE user_id = $1 AND exercise_id = $2 AND record_type = $3
		`,
		userID, exerciseID, recordType,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("best record [query row]: %w", err)
	}

	return &pr, nil
}

func (r *Repo) listRecords(ctx context.Context, query string, args ...any) ([]PersonalRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("records [query]: %w", err)
	}
	defer rows.Close()

	var prs []PersonalRecord
	for rows.Next() {
		pr, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("records [rows scan]: %w", err)
		}
		prs = append(prs, pr)
	}

	return prs, rows.Err()
}

func (r *Repo) ListForExercise(ctx context.Context, userID int, exerciseID string) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.list_for_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.listRecords(
		ctx,
		`
			SELECT `+recordColumns+`
			FROM personal_record
			WHERE user_id = $1 AND exercise_id = $2
			ORDER BY record_type
		`,
		userID, exerciseID,
	)
}

func (r *Repo) Recent(ctx context.Context, userID, limit int) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.recent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.listRecords(
		ctx,
		`
			SELECT `+recordColumns+`
			FROM personal_record
			WHERE user_id = $1
			ORDER BY updated_at DESC
			LIMIT $2
		`,
		userID, limit,
	)
}

func (r *Repo) AllTime(ctx context.Context, userID int) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.all_time")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.listRecords(
		ctx,
		`
			SELECT `+recordColumns+`
			FROM personal_record
			WHERE user_id = $1
			ORDER BY exercise_id, record_type
		`,
		userID,
	)
}
