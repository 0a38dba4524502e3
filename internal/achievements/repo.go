package achievements

import (
	"context"
	"fmt"
	"time"

	"github.com/repforge/repforge/internal/db"
	"github.com/repforge/repforge/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// InsertIfAbsent unlocks the achievement unless the user already holds it.
// The conditional insert rides on the (user_id, type) unique constraint, so
// concurrent unlock attempts leave exactly one row. It takes a Querier so
// callers can run it inside their own transaction.
func (r *Repo) InsertIfAbsent(
	ctx context.Context,
	q db.Querier,
	userID int,
	typ Type,
	metadata map[string]any,
) (unlocked bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.insert_if_absent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("userId", userID),
		attribute.String("type", string(typ)),
	)

	tag, err := q.Exec(
		ctx,
		`
			INSERT INTO achievement (user_id, type, metadata, unlocked_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, type) DO NOTHING
		`,
		userID,
		typ,
		metadata,
		time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("insert achievement: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *Repo) List(ctx context.Context, userID int) (_ []Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    id, user_id, type, metadata, unlocked_at
			FROM achievement
			WHERE user_id = $1
			ORDER BY unlocked_at DESC
		`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("achievements [query]: %w", err)
	}
	defer rows.Close()

	var unlocked []Achievement
	for rows.Next() {
		var a Achievement
		err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Type,
			&a.Metadata,
			&a.UnlockedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("achievements [rows scan]: %w", err)
		}
		unlocked = append(unlocked, a)
	}

	return unlocked, rows.Err()
}
