package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/repforge/repforge/internal/achievements"
	"github.com/repforge/repforge/internal/db"
	"github.com/repforge/repforge/internal/telemetry/tracing"
	"github.com/repforge/repforge/internal/users"
	"github.com/repforge/repforge/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type sessionsTxRepo interface {
	GetForUpdate(ctx context.Context, q db.Querier, userID, sessionID int) (*Session, error)
	MarkCompleted(ctx context.Context, q db.Querier, sessionID int, completedAt time.Time, notes *string) error
}

type usersTxRepo interface {
	GetForUpdate(ctx context.Context, q db.Querier, id int) (*users.User, error)
	UpdateStreaks(ctx context.Context, q db.Querier, userID int, currentStreak, longestStreak int, lastWorkoutDate string) error
}

type achievementsUnlocker interface {
	InsertIfAbsent(ctx context.Context, q db.Querier, userID int, typ achievements.Type, metadata map[string]any) (bool, error)
}

// Service runs the session completion pipeline: marking the session done,
// chaining the raw consecutive-day streak, and unlocking crossed streak
// achievements, all in one transaction.
type Service struct {
	db           *pgxpool.Pool
	repo         sessionsTxRepo
	usersRepo    usersTxRepo
	achievements achievementsUnlocker

	// NowFunc is replaceable in tests.
	NowFunc func() time.Time
}

func NewService(
	dbPool *pgxpool.Pool,
	repo sessionsTxRepo,
	usersRepo usersTxRepo,
	achievementsRepo achievementsUnlocker,
) *Service {
	return &Service{
		db:           dbPool,
		repo:         repo,
		usersRepo:    usersRepo,
		achievements: achievementsRepo,
		NowFunc:      time.Now,
	}
}

type StreakUpdate struct {
	Streak          int                 `json:"streak"`
	LongestStreak   int                 `json:"longestStreak"`
	NewAchievements []achievements.Type `json:"newAchievements"`
}

type CompleteResult struct {
	AlreadyCompleted bool         `json:"alreadyCompleted"`
	Streak           StreakUpdate `json:"streak"`
}

// isNextDay reports whether day follows lastDay by exactly one calendar day.
func isNextDay(lastDay, day string) bool {
	last, err := pkg.ParseDay(lastDay)
	if err != nil {
		return false
	}
	current, err := pkg.ParseDay(day)
	if err != nil {
		return false
	}
	return last.AddDate(0, 0, 1).Equal(current)
}

// Complete marks the session completed. The streak moves only on the first
// completion of a day: the session row is locked first, then the user row,
// always in that order, so concurrent completions cannot deadlock and the
// counter moves exactly once. Completing an already-completed session
// refreshes completedAt and notes but leaves the streak alone.
func (s *Service) Complete(ctx context.Context, userID, sessionID int, notes *string) (_ CompleteResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.service.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("userId", userID),
		attribute.Int("sessionId", sessionID),
	)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return CompleteResult{}, err
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

	session, err := s.repo.GetForUpdate(ctx, tx, userID, sessionID)
	if err != nil {
		return CompleteResult{}, err
	}

	wasCompleted := session.Completed()
	if err := s.repo.MarkCompleted(ctx, tx, session.ID, s.NowFunc(), notes); err != nil {
		return CompleteResult{}, err
	}

	user, err := s.usersRepo.GetForUpdate(ctx, tx, userID)
	if err != nil {
		return CompleteResult{}, err
	}

	result := CompleteResult{
		AlreadyCompleted: wasCompleted,
		Streak: StreakUpdate{
			Streak:          user.CurrentStreak,
			LongestStreak:   user.LongestStreak,
			NewAchievements: []achievements.Type{},
		},
	}

	// the streak already advanced for this day (either through this session
	// earlier, or the completion raced with another device)
	if wasCompleted || (user.LastWorkoutDate != nil && *user.LastWorkoutDate == session.Date) {
		return result, nil
	}

	oldStreak := user.CurrentStreak
	newStreak := 1
	if user.LastWorkoutDate != nil && isNextDay(*user.LastWorkoutDate, session.Date) {
		newStreak = oldStreak + 1
	}

	longestStreak := user.LongestStreak
	if newStreak > longestStreak {
		longestStreak = newStreak
	}

	if err := s.usersRepo.UpdateStreaks(ctx, tx, userID, newStreak, longestStreak, session.Date); err != nil {
		return CompleteResult{}, err
	}

	for _, typ := range achievements.NewlyCrossed(oldStreak, newStreak) {
		unlocked, err := s.achievements.InsertIfAbsent(
			ctx, tx, userID, typ,
			map[string]any{"streak": newStreak, "date": session.Date},
		)
		if err != nil {
			return CompleteResult{}, fmt.Errorf("unlock %s: %w", typ, err)
		}
		if unlocked {
			result.Streak.NewAchievements = append(result.Streak.NewAchievements, typ)
		}
	}

	result.Streak.Streak = newStreak
	result.Streak.LongestStreak = longestStreak
	return result, nil
}
