package streaks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/repforge/repforge/internal/plans"
	"github.com/repforge/repforge/internal/telemetry/tracing"
	"github.com/repforge/repforge/internal/users"
	"github.com/repforge/repforge/pkg"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	StatusOnTrack = "on_track"
	StatusAtRisk  = "at_risk"

	statusCacheExpireSeconds = 5 * 60
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=streaks_test

type scheduleResolver interface {
	WorkoutWeekdays(ctx context.Context, userID int) (plans.Weekdays, bool, error)
}

type plannedStreakCalculator interface {
	PlannedStreak(ctx context.Context, userID int, asOf time.Time, weekdays plans.Weekdays) (Result, error)
}

type usersReader interface {
	Get(ctx context.Context, id int) (*users.User, error)
}

type StatusResult struct {
	Status string `json:"status"`
	Streak int    `json:"streak"`
}

// StreakData is the stored, write-side view of the streak, maintained by
// session completion. It can differ from the planned streak, which is
// recomputed against the schedule on every read.
type StreakData struct {
	CurrentStreak   int     `json:"currentStreak"`
	LongestStreak   int     `json:"longestStreak"`
	LastWorkoutDate *string `json:"lastWorkoutDate,omitempty"`
}

type Service struct {
	resolver   scheduleResolver
	calculator plannedStreakCalculator
	usersRepo  usersReader
	cache      *freecache.Cache

	// NowFunc is replaceable in tests.
	NowFunc func() time.Time
}

func NewService(
	resolver scheduleResolver,
	calculator plannedStreakCalculator,
	usersRepo usersReader,
) *Service {
	megabyte := 1024 * 1024
	return &Service{
		resolver:   resolver,
		calculator: calculator,
		usersRepo:  usersRepo,
		cache:      freecache.NewCache(2 * megabyte),
		NowFunc:    time.Now,
	}
}

func statusCacheKey(userID int, day string) []byte {
	return []byte(fmt.Sprintf("streak-status||%d||%s", userID, day))
}

// PlannedStreak resolves the user's schedule and computes the streak as of
// the given day. Without a schedule the streak is zero, not an error.
func (s *Service) PlannedStreak(ctx context.Context, userID int, asOf time.Time) (_ Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "streaks.service.planned_streak")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	weekdays, hasSchedule, err := s.resolver.WorkoutWeekdays(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("resolve schedule: %w", err)
	}
	if !hasSchedule {
		return Result{}, nil
	}

	return s.calculator.PlannedStreak(ctx, userID, asOf, weekdays)
}

// Status reports whether the user is on track for today. At risk means
// today is a scheduled workout day with no completed session yet.
func (s *Service) Status(ctx context.Context, userID int) (_ StatusResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "streaks.service.status")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	today := pkg.DayOf(s.NowFunc())
	cacheKey := statusCacheKey(userID, pkg.FormatDay(today))
	if cached, err := s.cache.Get(cacheKey); err == nil {
		var status StatusResult
		if err := json.Unmarshal(cached, &status); err == nil {
			return status, nil
		}
		log.Errorf("unmarshal cached streak status for user %d: %s", userID, err)
	}

	result, err := s.PlannedStreak(ctx, userID, today)
	if err != nil {
		return StatusResult{}, err
	}

	status := StatusResult{
		Status: StatusOnTrack,
		Streak: result.Streak,
	}
	if result.IsWorkoutToday && !result.CompletedToday {
		status.Status = StatusAtRisk
	}

	if statusBytes, err := json.Marshal(status); err == nil {
		if err := s.cache.Set(cacheKey, statusBytes, statusCacheExpireSeconds); err != nil {
			log.Errorf("cache streak status for user %d: %s", userID, err)
		}
	}

	return status, nil
}

// InvalidateStatus drops the cached status for today. Called on session
// completion so the fresh streak shows up immediately.
func (s *Service) InvalidateStatus(userID int) {
	today := pkg.FormatDay(pkg.DayOf(s.NowFunc()))
	s.cache.Del(statusCacheKey(userID, today))
}

func (s *Service) StreakData(ctx context.Context, userID int) (_ StreakData, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "streaks.service.streak_data")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := s.usersRepo.Get(ctx, userID)
	if err != nil {
		return StreakData{}, fmt.Errorf("get user: %w", err)
	}

	return StreakData{
		CurrentStreak:   user.CurrentStreak,
		LongestStreak:   user.LongestStreak,
		LastWorkoutDate: user.LastWorkoutDate,
	}, nil
}
