package records

import (
	"context"
	"fmt"

	"github.com/repforge/repforge/internal/achievements"
	"github.com/repforge/repforge/internal/db"
	"github.com/repforge/repforge/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=detector_mocks_test.go -package=records_test

type recordsRepo interface {
	BestForUpdate(ctx context.Context, q db.Querier, userID int, exerciseID string, recordType RecordType) (*PersonalRecord, error)
	UpsertBest(ctx context.Context, q db.Querier, pr PersonalRecord) error
	Best(ctx context.Context, userID int, exerciseID string, recordType RecordType) (*PersonalRecord, error)
}

type achievementsUnlocker interface {
	InsertIfAbsent(ctx context.Context, q db.Querier, userID int, typ achievements.Type, metadata map[string]any) (bool, error)
}

// Detector compares a logged set against the user's live records and, where
// the set beats one, replaces it while keeping the beaten value as
// previousValue. All record rows for the set move in one transaction.
type Detector struct {
	db           *pgxpool.Pool
	repo         recordsRepo
	achievements achievementsUnlocker
}

func NewDetector(dbPool *pgxpool.Pool, repo recordsRepo, achievementsRepo achievementsUnlocker) *Detector {
	return &Detector{
		db:           dbPool,
		repo:         repo,
		achievements: achievementsRepo,
	}
}

type CheckParams struct {
	UserID     int
	ExerciseID string
	Weight     float64
	Reps       int
	SessionID  int
	Date       string
}

type NewRecord struct {
	Type          RecordType `json:"type"`
	Value         float64    `json:"value"`
	PreviousValue *float64   `json:"previousValue,omitempty"`
}

type CheckResult struct {
	NewRecords      []NewRecord `json:"newRecords"`
	FirstPRUnlocked bool        `json:"firstPrUnlocked"`
}

// candidateValue computes the set's value per record dimension.
func candidateValue(recordType RecordType, weight float64, reps int) float64 {
	switch recordType {
	case RecordWeight:
		return weight
	case RecordE1RM:
		return EstimateOneRepMax(weight, reps)
	case RecordVolume:
		return weight * float64(reps)
	}
	return 0
}

// CheckAndUpdate runs the record check for a logged set. The comparison is
// strict: matching the current best leaves it untouched. The first record a
// user ever sets also unlocks the first_pr achievement, in the same
// transaction.
func (d *Detector) CheckAndUpdate(ctx context.Context, params CheckParams) (_ CheckResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.detector.check_and_update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("userId", params.UserID),
		attribute.String("exerciseId", params.ExerciseID),
	)

	var result CheckResult
	if params.Weight <= 0 || params.Reps <= 0 {
		return result, nil
	}

	tx, err := d.db.Begin(ctx)
	if err != nil {
		return CheckResult{}, err
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

	for _, recordType := range RecordTypes {
		candidate := candidateValue(recordType, params.Weight, params.Reps)

		best, err := d.repo.BestForUpdate(ctx, tx, params.UserID, params.ExerciseID, recordType)
		if err != nil {
			return CheckResult{}, fmt.Errorf("best record for %s: %w", recordType, err)
		}

		var previousValue *float64
		if best != nil {
			if candidate <= best.Value {
				continue
			}
			prev := best.Value
			previousValue = &prev
		}

		reps := params.Reps
		if err := d.repo.UpsertBest(ctx, tx, PersonalRecord{
			UserID:     params.UserID,
			ExerciseID: params.ExerciseID,
			Type:       recordType,
			Value:      candidate,
			Reps:       &reps,
			SetDate:    params.Date,
			SessionID:  params.SessionID,
		}); err != nil {
			return CheckResult{}, fmt.Errorf("upsert %s record: %w", recordType, err)
		}

		result.NewRecords = append(result.NewRecords, NewRecord{
			Type:          recordType,
			Value:         candidate,
			PreviousValue: previousValue,
		})
	}

	if len(result.NewRecords) > 0 {
		unlocked, err := d.achievements.InsertIfAbsent(
			ctx, tx, params.UserID, achievements.TypeFirstPR,
			map[string]any{"exerciseId": params.ExerciseID},
		)
		if err != nil {
			return CheckResult{}, fmt.Errorf("first record achievement: %w", err)
		}
		result.FirstPRUnlocked = unlocked
	}

	return result, nil
}

// WouldBe reports which records the set would beat, without writing anything.
func (d *Detector) WouldBe(ctx context.Context, params CheckParams) (_ []NewRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.detector.would_be")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if params.Weight <= 0 || params.Reps <= 0 {
		return nil, nil
	}

	var wouldBe []NewRecord
	for _, recordType := range RecordTypes {
		candidate := candidateValue(recordType, params.Weight, params.Reps)

		best, err := d.repo.Best(ctx, params.UserID, params.ExerciseID, recordType)
		if err != nil {
			return nil, fmt.Errorf("best record for %s: %w", recordType, err)
		}

		var previousValue *float64
		if best != nil {
			if candidate <= best.Value {
				continue
			}
			prev := best.Value
			previousValue = &prev
		}

		wouldBe = append(wouldBe, NewRecord{
			Type:          recordType,
			Value:         candidate,
			PreviousValue: previousValue,
		})
	}

	return wouldBe, nil
}
