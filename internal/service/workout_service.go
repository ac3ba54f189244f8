package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"liftlog/api/internal/domain"
	"liftlog/api/internal/progress"
	"liftlog/api/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryLimit is how many entries the per-exercise history returns.
const HistoryLimit = 5

var (
	ErrWorkoutNotFound = errors.New("workout entry not found")
	ErrInvalidWorkout  = errors.New("invalid workout entry")
)

type WorkoutInput struct {
	ExerciseID   string
	ExerciseName string
	MuscleGroup  string
	MuscleDetail string
	Sets         []domain.SetRecord
	Notes        string
	// LoggedAt defaults to the current time.
	LoggedAt time.Time
}

// LogResult is the outcome of logging one entry. Ledger is nil when the entry did not count
// towards records or when LedgerError is set.
type LogResult struct {
	Entry       *domain.WorkoutEntry
	Ledger      *domain.PerformanceLedgerEntry
	LedgerError error
}

type WorkoutService interface {
	Log(ctx context.Context, session domain.AuthSession, in WorkoutInput) (*LogResult, error)
	List(ctx context.Context, session domain.AuthSession) ([]domain.WorkoutEntry, error)
	Grouped(ctx context.Context, session domain.AuthSession) ([]domain.ExerciseSummary, error)
	History(ctx context.Context, session domain.AuthSession, exerciseName string) ([]domain.WorkoutEntry, error)
	Delete(ctx context.Context, session domain.AuthSession, entryID primitive.ObjectID) error
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	performance PerformanceService
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository, performance PerformanceService) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		performance: performance,
	}
}

// Log stores an ad-hoc entry and then feeds its best set into the ledger. A ledger failure does
// not undo the stored entry; it is reported in the result.
func (s *workoutService) Log(ctx context.Context, session domain.AuthSession, in WorkoutInput) (*LogResult, error) {
	if err := validateWorkoutInput(in); err != nil {
		return nil, err
	}

	entry := &domain.WorkoutEntry{
		UserID:       session.UserID,
		ExerciseID:   in.ExerciseID,
		ExerciseName: strings.TrimSpace(in.ExerciseName),
		MuscleGroup:  in.MuscleGroup,
		MuscleDetail: in.MuscleDetail,
		Sets:         in.Sets,
		Notes:        in.Notes,
		LoggedAt:     in.LoggedAt,
	}
	id, err := s.workoutRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	result := &LogResult{Entry: entry}
	best, ok := progress.BestSet(entry.Sets)
	if !ok || !progress.CountsTowardRecords(best) {
		return result, nil
	}

	ledger, err := s.performance.Record(ctx, session, RecordInput{
		ExerciseName: entry.ExerciseName,
		Weight:       best.Weight,
		Reps:         best.Reps,
		Date:         entry.LoggedAt,
	})
	if err != nil {
		log.Warnf("workout %s stored but ledger update failed: %s", entry.ID.Hex(), err)
		result.LedgerError = err
		return result, nil
	}
	result.Ledger = ledger
	return result, nil
}

func (s *workoutService) List(ctx context.Context, session domain.AuthSession) ([]domain.WorkoutEntry, error) {
	return s.workoutRepo.ListByUser(ctx, session.UserID)
}

func (s *workoutService) Grouped(ctx context.Context, session domain.AuthSession) ([]domain.ExerciseSummary, error) {
	return s.workoutRepo.Grouped(ctx, session.UserID)
}

func (s *workoutService) History(ctx context.Context, session domain.AuthSession, exerciseName string) ([]domain.WorkoutEntry, error) {
	return s.workoutRepo.ListByExercise(ctx, session.UserID, strings.TrimSpace(exerciseName), HistoryLimit)
}

// Delete removes an entry. The ledger is not rolled back.
func (s *workoutService) Delete(ctx context.Context, session domain.AuthSession, entryID primitive.ObjectID) error {
	if err := s.workoutRepo.Delete(ctx, session.UserID, entryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

func validateWorkoutInput(in WorkoutInput) error {
	if strings.TrimSpace(in.ExerciseName) == "" {
		return fmt.Errorf("%w: exercise name is required", ErrInvalidWorkout)
	}
	if in.MuscleGroup == "" {
		return fmt.Errorf("%w: muscle group is required", ErrInvalidWorkout)
	}
	if err := validateSets(in.Sets); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWorkout, err)
	}
	return nil
}

func validateSets(sets []domain.SetRecord) error {
	for i, set := range sets {
		if set.Reps < 0 || set.Weight < 0 {
			return fmt.Errorf("set %d has negative values", i)
		}
	}
	return nil
}
