package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"liftlog/api/internal/domain"
	"liftlog/api/internal/metrics"
	"liftlog/api/internal/progress"
	"liftlog/api/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/multierr"
)

var (
	ErrSessionNotFound = errors.New("no completed session for this plan")
	ErrInvalidSession  = errors.New("invalid session")
)

type CompleteSessionInput struct {
	PlanID    primitive.ObjectID
	PlanName  string
	Exercises []domain.SessionExercise
	// CompletedAt defaults to the current time.
	CompletedAt time.Time
}

// ExerciseOutcome reports what happened to one exercise of a completed session.
type ExerciseOutcome struct {
	Name string `json:"name"`
	// Skipped is set for exercises without logged sets; nothing is written for them.
	Skipped     bool                           `json:"skipped,omitempty"`
	EntryID     *primitive.ObjectID            `json:"entryId,omitempty"`
	Ledger      *domain.PerformanceLedgerEntry `json:"ledger,omitempty"`
	EntryError  error                          `json:"-"`
	LedgerError error                          `json:"-"`
}

type CompletionReport struct {
	Session   *domain.WorkoutSession `json:"session"`
	Exercises []ExerciseOutcome      `json:"exercises"`
}

// Err combines every per-exercise failure, or returns nil when all writes succeeded.
func (r *CompletionReport) Err() error {
	var err error
	for _, ex := range r.Exercises {
		if ex.EntryError != nil {
			err = multierr.Append(err, fmt.Errorf("entry %q: %w", ex.Name, ex.EntryError))
		}
		if ex.LedgerError != nil {
			err = multierr.Append(err, fmt.Errorf("ledger %q: %w", ex.Name, ex.LedgerError))
		}
	}
	return err
}

// ResumeView is what the execution screen needs to start a plan run.
type ResumeView struct {
	progress.ResumeState
	LastCompletedAt *time.Time                      `json:"lastCompletedAt,omitempty"`
	Records         []domain.PerformanceLedgerEntry `json:"records"`
}

type SessionService interface {
	// Complete stores the session snapshot and then, per exercise, its workout entry and ledger
	// update. Only a failure to store the snapshot is returned as an error; everything after
	// that is reported per exercise in the report.
	Complete(ctx context.Context, session domain.AuthSession, in CompleteSessionInput) (*CompletionReport, error)
	LastSession(ctx context.Context, session domain.AuthSession, planID primitive.ObjectID) (*domain.WorkoutSession, error)
	Resume(ctx context.Context, session domain.AuthSession, planID primitive.ObjectID) (*ResumeView, error)
	List(ctx context.Context, session domain.AuthSession) ([]domain.WorkoutSession, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	workoutRepo repository.WorkoutRepository
	planRepo    repository.PlanRepository
	perfRepo    repository.PerformanceRepository
	performance PerformanceService
	metrics     *metrics.Metrics
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	workoutRepo repository.WorkoutRepository,
	planRepo repository.PlanRepository,
	perfRepo repository.PerformanceRepository,
	performance PerformanceService,
	m *metrics.Metrics,
) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		workoutRepo: workoutRepo,
		planRepo:    planRepo,
		perfRepo:    perfRepo,
		performance: performance,
		metrics:     m,
	}
}

func (s *sessionService) Complete(ctx context.Context, session domain.AuthSession, in CompleteSessionInput) (*CompletionReport, error) {
	if in.PlanID.IsZero() {
		return nil, fmt.Errorf("%w: plan id is required", ErrInvalidSession)
	}
	// Names are stored trimmed so entries and ledger rows share one key.
	exercises := make([]domain.SessionExercise, len(in.Exercises))
	for i, ex := range in.Exercises {
		ex.Name = strings.TrimSpace(ex.Name)
		if ex.Name == "" {
			return nil, fmt.Errorf("%w: exercise without name", ErrInvalidSession)
		}
		if err := validateSets(ex.Sets); err != nil {
			return nil, fmt.Errorf("%w: exercise %q: %w", ErrInvalidSession, ex.Name, err)
		}
		exercises[i] = ex
	}

	completedAt := in.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
	}
	snapshot := &domain.WorkoutSession{
		UserID:      session.UserID,
		PlanID:      in.PlanID,
		PlanName:    in.PlanName,
		Exercises:   exercises,
		CompletedAt: completedAt,
	}
	id, err := s.sessionRepo.Create(ctx, snapshot)
	if err != nil {
		s.metrics.CounterPersistFailures.WithLabelValues("session").Inc()
		return nil, fmt.Errorf("store session: %w", err)
	}
	snapshot.ID = id
	s.metrics.CounterSessionsCompleted.Inc()

	report := &CompletionReport{
		Session:   snapshot,
		Exercises: make([]ExerciseOutcome, 0, len(in.Exercises)),
	}
	for _, ex := range exercises {
		report.Exercises = append(report.Exercises, s.completeExercise(ctx, session, snapshot, ex))
	}

	if err := report.Err(); err != nil {
		log.Warnf("session %s stored with failures: %s", snapshot.ID.Hex(), err)
	}
	return report, nil
}

// completeExercise writes the entry and the ledger update of one exercise. The two writes do
// not depend on each other.
func (s *sessionService) completeExercise(
	ctx context.Context,
	session domain.AuthSession,
	snapshot *domain.WorkoutSession,
	ex domain.SessionExercise,
) ExerciseOutcome {
	outcome := ExerciseOutcome{Name: ex.Name}
	if len(ex.Sets) == 0 {
		outcome.Skipped = true
		return outcome
	}

	sessionID := snapshot.ID
	entry := &domain.WorkoutEntry{
		UserID:       session.UserID,
		SessionID:    &sessionID,
		ExerciseID:   ex.ExerciseID,
		ExerciseName: ex.Name,
		MuscleGroup:  ex.Group,
		MuscleDetail: ex.MuscleDetail,
		Sets:         ex.Sets,
		LoggedAt:     snapshot.CompletedAt,
	}
	entryID, err := s.workoutRepo.Create(ctx, entry)
	if err != nil {
		s.metrics.CounterPersistFailures.WithLabelValues("entry").Inc()
		outcome.EntryError = err
	} else {
		outcome.EntryID = &entryID
	}

	best, ok := progress.BestSet(ex.Sets)
	if !ok || !progress.CountsTowardRecords(best) {
		return outcome
	}
	ledger, err := s.performance.Record(ctx, session, RecordInput{
		ExerciseName: ex.Name,
		Weight:       best.Weight,
		Reps:         best.Reps,
		Date:         snapshot.CompletedAt,
	})
	if err != nil {
		s.metrics.CounterPersistFailures.WithLabelValues("ledger").Inc()
		outcome.LedgerError = err
		return outcome
	}
	outcome.Ledger = ledger
	return outcome
}

func (s *sessionService) LastSession(ctx context.Context, session domain.AuthSession, planID primitive.ObjectID) (*domain.WorkoutSession, error) {
	last, err := s.sessionRepo.GetLastForPlan(ctx, session.UserID, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return last, nil
}

// Resume seeds the execution screen of a plan. A missing previous session means template
// values; a failed ledger read means no records. Neither is an error.
func (s *sessionService) Resume(ctx context.Context, session domain.AuthSession, planID primitive.ObjectID) (*ResumeView, error) {
	plan, err := s.planRepo.GetByID(ctx, session.UserID, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	last, err := s.sessionRepo.GetLastForPlan(ctx, session.UserID, planID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		last = nil
	}

	view := &ResumeView{
		ResumeState: progress.Resume(*plan, last),
		Records:     []domain.PerformanceLedgerEntry{},
	}
	if last != nil {
		completedAt := last.CompletedAt
		view.LastCompletedAt = &completedAt
	}

	all, err := s.perfRepo.ListByUser(ctx, session.UserID)
	if err != nil {
		log.Warnf("resume plan %s: ledger unavailable: %s", planID.Hex(), err)
		return view, nil
	}
	names := make([]string, 0, len(plan.Exercises))
	for _, ex := range plan.Exercises {
		names = append(names, strings.TrimSpace(ex.Name))
	}
	view.Records = ledgerFor(all, names)
	return view, nil
}

func (s *sessionService) List(ctx context.Context, session domain.AuthSession) ([]domain.WorkoutSession, error) {
	return s.sessionRepo.ListByUser(ctx, session.UserID)
}
