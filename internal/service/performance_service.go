package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"liftlog/api/internal/domain"
	"liftlog/api/internal/metrics"
	"liftlog/api/internal/progress"
	"liftlog/api/internal/repository"
)

var (
	ErrInvalidPerformance = errors.New("invalid performance observation")
	// ErrLedgerPersistence marks a failed ledger read or write. The observation was not recorded
	// and the caller may retry.
	ErrLedgerPersistence = errors.New("failed to persist performance ledger")
)

type RecordInput struct {
	ExerciseName string
	Weight       float64
	Reps         int
	// Date defaults to the current time.
	Date time.Time
}

type PerformanceService interface {
	// Record folds one observation into the caller's ledger for the exercise and returns the
	// stored entry.
	Record(ctx context.Context, session domain.AuthSession, in RecordInput) (*domain.PerformanceLedgerEntry, error)
	// Get returns the ledger entry, or an entry with no performances when nothing was recorded.
	Get(ctx context.Context, session domain.AuthSession, exerciseName string) (*domain.PerformanceLedgerEntry, error)
	List(ctx context.Context, session domain.AuthSession) ([]domain.PerformanceLedgerEntry, error)
}

type performanceService struct {
	perfRepo repository.PerformanceRepository
	metrics  *metrics.Metrics
}

func NewPerformanceService(perfRepo repository.PerformanceRepository, m *metrics.Metrics) PerformanceService {
	return &performanceService{
		perfRepo: perfRepo,
		metrics:  m,
	}
}

func (s *performanceService) Record(ctx context.Context, session domain.AuthSession, in RecordInput) (*domain.PerformanceLedgerEntry, error) {
	name := strings.TrimSpace(in.ExerciseName)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: exercise name is required", ErrInvalidPerformance)
	case in.Weight < 0 || math.IsNaN(in.Weight) || math.IsInf(in.Weight, 0):
		return nil, fmt.Errorf("%w: weight must be a non-negative number", ErrInvalidPerformance)
	case in.Reps < 0:
		return nil, fmt.Errorf("%w: reps must be non-negative", ErrInvalidPerformance)
	}

	now := time.Now().UTC()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	existing, err := s.perfRepo.Get(ctx, session.UserID, name)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.metrics.CounterLedgerUpdates.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: read %q: %w", ErrLedgerPersistence, name, err)
	}
	if existing == nil {
		existing = &domain.PerformanceLedgerEntry{UserID: session.UserID, ExerciseName: name}
	}

	folded := progress.FoldPerformance(existing, domain.Performance{
		Weight: in.Weight,
		Reps:   in.Reps,
		Date:   date,
	}, now)

	stored, err := s.perfRepo.Upsert(ctx, &folded)
	if err != nil {
		s.metrics.CounterLedgerUpdates.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: upsert %q: %w", ErrLedgerPersistence, name, err)
	}

	s.metrics.CounterLedgerUpdates.WithLabelValues("updated").Inc()
	return stored, nil
}

func (s *performanceService) Get(ctx context.Context, session domain.AuthSession, exerciseName string) (*domain.PerformanceLedgerEntry, error) {
	exerciseName = strings.TrimSpace(exerciseName)
	entry, err := s.perfRepo.Get(ctx, session.UserID, exerciseName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.PerformanceLedgerEntry{
				UserID:          session.UserID,
				ExerciseName:    exerciseName,
				TopPerformances: []domain.Performance{},
			}, nil
		}
		return nil, err
	}
	return entry, nil
}

func (s *performanceService) List(ctx context.Context, session domain.AuthSession) ([]domain.PerformanceLedgerEntry, error) {
	return s.perfRepo.ListByUser(ctx, session.UserID)
}

// ledgerFor picks the entries of the named exercises out of a user's full ledger.
func ledgerFor(all []domain.PerformanceLedgerEntry, names []string) []domain.PerformanceLedgerEntry {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}
	out := []domain.PerformanceLedgerEntry{}
	for _, e := range all {
		if _, ok := wanted[e.ExerciseName]; ok {
			out = append(out, e)
		}
	}
	return out
}
