package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"liftlog/api/internal/domain"
	"liftlog/api/internal/repository"
	"liftlog/api/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const exportLinkExpiry = storage.DefaultPresignedURLExpiry

var (
	ErrExportUnavailable = errors.New("data export is not configured")
	ErrExportFailed      = errors.New("failed to export data")
)

// ExportDocument is the JSON file a user downloads.
type ExportDocument struct {
	ExportedAt  time.Time                       `json:"exportedAt"`
	User        *domain.User                    `json:"user"`
	Plans       []domain.Plan                   `json:"plans"`
	Sessions    []domain.WorkoutSession         `json:"sessions"`
	Workouts    []domain.WorkoutEntry           `json:"workouts"`
	Performance []domain.PerformanceLedgerEntry `json:"performance"`
}

type ExportResult struct {
	ObjectKey   string    `json:"objectKey"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type ExportService interface {
	Export(ctx context.Context, session domain.AuthSession) (*ExportResult, error)
}

type exportService struct {
	userRepo    repository.UserRepository
	planRepo    repository.PlanRepository
	sessionRepo repository.SessionRepository
	workoutRepo repository.WorkoutRepository
	perfRepo    repository.PerformanceRepository
	store       storage.ExportStorage
}

// NewExportService builds the export service. store may be nil, in which case every export
// fails with ErrExportUnavailable.
func NewExportService(
	userRepo repository.UserRepository,
	planRepo repository.PlanRepository,
	sessionRepo repository.SessionRepository,
	workoutRepo repository.WorkoutRepository,
	perfRepo repository.PerformanceRepository,
	store storage.ExportStorage,
) ExportService {
	return &exportService{
		userRepo:    userRepo,
		planRepo:    planRepo,
		sessionRepo: sessionRepo,
		workoutRepo: workoutRepo,
		perfRepo:    perfRepo,
		store:       store,
	}
}

func (s *exportService) Export(ctx context.Context, session domain.AuthSession) (*ExportResult, error) {
	if s.store == nil {
		return nil, ErrExportUnavailable
	}

	doc, err := s.collect(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	key := path.Join("exports", session.UserID.Hex(), uuid.NewString()+".json")
	if err := s.store.PutObject(ctx, key, "application/json", body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	url, err := s.store.GeneratePresignedDownloadURL(ctx, key, exportLinkExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	log.Infof("user %s exported %d sessions, %d workouts", session.UserID.Hex(), len(doc.Sessions), len(doc.Workouts))
	return &ExportResult{
		ObjectKey:   key,
		DownloadURL: url,
		ExpiresAt:   doc.ExportedAt.Add(exportLinkExpiry),
	}, nil
}

func (s *exportService) collect(ctx context.Context, session domain.AuthSession) (*ExportDocument, error) {
	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""

	doc := &ExportDocument{
		ExportedAt: time.Now().UTC(),
		User:       user,
	}
	if doc.Plans, err = s.planRepo.ListByUser(ctx, session.UserID); err != nil {
		return nil, err
	}
	if doc.Sessions, err = s.sessionRepo.ListByUser(ctx, session.UserID); err != nil {
		return nil, err
	}
	if doc.Workouts, err = s.workoutRepo.ListByUser(ctx, session.UserID); err != nil {
		return nil, err
	}
	if doc.Performance, err = s.perfRepo.ListByUser(ctx, session.UserID); err != nil {
		return nil, err
	}
	return doc, nil
}
