package repository

//go:generate mockgen -source=$GOFILE -destination=mocks/repository_mocks.go -package=mocks

import (
	"context"

	"liftlog/api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// PlanRepository stores plan templates. Every lookup is scoped to the owning user.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, userID, planID primitive.ObjectID) (*domain.Plan, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error)
	Update(ctx context.Context, plan *domain.Plan) error
	Delete(ctx context.Context, userID, planID primitive.ObjectID) error
}

// WorkoutRepository stores individual workout entries. Entries are append-only.
type WorkoutRepository interface {
	Create(ctx context.Context, entry *domain.WorkoutEntry) (primitive.ObjectID, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutEntry, error)
	// ListByExercise returns the newest entries first, at most limit of them.
	ListByExercise(ctx context.Context, userID primitive.ObjectID, exerciseName string, limit int64) ([]domain.WorkoutEntry, error)
	Grouped(ctx context.Context, userID primitive.ObjectID) ([]domain.ExerciseSummary, error)
	Delete(ctx context.Context, userID, entryID primitive.ObjectID) error
}

// SessionRepository stores completed plan executions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	// GetLastForPlan returns the session with the greatest completedAt, or ErrNotFound.
	GetLastForPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutSession, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error)
}

// PerformanceRepository stores one ledger entry per (user, exercise).
type PerformanceRepository interface {
	Get(ctx context.Context, userID primitive.ObjectID, exerciseName string) (*domain.PerformanceLedgerEntry, error)
	// Upsert replaces the entry for (entry.UserID, entry.ExerciseName), creating it when absent,
	// and returns the stored document.
	Upsert(ctx context.Context, entry *domain.PerformanceLedgerEntry) (*domain.PerformanceLedgerEntry, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.PerformanceLedgerEntry, error)
}

// ContactRepository stores messages from the public contact form.
type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) (primitive.ObjectID, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
