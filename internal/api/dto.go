package api

import (
	"time"

	"liftlog/api/internal/domain"
)

// SetRequest requires both fields so a missing value is rejected instead of read as zero.
type SetRequest struct {
	Reps   *int     `json:"reps" binding:"required,min=0"`
	Weight *float64 `json:"weight" binding:"required,min=0"`
}

func mapSets(in []SetRequest) []domain.SetRecord {
	out := make([]domain.SetRecord, 0, len(in))
	for _, s := range in {
		out = append(out, domain.SetRecord{Reps: *s.Reps, Weight: *s.Weight})
	}
	return out
}

type PlanExerciseRequest struct {
	ExerciseID   string       `json:"exerciseId"`
	Name         string       `json:"name" binding:"required"`
	Group        string       `json:"group"`
	MuscleDetail string       `json:"muscleDetail"`
	Sets         []SetRequest `json:"sets" binding:"dive"`
}

type PlanRequest struct {
	Name      string                `json:"name" binding:"required"`
	Exercises []PlanExerciseRequest `json:"exercises" binding:"dive"`
}

type PlanResponse struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Exercises []domain.PlanExercise `json:"exercises"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

func MapPlanToResponse(plan *domain.Plan) PlanResponse {
	exercises := plan.Exercises
	if exercises == nil {
		exercises = []domain.PlanExercise{}
	}
	return PlanResponse{
		ID:        plan.ID.Hex(),
		Name:      plan.Name,
		Exercises: exercises,
		CreatedAt: plan.CreatedAt,
		UpdatedAt: plan.UpdatedAt,
	}
}

func MapPlansToResponse(plans []domain.Plan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, MapPlanToResponse(&plans[i]))
	}
	return out
}

type SessionExerciseRequest struct {
	ExerciseID   string       `json:"exerciseId"`
	Name         string       `json:"name" binding:"required"`
	Group        string       `json:"group"`
	MuscleDetail string       `json:"muscleDetail"`
	Sets         []SetRequest `json:"sets" binding:"dive"`
}

type CompleteSessionRequest struct {
	PlanID      string                   `json:"planId" binding:"required"`
	PlanName    string                   `json:"planName"`
	Exercises   []SessionExerciseRequest `json:"exercises" binding:"dive"`
	CompletedAt *time.Time               `json:"completedAt"`
}

type ExerciseOutcomeResponse struct {
	Name        string                         `json:"name"`
	Skipped     bool                           `json:"skipped,omitempty"`
	EntryID     string                         `json:"entryId,omitempty"`
	Ledger      *domain.PerformanceLedgerEntry `json:"ledger,omitempty"`
	EntryError  string                         `json:"entryError,omitempty"`
	LedgerError string                         `json:"ledgerError,omitempty"`
}

type CompletionResponse struct {
	Session   *domain.WorkoutSession    `json:"session"`
	Exercises []ExerciseOutcomeResponse `json:"exercises"`
	// Partial is true when the session was stored but some entries or records were not.
	Partial bool `json:"partial"`
}

type WorkoutRequest struct {
	ExerciseID   string       `json:"exerciseId"`
	ExerciseName string       `json:"exerciseName" binding:"required"`
	MuscleGroup  string       `json:"muscleGroup" binding:"required"`
	MuscleDetail string       `json:"muscleDetail"`
	Sets         []SetRequest `json:"sets" binding:"dive"`
	Notes        string       `json:"notes"`
	LoggedAt     *time.Time   `json:"loggedAt"`
}

type WorkoutLogResponse struct {
	Entry       *domain.WorkoutEntry           `json:"entry"`
	Ledger      *domain.PerformanceLedgerEntry `json:"ledger,omitempty"`
	LedgerError string                         `json:"ledgerError,omitempty"`
}

type PerformanceRequest struct {
	ExerciseName string     `json:"exerciseName" binding:"required"`
	Weight       *float64   `json:"weight" binding:"required,min=0"`
	Reps         *int       `json:"reps" binding:"required,min=0"`
	Date         *time.Time `json:"date"`
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
