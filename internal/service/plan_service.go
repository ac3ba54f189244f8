package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"liftlog/api/internal/domain"
	"liftlog/api/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPlanNotFound        = errors.New("plan not found")
	ErrInvalidPlan         = errors.New("invalid plan")
	ErrDuplicateExerciseID = errors.New("duplicate exercise id in plan")
)

type PlanInput struct {
	Name      string
	Exercises []domain.PlanExercise
}

type PlanService interface {
	Create(ctx context.Context, session domain.AuthSession, in PlanInput) (*domain.Plan, error)
	Get(ctx context.Context, session domain.AuthSession, planID primitive.ObjectID) (*domain.Plan, error)
	List(ctx context.Context, session domain.AuthSession) ([]domain.Plan, error)
	Update(ctx context.Context, session domain.AuthSession, planID primitive.ObjectID, in PlanInput) (*domain.Plan, error)
	Delete(ctx context.Context, session domain.AuthSession, planID primitive.ObjectID) error
}

type planService struct {
	planRepo repository.PlanRepository
}

func NewPlanService(planRepo repository.PlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

func (s *planService) Create(ctx context.Context, session domain.AuthSession, in PlanInput) (*domain.Plan, error) {
	exercises, err := normalizePlanExercises(in)
	if err != nil {
		return nil, err
	}

	plan := &domain.Plan{
		UserID:    session.UserID,
		Name:      strings.TrimSpace(in.Name),
		Exercises: exercises,
	}
	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

func (s *planService) Get(ctx context.Context, session domain.AuthSession, planID primitive.ObjectID) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, session.UserID, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) List(ctx context.Context, session domain.AuthSession) ([]domain.Plan, error) {
	return s.planRepo.ListByUser(ctx, session.UserID)
}

// Update replaces the plan contents. Exercise ids sent back by the client are kept, new
// exercises get a fresh one, so sessions recorded before the edit still line up.
func (s *planService) Update(ctx context.Context, session domain.AuthSession, planID primitive.ObjectID, in PlanInput) (*domain.Plan, error) {
	plan, err := s.Get(ctx, session, planID)
	if err != nil {
		return nil, err
	}

	exercises, err := normalizePlanExercises(in)
	if err != nil {
		return nil, err
	}
	plan.Name = strings.TrimSpace(in.Name)
	plan.Exercises = exercises

	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) Delete(ctx context.Context, session domain.AuthSession, planID primitive.ObjectID) error {
	if err := s.planRepo.Delete(ctx, session.UserID, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

func normalizePlanExercises(in PlanInput) ([]domain.PlanExercise, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidPlan)
	}

	seen := make(map[string]struct{}, len(in.Exercises))
	out := make([]domain.PlanExercise, 0, len(in.Exercises))
	for i, ex := range in.Exercises {
		ex.Name = strings.TrimSpace(ex.Name)
		if ex.Name == "" {
			return nil, fmt.Errorf("%w: exercise %d has no name", ErrInvalidPlan, i)
		}
		for j, set := range ex.Sets {
			if set.Reps < 0 || set.Weight < 0 {
				return nil, fmt.Errorf("%w: exercise %q set %d is negative", ErrInvalidPlan, ex.Name, j)
			}
		}
		if ex.ExerciseID == "" {
			ex.ExerciseID = uuid.NewString()
		}
		if _, dup := seen[ex.ExerciseID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateExerciseID, ex.ExerciseID)
		}
		seen[ex.ExerciseID] = struct{}{}
		if ex.Sets == nil {
			ex.Sets = []domain.SetRecord{}
		}
		out = append(out, ex)
	}
	return out, nil
}
