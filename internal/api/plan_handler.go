package api

import (
	"fmt"
	"net/http"

	"liftlog/api/internal/domain"
	"liftlog/api/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planService    service.PlanService
	sessionService service.SessionService
}

func NewPlanHandler(planService service.PlanService, sessionService service.SessionService) *PlanHandler {
	return &PlanHandler{
		planService:    planService,
		sessionService: sessionService,
	}
}

func planInput(req PlanRequest) service.PlanInput {
	exercises := make([]domain.PlanExercise, 0, len(req.Exercises))
	for _, ex := range req.Exercises {
		exercises = append(exercises, domain.PlanExercise{
			ExerciseID:   ex.ExerciseID,
			Name:         ex.Name,
			Group:        ex.Group,
			MuscleDetail: ex.MuscleDetail,
			Sets:         mapSets(ex.Sets),
		})
	}
	return service.PlanInput{Name: req.Name, Exercises: exercises}
}

// CreatePlan godoc
// @Summary Create a plan template
// @Tags Plans
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), session, planInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	plans, err := h.planService.List(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlansToResponse(plans))
}

// GetPlan returns one plan template of the caller.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	planID, ok := parseObjectIDParam(c, "planId")
	if !ok {
		return
	}

	plan, err := h.planService.Get(c.Request.Context(), session, planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	planID, ok := parseObjectIDParam(c, "planId")
	if !ok {
		return
	}
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), session, planID, planInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	planID, ok := parseObjectIDParam(c, "planId")
	if !ok {
		return
	}

	if err := h.planService.Delete(c.Request.Context(), session, planID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LastSession returns the most recent completed session of the plan, 404 when there is none.
func (h *PlanHandler) LastSession(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	planID, ok := parseObjectIDParam(c, "planId")
	if !ok {
		return
	}

	last, err := h.sessionService.LastSession(c.Request.Context(), session, planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, last)
}

// Resume returns the seeded inputs for executing the plan plus the current records of its exercises.
func (h *PlanHandler) Resume(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	planID, ok := parseObjectIDParam(c, "planId")
	if !ok {
		return
	}

	view, err := h.sessionService.Resume(c.Request.Context(), session, planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
