package api

import (
	"fmt"
	"net/http"

	"liftlog/api/internal/service"

	"github.com/gin-gonic/gin"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// LogWorkout stores an ad-hoc entry. 207 means the entry was stored but the record update failed.
func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	res, err := h.workoutService.Log(c.Request.Context(), session, service.WorkoutInput{
		ExerciseID:   req.ExerciseID,
		ExerciseName: req.ExerciseName,
		MuscleGroup:  req.MuscleGroup,
		MuscleDetail: req.MuscleDetail,
		Sets:         mapSets(req.Sets),
		Notes:        req.Notes,
		LoggedAt:     derefTime(req.LoggedAt),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if res.LedgerError != nil {
		status = http.StatusMultiStatus
	}
	c.JSON(status, WorkoutLogResponse{
		Entry:       res.Entry,
		Ledger:      res.Ledger,
		LedgerError: errString(res.LedgerError),
	})
}

func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	entries, err := h.workoutService.List(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *WorkoutHandler) GroupedWorkouts(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	summaries, err := h.workoutService.Grouped(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *WorkoutHandler) ExerciseHistory(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	entries, err := h.workoutService.History(c.Request.Context(), session, c.Param("exerciseName"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	entryID, ok := parseObjectIDParam(c, "workoutId")
	if !ok {
		return
	}
	if err := h.workoutService.Delete(c.Request.Context(), session, entryID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
