package api

import (
	"fmt"
	"net/http"

	"liftlog/api/internal/service"

	"github.com/gin-gonic/gin"
)

type PerformanceHandler struct {
	performanceService service.PerformanceService
}

func NewPerformanceHandler(performanceService service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{performanceService: performanceService}
}

func (h *PerformanceHandler) ListPerformance(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	entries, err := h.performanceService.List(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetPerformance returns the ledger entry of one exercise; an exercise without records has
// an empty topPerformances list.
func (h *PerformanceHandler) GetPerformance(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	entry, err := h.performanceService.Get(c.Request.Context(), session, c.Param("exerciseName"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// RecordPerformance folds one observation into the ledger and returns the stored entry.
func (h *PerformanceHandler) RecordPerformance(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	var req PerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.performanceService.Record(c.Request.Context(), session, service.RecordInput{
		ExerciseName: req.ExerciseName,
		Weight:       *req.Weight,
		Reps:         *req.Reps,
		Date:         derefTime(req.Date),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}
