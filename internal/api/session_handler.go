package api

import (
	"fmt"
	"net/http"

	"liftlog/api/internal/domain"
	"liftlog/api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SessionHandler struct {
	sessionService service.SessionService
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// CompleteSession godoc
// @Summary Store a finished plan execution
// @Description Stores the session, one workout entry per exercise with sets and the resulting record updates.
// @Tags Sessions
// @Success 201 {object} CompletionResponse "Everything stored"
// @Success 207 {object} CompletionResponse "Session stored, some entries or records failed"
// @Router /sessions [post]
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	var req CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid planId format")
		return
	}

	exercises := make([]domain.SessionExercise, 0, len(req.Exercises))
	for _, ex := range req.Exercises {
		exercises = append(exercises, domain.SessionExercise{
			ExerciseID:   ex.ExerciseID,
			Name:         ex.Name,
			Group:        ex.Group,
			MuscleDetail: ex.MuscleDetail,
			Sets:         mapSets(ex.Sets),
		})
	}

	report, err := h.sessionService.Complete(c.Request.Context(), session, service.CompleteSessionInput{
		PlanID:      planID,
		PlanName:    req.PlanName,
		Exercises:   exercises,
		CompletedAt: derefTime(req.CompletedAt),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := MapCompletionReport(report)
	status := http.StatusCreated
	if resp.Partial {
		status = http.StatusMultiStatus
	}
	c.JSON(status, resp)
}

func (h *SessionHandler) ListSessions(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	sessions, err := h.sessionService.List(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func MapCompletionReport(report *service.CompletionReport) CompletionResponse {
	resp := CompletionResponse{
		Session:   report.Session,
		Exercises: make([]ExerciseOutcomeResponse, 0, len(report.Exercises)),
		Partial:   report.Err() != nil,
	}
	for _, ex := range report.Exercises {
		out := ExerciseOutcomeResponse{
			Name:        ex.Name,
			Skipped:     ex.Skipped,
			Ledger:      ex.Ledger,
			EntryError:  errString(ex.EntryError),
			LedgerError: errString(ex.LedgerError),
		}
		if ex.EntryID != nil {
			out.EntryID = ex.EntryID.Hex()
		}
		resp.Exercises = append(resp.Exercises, out)
	}
	return resp
}
