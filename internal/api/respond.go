package api

import (
	"errors"
	"net/http"

	"liftlog/api/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// statusFor maps service errors to HTTP status codes. Anything unknown is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidPlan),
		errors.Is(err, service.ErrDuplicateExerciseID),
		errors.Is(err, service.ErrInvalidWorkout),
		errors.Is(err, service.ErrInvalidSession),
		errors.Is(err, service.ErrInvalidPerformance),
		errors.Is(err, service.ErrInvalidContact),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrCurrentPasswordRequired),
		errors.Is(err, service.ErrMissingCredentials),
		errors.Is(err, service.ErrMissingRegistration):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAuthenticationFailed),
		errors.Is(err, service.ErrCurrentPasswordWrong):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrMessageNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrExportUnavailable),
		errors.Is(err, service.ErrLedgerPersistence):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError aborts with the mapped status. Internal errors are logged and not echoed back.
func respondError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.WithField("request_id", c.GetString(ContextRequestIDKey)).Errorf("%s %s: %s", c.Request.Method, c.FullPath(), err)
		abortWithError(c, code, "An unexpected error occurred")
		return
	}
	abortWithError(c, code, err.Error())
}

// parseObjectIDParam reads a hex ObjectID path parameter, aborting with 400 when malformed.
func parseObjectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return primitive.NilObjectID, false
	}
	return id, true
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
