package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"liftlog/api/internal/domain"
	"liftlog/api/internal/metrics"
	"liftlog/api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Constants for context keys
const (
	ContextSessionKey   = "authSession"
	ContextRequestIDKey = "requestID"

	HeaderRequestID = "X-Request-ID"
)

// AuthMiddleware verifies the bearer token and stores the resulting domain.AuthSession in the context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		session, err := authService.Authenticate(parts[1], time.Now())
		if err != nil {
			log.WithField("request_id", c.GetString(ContextRequestIDKey)).Debugf("rejected token: %s", err)
			abortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// AdminMiddleware only lets admins through. Must run AFTER AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := getSessionFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, err.Error())
			return
		}
		if !session.IsAdmin {
			abortWithError(c, http.StatusForbidden, "Access denied: admin only")
			return
		}
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

var errSessionExpired = errors.New("session expired")

// getSessionFromContext returns the caller's session, re-checking its expiry: a request may
// outlive the token it started with.
func getSessionFromContext(c *gin.Context) (domain.AuthSession, error) {
	raw, exists := c.Get(ContextSessionKey)
	if !exists {
		return domain.AuthSession{}, errors.New("session not found in context")
	}
	session, ok := raw.(domain.AuthSession)
	if !ok {
		return domain.AuthSession{}, errors.New("invalid session type in context")
	}
	if session.Expired(time.Now()) {
		return domain.AuthSession{}, errSessionExpired
	}
	return session, nil
}

// mustSession fetches the session or aborts the request with 401.
func mustSession(c *gin.Context) (domain.AuthSession, bool) {
	session, err := getSessionFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return domain.AuthSession{}, false
	}
	return session, true
}

// RequestID tags every request with an id, reusing the caller's X-Request-ID when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"request_id": c.GetString(ContextRequestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Debug("request handled")
		}
	}
}

// Metrics records request counts and latencies per route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.CounterRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HistRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// RequestTimeout puts a deadline on the request context so store calls cannot hang a request.
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Recovery turns handler panics into 500s and counts them.
func Recovery(m *metrics.Metrics) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		m.CounterPanics.Inc()
		log.WithField("request_id", c.GetString(ContextRequestIDKey)).Errorf("panic: %v", recovered)
		abortWithError(c, http.StatusInternalServerError, "Internal Server Error")
	})
}
