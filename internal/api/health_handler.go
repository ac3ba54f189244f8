package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthPingTimeout = 2 * time.Second

func HealthHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()

		now := time.Now().UTC()
		if err := db.Ping(ctx); err != nil {
			log.Warnf("health check: database ping failed: %s", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unavailable",
				"database":  "down",
				"timestamp": now,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"database":  "up",
			"timestamp": now,
		})
	}
}
