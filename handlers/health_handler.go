package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TaskForge/taskforge-backend/logger"
)

// Pinger is satisfied by both pgxpool.Pool and the redis client wrapper.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	cache   Pinger
	version string
}

func NewHealthHandler(db, cache Pinger, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		cache:   cache,
		version: version,
	}
}

// LivenessCheck handles kubernetes liveness probe
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

// ReadinessCheck handles kubernetes readiness probe. The database is a hard
// dependency; the cache is not, requests degrade to unlimited rate limiting
// without it.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	log := logger.GetLogger()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	components := gin.H{"database": "up", "cache": "up"}
	status := http.StatusOK

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			log.Errorw("Database health check failed", "error", err)
			components["database"] = "down"
			status = http.StatusServiceUnavailable
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			log.Warnw("Cache health check failed", "error", err)
			components["cache"] = "down"
		}
	}

	c.JSON(status, gin.H{
		"status":     statusWord(status),
		"version":    h.version,
		"components": components,
	})
}

func statusWord(status int) string {
	if status == http.StatusOK {
		return "up"
	}
	return "down"
}
