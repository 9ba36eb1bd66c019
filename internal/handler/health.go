package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/federation-analytics/internal/service"
)

// Pinger is the minimal contract needed from a repository to check readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes liveness, readiness and the system health snapshot.
type HealthHandler struct {
	repo   Pinger
	prober service.HealthProber
	now    func() time.Time
}

func NewHealthHandler(repo Pinger, prober service.HealthProber, now func() time.Time) *HealthHandler {
	return &HealthHandler{repo: repo, prober: prober, now: now}
}

// Liveness responds OK if the process is up; it doesn't check dependencies.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness verifies the database is reachable.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.repo.Ping(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// System returns the prober's snapshot. Probe failures are reported inside
// the body, so the status is always 200.
func (h *HealthHandler) System(c *gin.Context) {
	c.JSON(http.StatusOK, h.prober.Probe(c.Request.Context(), h.now()))
}
