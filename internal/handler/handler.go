package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/federation-analytics/internal/service"
)

// Deps bundles what the routes need. ReportTimeout bounds every report
// generation; zero leaves the request context alone.
type Deps struct {
	Pinger        Pinger
	Reports       service.ReportService
	Prober        service.HealthProber
	Logger        zerolog.Logger
	ReportTimeout time.Duration
	Now           func() time.Time
}

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	r.Use(RequestID(), RequestLogger(d.Logger))

	h := NewHealthHandler(d.Pinger, d.Prober, d.Now)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
			health.GET("/system", h.System)
		}
		NewReportHandler(d.Reports, d.ReportTimeout).Register(api)
	}
}
