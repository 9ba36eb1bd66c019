package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/federation-analytics/internal/model"
	"github.com/maxviazov/federation-analytics/internal/repository"
)

type healthProber struct {
	fetcher   repository.RecordFetcher
	startedAt time.Time
	log       zerolog.Logger
}

// NewHealthProber probes the store through fetcher. startedAt is the process
// start used for uptime.
func NewHealthProber(fetcher repository.RecordFetcher, startedAt time.Time, logger zerolog.Logger) HealthProber {
	l := logger.With().Str("module", "service").Str("component", "health").Logger()
	return &healthProber{fetcher: fetcher, startedAt: startedAt, log: l}
}

// Probe reads a single user row and times it. Email and auth have no live
// probe yet and always report healthy.
func (p *healthProber) Probe(ctx context.Context, now time.Time) model.SystemHealth {
	h := model.SystemHealth{
		DatabaseStatus: model.HealthHealthy,
		EmailService:   model.HealthHealthy,
		AuthService:    model.HealthHealthy,
		Uptime:         uptime(p.startedAt, now),
	}

	start := time.Now()
	_, err := p.fetcher.Users(ctx, repository.Filter{Limit: 1})
	h.ResponseTimeMs = time.Since(start).Milliseconds()
	if err != nil {
		h.DatabaseStatus = model.HealthError
		p.log.Warn().Err(err).Int64("response_time_ms", h.ResponseTimeMs).Msg("database probe failed")
	}
	return h
}

func uptime(startedAt, now time.Time) string {
	d := now.Sub(startedAt)
	if d < 0 {
		d = 0
	}
	return d.Truncate(time.Second).String()
}
