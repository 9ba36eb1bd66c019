package service_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/federation-analytics/internal/model"
	"github.com/maxviazov/federation-analytics/internal/repository"
	"github.com/maxviazov/federation-analytics/internal/service"
)

func TestHealthProber(t *testing.T) {
	started := fixedNow.Add(-90 * time.Minute)

	cases := []struct {
		name   string
		failOn Entity
		wantDB model.HealthStatus
	}{
		{"reachable", "", model.HealthHealthy},
		{"unreachable", repository.EntityUsers, model.HealthError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeFetcher{failOn: tc.failOn}
			p := service.NewHealthProber(f, started, zerolog.New(io.Discard))

			h := p.Probe(context.Background(), fixedNow)

			assert.Equal(t, tc.wantDB, h.DatabaseStatus)
			assert.Equal(t, model.HealthHealthy, h.EmailService)
			assert.Equal(t, model.HealthHealthy, h.AuthService)
			assert.Equal(t, "1h30m0s", h.Uptime)
			assert.GreaterOrEqual(t, h.ResponseTimeMs, int64(0))
			assert.EqualValues(t, 1, f.calls.Load())
		})
	}
}

func TestHealthProber_FailureDoesNotFailReport(t *testing.T) {
	// the dedicated probe is shielded; other sections read users too, so only
	// the prober's own fetch may fail here
	f := &onceFailingUsers{fakeFetcher: seededFetcher()}
	p := service.NewHealthProber(f, fixedNow, zerolog.New(io.Discard))
	svc := newService(f, p)

	rep, err := svc.GenerateWeeklyReport(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, model.HealthError, rep.SystemHealth.DatabaseStatus)
	assert.Equal(t, 2, rep.Users.TotalUsers)
}

// onceFailingUsers fails only limited user reads, which is what the prober issues.
type onceFailingUsers struct {
	*fakeFetcher
}

func (o *onceFailingUsers) Users(ctx context.Context, flt repository.Filter) ([]model.UserRecord, error) {
	if flt.Limit == 1 {
		return nil, repository.NewFetchError(repository.EntityUsers, context.DeadlineExceeded)
	}
	return o.fakeFetcher.Users(ctx, flt)
}
