// Package service holds the reporting use cases: the report orchestrator
// that fans out to the aggregators and the health prober.
// Kept intentionally lean: fetch, delegate to analytics, merge, shape errors.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maxviazov/federation-analytics/internal/analytics"
	"github.com/maxviazov/federation-analytics/internal/model"
)

// ErrAggregation marks a report that could not be assembled because one of
// its sections failed. The underlying cause stays reachable via errors.Is/As.
var ErrAggregation = errors.New("report aggregation failed")

// Section names one concurrently computed part of a report.
type Section string

const (
	SectionUsers        Section = "users"
	SectionCompetitions Section = "competitions"
	SectionFinancial    Section = "financial"
	SectionClubs        Section = "clubs"
	SectionHealth       Section = "health"
)

// AggregationError wraps the first failure of a report run.
type AggregationError struct {
	Section Section
	Err     error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrAggregation, e.Section, e.Err)
}

func (e *AggregationError) Unwrap() []error { return []error{ErrAggregation, e.Err} }

// ReportService generates analytics reports. Every call re-reads the store;
// nothing is cached between calls.
type ReportService interface {
	GenerateReport(ctx context.Context, spec analytics.PeriodSpec) (model.Report, error)
	GenerateDailyReport(ctx context.Context) (model.Report, error)
	GenerateWeeklyReport(ctx context.Context) (model.Report, error)
	GenerateMonthlyReport(ctx context.Context) (model.Report, error)
}

// HealthProber snapshots dependency health. It reports failures as status
// values and never returns an error.
type HealthProber interface {
	Probe(ctx context.Context, now time.Time) model.SystemHealth
}

// Options tunes the report service. Zero values fall back to defaults.
type Options struct {
	ActiveWindow  time.Duration
	TopCategories int
	// Now is the clock read once per report; tests pin it.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.ActiveWindow <= 0 {
		o.ActiveWindow = analytics.DefaultActiveWindow
	}
	if o.TopCategories <= 0 {
		o.TopCategories = analytics.DefaultTopCategories
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
