// Package analytics turns raw federation records into report sections.
// Everything here is a pure function of its inputs: callers pass the row sets
// and a single "now" instant, and get back a freshly built stats value.
package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/maxviazov/federation-analytics/internal/model"
)

// ErrInvalidPeriod marks malformed or inverted period bounds.
var ErrInvalidPeriod = errors.New("invalid period")

// InvalidPeriodError carries the offending bounds or preset name.
type InvalidPeriodError struct {
	Preset string
	Start  time.Time
	End    time.Time
	Reason string
}

func (e *InvalidPeriodError) Error() string {
	if e.Preset != "" {
		return fmt.Sprintf("%s: %s %q", ErrInvalidPeriod, e.Reason, e.Preset)
	}
	return fmt.Sprintf("%s: %s (start=%s end=%s)", ErrInvalidPeriod, e.Reason,
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func (e *InvalidPeriodError) Unwrap() error { return ErrInvalidPeriod }

// Preset is a named trailing window ending at "now".
type Preset string

const (
	PresetDay     Preset = "day"
	PresetWeek    Preset = "week"
	PresetMonth   Preset = "month"
	PresetQuarter Preset = "quarter"
	PresetYear    Preset = "year"
)

// PeriodSpec selects a period either by preset or by explicit bounds.
// Explicit bounds win when both are given.
type PeriodSpec struct {
	Preset Preset
	Start  *time.Time
	End    *time.Time
}

// ParsePreset accepts a preset name case-insensitively.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PresetDay, PresetWeek, PresetMonth, PresetQuarter, PresetYear:
		return p, nil
	default:
		return "", &InvalidPeriodError{Preset: s, Reason: "unknown preset"}
	}
}

// ResolvePeriod turns spec into a concrete [start, end) interval in UTC.
// Preset windows are subtracted with calendar arithmetic, so "month" before
// March 31 normalises the same way AddDate does rather than using 30 days.
func ResolvePeriod(spec PeriodSpec, now time.Time) (model.AnalyticsPeriod, error) {
	now = now.UTC()

	if spec.Start != nil || spec.End != nil {
		if spec.Start == nil || spec.End == nil {
			return model.AnalyticsPeriod{}, &InvalidPeriodError{Reason: "both start and end are required"}
		}
		start, end := spec.Start.UTC(), spec.End.UTC()
		if start.After(end) {
			return model.AnalyticsPeriod{}, &InvalidPeriodError{Start: start, End: end, Reason: "start is after end"}
		}
		return model.AnalyticsPeriod{Start: start, End: end}, nil
	}

	var start time.Time
	switch spec.Preset {
	case PresetDay:
		start = now.AddDate(0, 0, -1)
	case PresetWeek:
		start = now.AddDate(0, 0, -7)
	case PresetMonth:
		start = now.AddDate(0, -1, 0)
	case PresetQuarter:
		start = now.AddDate(0, -3, 0)
	case PresetYear:
		start = now.AddDate(-1, 0, 0)
	default:
		return model.AnalyticsPeriod{}, &InvalidPeriodError{Preset: string(spec.Preset), Reason: "unknown preset"}
	}
	return model.AnalyticsPeriod{Start: start, End: now}, nil
}
