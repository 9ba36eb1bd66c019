package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/federation-analytics/internal/analytics"
	"github.com/maxviazov/federation-analytics/internal/model"
	"github.com/maxviazov/federation-analytics/internal/repository"
)

type reportService struct {
	fetcher repository.RecordFetcher
	prober  HealthProber
	opts    Options
	log     zerolog.Logger
}

func NewReportService(fetcher repository.RecordFetcher, prober HealthProber, opts Options, logger zerolog.Logger) ReportService {
	l := logger.With().Str("module", "service").Str("component", "report").Logger()
	return &reportService{fetcher: fetcher, prober: prober, opts: opts.withDefaults(), log: l}
}

func (s *reportService) GenerateDailyReport(ctx context.Context) (model.Report, error) {
	return s.GenerateReport(ctx, analytics.PeriodSpec{Preset: analytics.PresetDay})
}

func (s *reportService) GenerateWeeklyReport(ctx context.Context) (model.Report, error) {
	return s.GenerateReport(ctx, analytics.PeriodSpec{Preset: analytics.PresetWeek})
}

func (s *reportService) GenerateMonthlyReport(ctx context.Context) (model.Report, error) {
	return s.GenerateReport(ctx, analytics.PeriodSpec{Preset: analytics.PresetMonth})
}

// GenerateReport resolves the period, then computes the four sections and the
// health snapshot concurrently. The first failing section aborts the run and
// cancels the others' queries; no partial report is ever returned.
func (s *reportService) GenerateReport(ctx context.Context, spec analytics.PeriodSpec) (model.Report, error) {
	now := s.opts.Now().UTC()
	period, err := analytics.ResolvePeriod(spec, now)
	if err != nil {
		return model.Report{}, err
	}

	log := s.log.With().
		Time("period_start", period.Start).
		Time("period_end", period.End).
		Logger()
	started := time.Now()
	log.Debug().Msg("generating report")

	var (
		users        model.UserStats
		competitions model.CompetitionStats
		financial    model.FinancialStats
		clubs        model.ClubStats
		health       model.SystemHealth
	)

	g, gctx := errgroup.WithContext(ctx)
	run := func(section Section, fn func(ctx context.Context) error) {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &AggregationError{Section: section, Err: fmt.Errorf("panic: %v", r)}
				}
			}()
			if err := fn(gctx); err != nil {
				return &AggregationError{Section: section, Err: err}
			}
			return nil
		})
	}

	run(SectionUsers, func(ctx context.Context) error {
		rows, err := s.fetcher.Users(ctx, repository.Filter{})
		if err != nil {
			return err
		}
		users = analytics.ComputeUserStats(rows, period, now, s.opts.ActiveWindow)
		return nil
	})
	run(SectionCompetitions, func(ctx context.Context) error {
		comps, err := s.fetcher.Competitions(ctx, repository.Filter{})
		if err != nil {
			return err
		}
		regs, err := s.fetcher.Registrations(ctx, repository.Filter{})
		if err != nil {
			return err
		}
		competitions = analytics.ComputeCompetitionStats(comps, regs, s.opts.TopCategories)
		return nil
	})
	run(SectionFinancial, func(ctx context.Context) error {
		regs, err := s.fetcher.Registrations(ctx, repository.CreatedIn(period))
		if err != nil {
			return err
		}
		financial = analytics.ComputeFinancialStats(regs, now)
		return nil
	})
	run(SectionClubs, func(ctx context.Context) error {
		rows, err := s.fetcher.Clubs(ctx, repository.Filter{})
		if err != nil {
			return err
		}
		members, err := s.fetcher.AthleteMemberships(ctx, repository.Filter{})
		if err != nil {
			return err
		}
		clubs = analytics.ComputeClubStats(rows, members)
		return nil
	})
	run(SectionHealth, func(ctx context.Context) error {
		health = s.prober.Probe(ctx, now)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(started)).Msg("report generation failed")
		return model.Report{}, err
	}

	report := model.Report{
		ReportDate: now,
		Period:     period,
		Summary: model.ReportSummary{
			TotalUsers:        users.TotalUsers,
			NewUsers:          users.NewUsers,
			TotalCompetitions: competitions.TotalCompetitions,
			TotalRevenue:      financial.TotalRevenue,
			TotalClubs:        clubs.TotalClubs,
		},
		Users:        users,
		Competitions: competitions,
		Financial:    financial,
		Clubs:        clubs,
		SystemHealth: health,
	}

	log.Info().
		Dur("elapsed", time.Since(started)).
		Int("total_users", report.Summary.TotalUsers).
		Int("total_competitions", report.Summary.TotalCompetitions).
		Str("total_revenue", report.Summary.TotalRevenue.String()).
		Msg("report generated")
	return report, nil
}
