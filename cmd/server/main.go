package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/federation-analytics/internal/config"
	"github.com/maxviazov/federation-analytics/internal/handler"
	"github.com/maxviazov/federation-analytics/internal/logger"
	"github.com/maxviazov/federation-analytics/internal/repository"
	"github.com/maxviazov/federation-analytics/internal/repository/postgres"
	"github.com/maxviazov/federation-analytics/internal/service"
)

func main() {
	startedAt := time.Now()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application config
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	repo, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer repo.Close()

	fetcher := postgres.NewRecordFetcher(repo.Pool())
	prober := service.NewHealthProber(fetcher, startedAt, appLogger)
	reports := service.NewReportService(fetcher, prober, service.Options{
		ActiveWindow:  cfg.Analytics.ActiveWindow(),
		TopCategories: cfg.Analytics.TopCategories,
	}, appLogger)

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	handler.Register(engine, handler.Deps{
		Pinger:        postgres.NewPinger(repo.Pool()),
		Reports:       reports,
		Prober:        prober,
		Logger:        appLogger,
		ReportTimeout: cfg.Analytics.ReportTimeout,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("version", cfg.App.Version).Msg("service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		appLogger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			appLogger.Error().Err(err).Msg("http server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Warn().Err(err).Dur("timeout", cfg.HTTP.ShutdownTimeout).Msg("server shutdown timeout")
	}
	appLogger.Info().Msg("service stopped")
}
