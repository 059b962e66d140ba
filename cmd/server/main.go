package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/maxviazov/dashboard-service/internal/config"
	"github.com/maxviazov/dashboard-service/internal/logger"
	"github.com/maxviazov/dashboard-service/internal/repository"
	"github.com/maxviazov/dashboard-service/internal/repository/postgres"
	"github.com/maxviazov/dashboard-service/internal/service"
)

const defaultConfigPath = "config.yaml"

func main() {
	path := os.Getenv("APP_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}

	// Load application config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("❌ Config loading failed")
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Logger initialization failed")
	}
	log.Logger = appLogger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Postgres connection failed")
	}
	defer repo.Close()

	conns := postgres.NewConnPool(repo.Pool())
	dashboard := service.NewDashboardService(
		postgres.NewActivityRepository(conns),
		postgres.NewStatsRepository(conns),
		appLogger,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      newHTTPHandler(cfg, appLogger, postgres.NewPinger(repo.Pool()), dashboard),
		ReadTimeout:  seconds(cfg.HTTP.ReadTimeout),
		WriteTimeout: seconds(cfg.HTTP.WriteTimeout),
		IdleTimeout:  seconds(cfg.HTTP.IdleTimeout),
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("version", cfg.App.Version).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		appLogger.Info().Msg("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			appLogger.Error().Err(err).Msg("http server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), seconds(cfg.HTTP.ShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
	appLogger.Info().Msg("service stopped")
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }
