package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/api"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/audit"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/bootstrap"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/config"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	logger.Info("starting MoodMeter API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.Int("ops_port", cfg.OpsPort),
		slog.String("emotion_provider", cfg.EmotionProvider),
		slog.String("frame_source", cfg.FrameSource),
		slog.String("version", bootstrap.Version),
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)

	pipeline, err := bootstrap.NewPipeline(ctx, cfg, logger, m)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}
	defer pipeline.Close()

	// Setup routers
	router := api.NewRouter(logger, &api.Dependencies{
		Analysis: pipeline.Service,
		Audit:    audit.NewSlogLogger(logger),
		Provider: cfg.EmotionProvider,
	})
	router.Setup()

	ops := api.NewOpsRouter(logger, &api.OpsDependencies{
		Gatherer:    prometheus.DefaultGatherer,
		Version:     bootstrap.Version,
		ReadyChecks: pipeline.ReadyChecks(),
	})

	// Start servers in goroutines
	errChan := make(chan error, 2)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- fmt.Errorf("api server: %w", err)
		}
	}()
	go func() {
		addr := fmt.Sprintf(":%d", cfg.OpsPort)
		logger.Info("ops server listening", slog.String("addr", addr))
		if err := ops.Listen(addr); err != nil {
			errChan <- fmt.Errorf("ops server: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errChan:
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down servers...")
	if err := errors.Join(router.Shutdown(shutdownCtx), ops.Shutdown(shutdownCtx)); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	logger.Info("server stopped")

	if serveErr != nil {
		return fmt.Errorf("server error: %w", serveErr)
	}
	return nil
}
