// Command metricsd serves ESB district adoption metrics to the dashboard
// presentation layer. It loads the district dataset once at startup, holds
// it as an immutable snapshot, and answers selection queries over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/greenfleet/esb-district-metrics/internal/adapter/http"
	"github.com/greenfleet/esb-district-metrics/internal/config"
	"github.com/greenfleet/esb-district-metrics/internal/dataset"
	"github.com/greenfleet/esb-district-metrics/internal/observability"
	"github.com/greenfleet/esb-district-metrics/internal/pipeline"
)

func main() {
	// Best effort: a .env file is a dev convenience, not a requirement.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// The dataset is loaded exactly once; a service without its dataset
	// cannot answer anything, so failure here aborts startup.
	snapshot, err := dataset.Load(cfg.DatasetPath, cfg.DatasetSheet)
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}
	logger.Info("dataset loaded",
		"path", snapshot.Path(),
		"rows", snapshot.Len(),
	)

	p := pipeline.New(snapshot, logger, metrics, cfg.ResultCacheSize)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
