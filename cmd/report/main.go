// Command report loads the weekly COVID-19 dataset, charts the focus
// countries into the output directory, and prints a summary.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"github.com/couchcryptid/covid-focus-report/internal/adapter/chart"
	"github.com/couchcryptid/covid-focus-report/internal/adapter/dataset"
	"github.com/couchcryptid/covid-focus-report/internal/config"
	"github.com/couchcryptid/covid-focus-report/internal/observability"
	"github.com/couchcryptid/covid-focus-report/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg).With("run_id", uuid.NewString())
	metrics := observability.NewMetrics()

	theme, err := chart.NewTheme(cfg.Analysis)
	if err != nil {
		logger.Error("invalid chart theme", "error", err)
		os.Exit(1)
	}

	loader := dataset.NewCSVLoader(cfg.Analysis.InputPath, logger)
	renderers := []pipeline.Renderer{
		chart.NewTimeSeries(theme),
		chart.NewComparison(theme),
		chart.NewVaccination(theme),
		chart.NewFatalityRate(theme),
		chart.NewRecovery(theme),
	}

	p := pipeline.New(loader, renderers, cfg.Analysis, os.Stdout, logger, metrics)
	if cfg.SnapshotWorkbook != "" {
		p.WithWorkbook(cfg.SnapshotWorkbook)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("report started", "input", loader.Path(), "output_dir", cfg.Analysis.OutputDir)
	runErr := p.Run(ctx)

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("metrics textfile failed", "error", err)
		}
	}

	switch {
	case errors.Is(runErr, dataset.ErrInputNotFound):
		name := filepath.Base(loader.Path())
		fmt.Printf("ERROR: '%s' not found!\n", name)
		fmt.Printf("Make sure %s is in the same folder.\n", name)
		stop()
		os.Exit(1)
	case runErr != nil:
		logger.Error("report failed", "error", runErr)
		stop()
		os.Exit(1)
	}

	logger.Info("report complete")
}
