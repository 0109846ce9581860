package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/matchpulse/sofasync/internal/app"
	"github.com/matchpulse/sofasync/internal/config"
	"github.com/matchpulse/sofasync/internal/observability"
	"github.com/matchpulse/sofasync/internal/platform/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if len(cfg.IngestTournamentIDs) == 0 {
		logger.Error("no tournament ids configured", "hint", "set INGEST_TOURNAMENT_IDS")
		return 2
	}

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}

	components, err := app.BuildComponents(cfg, logger)
	if err != nil {
		logger.Error("build components", "error", err)
		return 1
	}
	defer func() { _ = components.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	var failedRuns atomic.Int64
	var failedBranches atomic.Int64

	workers := pool.New().WithMaxGoroutines(cfg.IngestMaxConcurrentBranches)
	for _, tournamentID := range cfg.IngestTournamentIDs {
		tournamentID := tournamentID
		workers.Go(func() {
			summary, err := components.Ingestion.RunIngestion(ctx, tournamentID, components.RunOptions)
			if err != nil {
				failedRuns.Add(1)
				logger.ErrorContext(ctx, "ingestion run failed",
					"tournament_external_id", tournamentID,
					"error", err,
				)
				return
			}
			failedBranches.Add(int64(len(summary.FailedBranches)))
		})
	}
	workers.Wait()

	logger.Info("ingestion finished",
		"tournaments", len(cfg.IngestTournamentIDs),
		"failed_runs", failedRuns.Load(),
		"failed_branches", failedBranches.Load(),
		"duration", time.Since(started),
	)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("shutdown tracing", "error", err)
	}

	if failedRuns.Load() > 0 || failedBranches.Load() > 0 {
		return 1
	}
	return 0
}
