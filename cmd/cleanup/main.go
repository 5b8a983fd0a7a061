// Command cleanup purges old login attempts once and exits. It is meant to be run
// from cron; the outcome is appended to CLEANUP_LOG_FILE and the process exits 1 on
// any failure.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BradenHooton/gestaopro/internal/background"
	"github.com/BradenHooton/gestaopro/internal/config"
	"github.com/BradenHooton/gestaopro/internal/database"
	"github.com/BradenHooton/gestaopro/internal/repositories"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.Load()
	if err != nil {
		// Without configuration the log file location is unknown
		logger.Error("failed to load configuration", slog.Any("error", err))
		return 1
	}

	jobLog := background.NewJobLog(cfg.Cleanup.LogFile, cfg.Cleanup.MaxLogBytes)
	if err := jobLog.Rotate(); err != nil {
		logger.Warn("failed to rotate cleanup log", slog.Any("error", err))
	}

	fail := func(err error) int {
		if logErr := jobLog.Append(background.PurgeFailed(err)); logErr != nil {
			logger.Error("failed to write cleanup log", slog.Any("error", logErr))
		}
		logger.Error("cleanup failed", slog.Any("error", err))
		return 1
	}

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		return fail(fmt.Errorf("database connection: %w", err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sweeper := background.NewSweeper(repositories.NewLoginAttemptRepository(db))
	rows, err := sweeper.Purge(ctx, cfg.Cleanup.RetentionDays)
	if err != nil {
		return fail(err)
	}

	if err := jobLog.Append(background.PurgeSucceeded(rows, cfg.Cleanup.RetentionDays)); err != nil {
		logger.Error("failed to write cleanup log", slog.Any("error", err))
		return 1
	}
	return 0
}
