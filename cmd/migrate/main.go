package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/BradenHooton/gestaopro/internal/config"
	"github.com/BradenHooton/gestaopro/internal/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.Migrate(ctx); err != nil {
		logger.Error("migration failed", slog.Any("error", err))
		db.Close()
		os.Exit(1)
	}

	logger.Info("migrations applied")
}
