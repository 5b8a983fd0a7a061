//go:build integration

package repositories

import (
	"context"
	"io"
	"log"
	"log/slog"
	"testing"
	"time"

	"github.com/BradenHooton/gestaopro/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a Postgres container, applies the embedded migrations and
// registers cleanup with t
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("gestaopro"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(ctx))

	// Suppress goose logs
	goose.SetLogger(log.New(io.Discard, "", 0))

	db := database.NewFromPool(pool, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	require.NoError(t, db.Migrate(ctx))

	return db
}

// truncateAll empties every table for test isolation
func truncateAll(t *testing.T, db *database.DB) {
	t.Helper()
	_, err := db.Pool.Exec(context.Background(),
		`TRUNCATE TABLE sessions, login_attempts, accounts, employees CASCADE`)
	require.NoError(t, err)
}
