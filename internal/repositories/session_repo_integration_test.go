//go:build integration

package repositories

import (
	"context"
	"crypto/sha256"
	"testing"
	"time"

	"github.com/BradenHooton/gestaopro/internal/config"
	"github.com/BradenHooton/gestaopro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func tokenHash(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}

func TestSessionRepository(t *testing.T) {
	db := setupTestDB(t)
	accounts := NewAccountRepository(db)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	seed := func(t *testing.T) *models.Account {
		t.Helper()
		truncateAll(t, db)
		account, err := accounts.Create(ctx, &models.Account{Login: "alice", PasswordHash: "x"})
		require.NoError(t, err)
		return account
	}

	t.Run("create get delete", func(t *testing.T) {
		account := seed(t)
		now := time.Now().UTC().Truncate(time.Microsecond)
		session := &models.Session{
			Snapshot:  account.Snapshot(),
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
		}

		require.NoError(t, repo.Create(ctx, tokenHash("t1"), session))

		got, err := repo.Get(ctx, tokenHash("t1"))
		require.NoError(t, err)
		assert.Equal(t, account.ID, got.Snapshot.AccountID)
		assert.Equal(t, "alice", got.Snapshot.Login)

		require.NoError(t, repo.Delete(ctx, tokenHash("t1")))
		_, err = repo.Get(ctx, tokenHash("t1"))
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("expired sessions are invisible and swept", func(t *testing.T) {
		account := seed(t)
		past := time.Now().Add(-2 * time.Hour)
		require.NoError(t, repo.Create(ctx, tokenHash("old"), &models.Session{
			Snapshot:  account.Snapshot(),
			CreatedAt: past,
			ExpiresAt: past.Add(time.Hour),
		}))

		_, err := repo.Get(ctx, tokenHash("old"))
		assert.ErrorIs(t, err, models.ErrNotFound)

		rows, err := repo.DeleteExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
	})

	t.Run("deleting unknown token is fine", func(t *testing.T) {
		seed(t)
		assert.NoError(t, repo.Delete(ctx, tokenHash("missing")))
	})
}

func TestRedisSessionRepository(t *testing.T) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, &config.RedisConfig{Addr: endpoint})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	repo := NewRedisSessionRepository(client)
	first := "Alice"
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("create get delete", func(t *testing.T) {
		session := &models.Session{
			Snapshot:  models.Snapshot{AccountID: "acc-1", Login: "alice", FirstName: &first},
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
		}
		require.NoError(t, repo.Create(ctx, tokenHash("t1"), session))

		got, err := repo.Get(ctx, tokenHash("t1"))
		require.NoError(t, err)
		assert.Equal(t, "acc-1", got.Snapshot.AccountID)
		assert.Equal(t, "Alice", got.Snapshot.DisplayName())
		assert.True(t, got.ExpiresAt.Equal(session.ExpiresAt))

		require.NoError(t, repo.Delete(ctx, tokenHash("t1")))
		_, err = repo.Get(ctx, tokenHash("t1"))
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("key carries ttl", func(t *testing.T) {
		session := &models.Session{
			Snapshot:  models.Snapshot{AccountID: "acc-1", Login: "alice"},
			CreatedAt: now,
			ExpiresAt: time.Now().Add(time.Minute),
		}
		require.NoError(t, repo.Create(ctx, tokenHash("t2"), session))

		ttl, err := client.TTL(ctx, sessionKey(tokenHash("t2"))).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := repo.Get(ctx, tokenHash("missing"))
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
