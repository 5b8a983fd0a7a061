//go:build integration

package repositories

import (
	"context"
	"testing"

	"github.com/BradenHooton/gestaopro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	t.Run("account with employee", func(t *testing.T) {
		truncateAll(t, db)
		_, err := repo.Create(ctx, &models.Account{
			Login:        "alice",
			PasswordHash: "$2a$04$hash",
			Employee: &models.Employee{
				FirstName:    "Alice",
				LastName:     "Silva",
				Email:        "alice@example.com",
				SystemAccess: true,
				Status:       models.StatusActive,
			},
		})
		require.NoError(t, err)

		account, err := repo.GetByLogin(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, account.IsActive())
		require.NotNil(t, account.EmployeeID)
		require.NotNil(t, account.Employee)
		assert.Equal(t, "Alice", account.Employee.FirstName)
		assert.True(t, account.Employee.SystemAccess)
		assert.True(t, account.Employee.IsActive())

		snapshot := account.Snapshot()
		assert.Equal(t, "Alice", snapshot.DisplayName())
	})

	t.Run("account without employee", func(t *testing.T) {
		truncateAll(t, db)
		_, err := repo.Create(ctx, &models.Account{Login: "admin", PasswordHash: "$2a$04$hash"})
		require.NoError(t, err)

		account, err := repo.GetByLogin(ctx, "admin")
		require.NoError(t, err)
		assert.Nil(t, account.EmployeeID)
		assert.Nil(t, account.Employee)
		assert.Equal(t, models.StatusActive, account.Status)
	})

	t.Run("unknown login", func(t *testing.T) {
		truncateAll(t, db)

		_, err := repo.GetByLogin(ctx, "nobody")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("duplicate login", func(t *testing.T) {
		truncateAll(t, db)
		_, err := repo.Create(ctx, &models.Account{Login: "alice", PasswordHash: "x"})
		require.NoError(t, err)

		_, err = repo.Create(ctx, &models.Account{Login: "alice", PasswordHash: "y"})
		assert.ErrorIs(t, err, models.ErrConflict)
	})
}
