package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/BradenHooton/gestaopro/internal/database"
	"github.com/BradenHooton/gestaopro/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository keeps server-side sessions in Postgres keyed by token hash
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{pool: db.Pool}
}

func (r *SessionRepository) Create(ctx context.Context, tokenHash []byte, session *models.Session) error {
	query := `
		INSERT INTO sessions (token_hash, account_id, login, employee_id, first_name, last_name, email, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	snap := session.Snapshot
	_, err := r.pool.Exec(ctx, query,
		tokenHash, snap.AccountID, snap.Login, snap.EmployeeID,
		snap.FirstName, snap.LastName, snap.Email,
		session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", database.MapPostgresError(err))
	}

	return nil
}

// Get returns the live session for tokenHash or models.ErrNotFound
func (r *SessionRepository) Get(ctx context.Context, tokenHash []byte) (*models.Session, error) {
	query := `
		SELECT account_id, login, employee_id, first_name, last_name, email, created_at, expires_at
		FROM sessions
		WHERE token_hash = $1 AND expires_at > $2
	`

	var session models.Session
	snap := &session.Snapshot
	err := r.pool.QueryRow(ctx, query, tokenHash, time.Now()).Scan(
		&snap.AccountID, &snap.Login, &snap.EmployeeID,
		&snap.FirstName, &snap.LastName, &snap.Email,
		&session.CreatedAt, &session.ExpiresAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &session, nil
}

// Delete removes the session; deleting an unknown token is not an error
func (r *SessionRepository) Delete(ctx context.Context, tokenHash []byte) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", database.MapPostgresError(err))
	}
	return nil
}

// DeleteExpired removes sessions whose expiry has passed (call periodically)
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", database.MapPostgresError(err))
	}
	return result.RowsAffected(), nil
}
