package repositories

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"github.com/BradenHooton/gestaopro/internal/database"
	"github.com/BradenHooton/gestaopro/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoginAttemptRepository is the attempt ledger: append-only rows removed only by
// a successful login or the retention purge
type LoginAttemptRepository struct {
	pool *pgxpool.Pool
}

func NewLoginAttemptRepository(db *database.DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{pool: db.Pool}
}

// RecordAttempt inserts one attempt row
func (r *LoginAttemptRepository) RecordAttempt(ctx context.Context, attempt *models.LoginAttempt) error {
	query := `
		INSERT INTO login_attempts (id, login, ip, occurred_at)
		VALUES ($1, $2, $3, $4)
	`

	if attempt.ID == "" {
		attempt.ID = uuid.New().String()
	}

	_, err := r.pool.Exec(ctx, query,
		attempt.ID,
		attempt.Identity,
		originBytes(attempt.Origin),
		attempt.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record login attempt: %w", database.MapPostgresError(err))
	}

	return nil
}

// CountSince counts attempts at or after since, once per axis
func (r *LoginAttemptRepository) CountSince(ctx context.Context, identity string, origin netip.Addr, since time.Time) (models.AttemptCounts, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN login = $1 THEN 1 ELSE 0 END), 0) AS by_login,
			COALESCE(SUM(CASE WHEN ip = $2 THEN 1 ELSE 0 END), 0)    AS by_ip
		FROM login_attempts
		WHERE occurred_at >= $3 AND (login = $1 OR ip = $2)
	`

	var byLogin, byIP int64
	err := r.pool.QueryRow(ctx, query, identity, originBytes(origin), since).Scan(&byLogin, &byIP)
	if err != nil {
		return models.AttemptCounts{}, fmt.Errorf("failed to count login attempts: %w", database.MapPostgresError(err))
	}

	return models.AttemptCounts{ByIdentity: int(byLogin), ByOrigin: int(byIP)}, nil
}

// LatestAttemptTime returns the most recent attempt matching identity or origin,
// or nil when there is none
func (r *LoginAttemptRepository) LatestAttemptTime(ctx context.Context, identity string, origin netip.Addr) (*time.Time, error) {
	query := `SELECT MAX(occurred_at) FROM login_attempts WHERE login = $1 OR ip = $2`

	var latest *time.Time
	err := r.pool.QueryRow(ctx, query, identity, originBytes(origin)).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest login attempt: %w", database.MapPostgresError(err))
	}

	return latest, nil
}

// ClearAttempts deletes every row matching identity or origin
func (r *LoginAttemptRepository) ClearAttempts(ctx context.Context, identity string, origin netip.Addr) (int64, error) {
	query := `DELETE FROM login_attempts WHERE login = $1 OR ip = $2`

	result, err := r.pool.Exec(ctx, query, identity, originBytes(origin))
	if err != nil {
		return 0, fmt.Errorf("failed to clear login attempts: %w", database.MapPostgresError(err))
	}

	return result.RowsAffected(), nil
}

// DeleteOlderThan removes attempts that occurred before cutoff
func (r *LoginAttemptRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM login_attempts WHERE occurred_at < $1`

	result, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge login attempts: %w", database.MapPostgresError(err))
	}

	return result.RowsAffected(), nil
}

// originBytes stores IPv4 as 4 bytes and IPv6 as 16
func originBytes(origin netip.Addr) []byte {
	if !origin.IsValid() {
		return netip.IPv4Unspecified().AsSlice()
	}
	return origin.AsSlice()
}
