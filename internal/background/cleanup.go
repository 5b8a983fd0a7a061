package background

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// AttemptPurger deletes ledger rows older than a cutoff
type AttemptPurger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ExpiredSessionPurger deletes sessions past their expiry
type ExpiredSessionPurger interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// Sweeper applies the login attempt retention policy
type Sweeper struct {
	attempts AttemptPurger
	now      func() time.Time
}

func NewSweeper(attempts AttemptPurger) *Sweeper {
	return &Sweeper{attempts: attempts, now: time.Now}
}

// Purge deletes every attempt older than days whole days and returns the row count
func (s *Sweeper) Purge(ctx context.Context, days int) (int64, error) {
	if days < 1 {
		return 0, fmt.Errorf("retention must be at least one day, got %d", days)
	}

	cutoff := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	rows, err := s.attempts.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge login attempts: %w", err)
	}
	return rows, nil
}

// CleanupManager periodically runs the sweeper and drops expired sessions
type CleanupManager struct {
	sweeper       *Sweeper
	sessions      ExpiredSessionPurger
	retentionDays int
	logger        *slog.Logger
	interval      time.Duration
	stopCh        chan struct{}
}

// NewCleanupManager creates a new cleanup manager. sessions may be nil when the
// session store expires entries on its own.
func NewCleanupManager(
	sweeper *Sweeper,
	sessions ExpiredSessionPurger,
	retentionDays int,
	logger *slog.Logger,
	interval time.Duration,
) *CleanupManager {
	return &CleanupManager{
		sweeper:       sweeper,
		sessions:      sessions,
		retentionDays: retentionDays,
		logger:        logger,
		interval:      interval,
		stopCh:        make(chan struct{}),
	}
}

// Start begins the periodic cleanup task and blocks until stopped
func (cm *CleanupManager) Start(ctx context.Context) {
	ticker := time.NewTicker(cm.interval)
	defer ticker.Stop()

	// Run immediately on startup
	cm.runCleanup(ctx)

	for {
		select {
		case <-ticker.C:
			cm.runCleanup(ctx)
		case <-cm.stopCh:
			cm.logger.Info("cleanup manager stopped")
			return
		case <-ctx.Done():
			cm.logger.Info("cleanup manager context cancelled")
			return
		}
	}
}

// RunOnce runs a single cleanup pass and returns the first failure
func (cm *CleanupManager) RunOnce(ctx context.Context) error {
	cleanupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var errs []error

	rows, err := cm.sweeper.Purge(cleanupCtx, cm.retentionDays)
	if err != nil {
		errs = append(errs, err)
	} else if rows > 0 {
		cm.logger.Info("login attempt cleanup completed",
			slog.Int64("rows_deleted", rows),
			slog.Int("retention_days", cm.retentionDays))
	}

	if cm.sessions != nil {
		rows, err := cm.sessions.DeleteExpired(cleanupCtx)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to purge expired sessions: %w", err))
		} else if rows > 0 {
			cm.logger.Info("expired session cleanup completed", slog.Int64("rows_deleted", rows))
		}
	}

	return errors.Join(errs...)
}

func (cm *CleanupManager) runCleanup(ctx context.Context) {
	if err := cm.RunOnce(ctx); err != nil {
		cm.logger.Error("cleanup failed", slog.Any("error", err))
	}
}

// Stop signals the cleanup manager to stop
func (cm *CleanupManager) Stop() {
	close(cm.stopCh)
}
