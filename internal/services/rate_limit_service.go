package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/netip"
	"time"

	"github.com/BradenHooton/gestaopro/internal/models"
)

// AttemptLedger defines the ledger operations the limiter derives its state from
type AttemptLedger interface {
	RecordAttempt(ctx context.Context, attempt *models.LoginAttempt) error
	CountSince(ctx context.Context, identity string, origin netip.Addr, since time.Time) (models.AttemptCounts, error)
	LatestAttemptTime(ctx context.Context, identity string, origin netip.Addr) (*time.Time, error)
	ClearAttempts(ctx context.Context, identity string, origin netip.Addr) (int64, error)
}

// RateLimitConfig holds configuration for rate limiting behavior
type RateLimitConfig struct {
	MaxAttempts int           // Per identity and, independently, per origin
	Window      time.Duration // Trailing window the attempts are counted over
}

// DefaultRateLimitConfig is five attempts per fifteen minutes
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxAttempts: 5,
		Window:      15 * time.Minute,
	}
}

// RateLimitService decides whether a login may proceed. It keeps no counters of its
// own; every answer is computed from the ledger, so restarts lose nothing.
type RateLimitService struct {
	repo   AttemptLedger
	config RateLimitConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewRateLimitService(repo AttemptLedger, config RateLimitConfig, logger *slog.Logger) *RateLimitService {
	return &RateLimitService{
		repo:   repo,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// CountInWindow counts attempts in the trailing window by identity and by origin
func (s *RateLimitService) CountInWindow(ctx context.Context, identity string, origin netip.Addr) (models.AttemptCounts, error) {
	since := s.now().Add(-s.config.Window)

	counts, err := s.repo.CountSince(ctx, identity, origin, since)
	if err != nil {
		s.logger.Error("failed to count login attempts", slog.Any("error", err))
		return models.AttemptCounts{}, err
	}
	return counts, nil
}

// IsBlocked reports whether either axis has reached the limit.
// Identity and origin are independent: one full bucket is enough.
func (s *RateLimitService) IsBlocked(ctx context.Context, identity string, origin netip.Addr) (bool, error) {
	counts, err := s.CountInWindow(ctx, identity, origin)
	if err != nil {
		return false, err
	}
	return counts.ByIdentity >= s.config.MaxAttempts || counts.ByOrigin >= s.config.MaxAttempts, nil
}

// TimeRemaining is the window measured from the latest attempt matching identity or
// origin, minus now, in whole seconds and never negative
func (s *RateLimitService) TimeRemaining(ctx context.Context, identity string, origin netip.Addr) (time.Duration, error) {
	latest, err := s.repo.LatestAttemptTime(ctx, identity, origin)
	if err != nil {
		s.logger.Error("failed to read latest login attempt", slog.Any("error", err))
		return 0, err
	}
	if latest == nil {
		return 0, nil
	}

	remaining := latest.Add(s.config.Window).Sub(s.now()).Truncate(time.Second)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// Check combines IsBlocked and TimeRemaining. remaining is zero when not blocked.
func (s *RateLimitService) Check(ctx context.Context, identity string, origin netip.Addr) (bool, time.Duration, error) {
	blocked, err := s.IsBlocked(ctx, identity, origin)
	if err != nil || !blocked {
		return false, 0, err
	}

	remaining, err := s.TimeRemaining(ctx, identity, origin)
	if err != nil {
		return true, 0, err
	}

	s.logger.Warn("login rate limited",
		slog.String("origin", origin.String()),
		slog.Duration("remaining", remaining))

	return true, remaining, nil
}

// RecordFailure appends one failed attempt stamped with the server clock
func (s *RateLimitService) RecordFailure(ctx context.Context, identity string, origin netip.Addr) error {
	attempt := &models.LoginAttempt{
		Identity:   identity,
		Origin:     origin,
		OccurredAt: s.now(),
	}

	if err := s.repo.RecordAttempt(ctx, attempt); err != nil {
		s.logger.Error("failed to record login attempt", slog.Any("error", err))
		return err
	}
	return nil
}

// ClearAttempts drops every attempt for identity or origin after a successful login
func (s *RateLimitService) ClearAttempts(ctx context.Context, identity string, origin netip.Addr) error {
	cleared, err := s.repo.ClearAttempts(ctx, identity, origin)
	if err != nil {
		s.logger.Error("failed to clear login attempts", slog.Any("error", err))
		return fmt.Errorf("failed to clear login attempts: %w", err)
	}

	if cleared > 0 {
		s.logger.Debug("login attempts cleared", slog.Int64("rows", cleared))
	}
	return nil
}

// LockoutMinutes renders a remaining duration as whole minutes, rounded up, minimum 1
func LockoutMinutes(remaining time.Duration) int {
	minutes := int(math.Ceil(remaining.Seconds() / 60))
	if minutes < 1 {
		return 1
	}
	return minutes
}
