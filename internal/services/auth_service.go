package services

import (
	"context"
	"errors"
	"log/slog"
	"net/netip"
	"strings"
	"time"

	"github.com/BradenHooton/gestaopro/internal/auth"
	"github.com/BradenHooton/gestaopro/internal/models"
	pkglogger "github.com/BradenHooton/gestaopro/pkg/logger"
)

// LoginLimiter decides whether a login may be attempted at all
type LoginLimiter interface {
	Check(ctx context.Context, identity string, origin netip.Addr) (bool, time.Duration, error)
}

// CredentialVerifier checks a login and password and maintains the ledger
type CredentialVerifier interface {
	Verify(ctx context.Context, identity, secret string, origin netip.Addr) (*models.Account, error)
}

// AuthService runs one login submission through limiter and verifier
type AuthService struct {
	limiter     LoginLimiter
	verifier    CredentialVerifier
	timing      *auth.TimingDelay
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

func NewAuthService(limiter LoginLimiter, verifier CredentialVerifier, timing *auth.TimingDelay, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *AuthService {
	return &AuthService{
		limiter:     limiter,
		verifier:    verifier,
		timing:      timing,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// Login returns the session snapshot for valid credentials.
//
// Recoverable outcomes are returned as models errors: ErrValidation for empty input
// (nothing recorded), *models.RateLimitedError when blocked (verifier not called,
// nothing recorded), or a credential error from the verifier (one attempt recorded).
// Any other error is a storage fault.
func (s *AuthService) Login(ctx context.Context, identity, secret string, origin netip.Addr) (*models.Snapshot, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" || secret == "" {
		return nil, models.ErrValidation
	}

	blocked, remaining, err := s.limiter.Check(ctx, identity, origin)
	if err != nil {
		return nil, err
	}
	if blocked {
		s.auditLogger.LogAuthAttempt(ctx, pkglogger.AuditEvent{
			EventType:     "login_blocked",
			Login:         identity,
			IPAddress:     origin.String(),
			FailureReason: "rate_limited",
		})
		return nil, &models.RateLimitedError{Remaining: remaining}
	}

	start := time.Now()
	account, err := s.verifier.Verify(ctx, identity, secret, origin)
	if err != nil {
		if !models.IsCredentialFailure(err) {
			s.logger.Error("login failed with storage fault", slog.Any("error", err))
			return nil, err
		}

		s.timing.WaitFrom(ctx, start, false)
		s.auditLogger.LogAuthAttempt(ctx, pkglogger.AuditEvent{
			EventType:     "login_failed",
			Login:         identity,
			IPAddress:     origin.String(),
			FailureReason: failureReason(err),
		})
		return nil, err
	}

	s.timing.WaitFrom(ctx, start, true)
	s.auditLogger.LogAuthAttempt(ctx, pkglogger.AuditEvent{
		EventType: "login_success",
		AccountID: account.ID,
		IPAddress: origin.String(),
		Success:   true,
	})

	snapshot := account.Snapshot()
	return &snapshot, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, models.ErrAccountInactive):
		return "account_inactive"
	case errors.Is(err, models.ErrEmployeeInactive):
		return "employee_inactive"
	case errors.Is(err, models.ErrAccessNotAuthorized):
		return "access_not_authorized"
	default:
		return "invalid_credentials"
	}
}
