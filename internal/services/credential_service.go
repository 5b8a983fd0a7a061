package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/netip"

	"github.com/BradenHooton/gestaopro/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// AccountRepository defines the account lookup used by credential checks
type AccountRepository interface {
	GetByLogin(ctx context.Context, login string) (*models.Account, error)
}

// PasswordHasher is the opaque verify(secret, hash) capability
type PasswordHasher interface {
	ComparePassword(hashedPassword, password string) error
	CompareDummy(password string) error
}

// AttemptRecorder writes to the ledger on verifier outcomes
type AttemptRecorder interface {
	RecordFailure(ctx context.Context, identity string, origin netip.Addr) error
	ClearAttempts(ctx context.Context, identity string, origin netip.Addr) error
}

// CredentialService verifies a login and password against the stored account
type CredentialService struct {
	accounts AccountRepository
	hasher   PasswordHasher
	attempts AttemptRecorder
	logger   *slog.Logger
}

func NewCredentialService(accounts AccountRepository, hasher PasswordHasher, attempts AttemptRecorder, logger *slog.Logger) *CredentialService {
	return &CredentialService{
		accounts: accounts,
		hasher:   hasher,
		attempts: attempts,
		logger:   logger,
	}
}

// Verify runs the checks in order and stops at the first failure:
//
//  1. unknown login            -> ErrInvalidCredentials
//  2. account inactive         -> ErrAccountInactive
//  3. linked employee inactive -> ErrEmployeeInactive
//  4. employee lacks access    -> ErrAccessNotAuthorized
//  5. password mismatch        -> ErrInvalidCredentials
//
// Every failure records one ledger attempt before returning. On success the ledger
// is cleared for identity and origin. A failed ledger write is returned as a storage
// fault in place of the credential outcome.
func (s *CredentialService) Verify(ctx context.Context, identity, secret string, origin netip.Addr) (*models.Account, error) {
	account, err := s.accounts.GetByLogin(ctx, identity)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Same bcrypt work as a real mismatch
			_ = s.hasher.CompareDummy(secret)
			return nil, s.reject(ctx, identity, origin, models.ErrInvalidCredentials)
		}
		s.logger.Error("failed to load account", slog.Any("error", err))
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if !account.IsActive() {
		return nil, s.reject(ctx, identity, origin, models.ErrAccountInactive)
	}

	if account.EmployeeID != nil {
		if account.Employee == nil || !account.Employee.IsActive() {
			return nil, s.reject(ctx, identity, origin, models.ErrEmployeeInactive)
		}
		if !account.Employee.SystemAccess {
			return nil, s.reject(ctx, identity, origin, models.ErrAccessNotAuthorized)
		}
	}

	if err := s.hasher.ComparePassword(account.PasswordHash, secret); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Error("stored password hash is unusable",
				slog.String("account_id", account.ID),
				slog.Any("error", err))
		}
		return nil, s.reject(ctx, identity, origin, models.ErrInvalidCredentials)
	}

	if err := s.attempts.ClearAttempts(ctx, identity, origin); err != nil {
		return nil, err
	}

	return account, nil
}

// reject records the failed attempt and returns reason, or the storage fault if the
// record could not be written
func (s *CredentialService) reject(ctx context.Context, identity string, origin netip.Addr, reason error) error {
	if err := s.attempts.RecordFailure(ctx, identity, origin); err != nil {
		return fmt.Errorf("failed to record login attempt: %w", err)
	}
	return reason
}
