package services

import (
	"context"
	"net/netip"
	"sync"
	"time"

	"github.com/BradenHooton/gestaopro/internal/models"
)

// MemoryLedger is an in-memory AttemptLedger with the same matching rules as the
// Postgres ledger. The *Err fields inject storage faults.
type MemoryLedger struct {
	mu       sync.Mutex
	Attempts []models.LoginAttempt

	RecordErr error
	CountErr  error
	LatestErr error
	ClearErr  error
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

func (l *MemoryLedger) RecordAttempt(ctx context.Context, attempt *models.LoginAttempt) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.RecordErr != nil {
		return l.RecordErr
	}
	l.Attempts = append(l.Attempts, *attempt)
	return nil
}

func (l *MemoryLedger) CountSince(ctx context.Context, identity string, origin netip.Addr, since time.Time) (models.AttemptCounts, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.CountErr != nil {
		return models.AttemptCounts{}, l.CountErr
	}

	var counts models.AttemptCounts
	for _, a := range l.Attempts {
		if a.OccurredAt.Before(since) {
			continue
		}
		if a.Identity == identity {
			counts.ByIdentity++
		}
		if a.Origin == origin {
			counts.ByOrigin++
		}
	}
	return counts, nil
}

func (l *MemoryLedger) LatestAttemptTime(ctx context.Context, identity string, origin netip.Addr) (*time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.LatestErr != nil {
		return nil, l.LatestErr
	}

	var latest *time.Time
	for _, a := range l.Attempts {
		if a.Identity != identity && a.Origin != origin {
			continue
		}
		if latest == nil || a.OccurredAt.After(*latest) {
			t := a.OccurredAt
			latest = &t
		}
	}
	return latest, nil
}

func (l *MemoryLedger) ClearAttempts(ctx context.Context, identity string, origin netip.Addr) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ClearErr != nil {
		return 0, l.ClearErr
	}

	kept := l.Attempts[:0]
	var removed int64
	for _, a := range l.Attempts {
		if a.Identity == identity || a.Origin == origin {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	l.Attempts = kept
	return removed, nil
}

// Len returns the number of stored attempts
func (l *MemoryLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Attempts)
}

// MockAccountRepository implements AccountRepository for testing
type MockAccountRepository struct {
	Accounts       map[string]*models.Account
	GetByLoginFunc func(ctx context.Context, login string) (*models.Account, error)
}

func (m *MockAccountRepository) GetByLogin(ctx context.Context, login string) (*models.Account, error) {
	if m.GetByLoginFunc != nil {
		return m.GetByLoginFunc(ctx, login)
	}
	if account, ok := m.Accounts[login]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, models.ErrNotFound
}

// MockClock is a settable clock for time-dependent tests
type MockClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{t: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func strPtr(s string) *string { return &s }

// NewTestAccount returns an active account without an employee link
func NewTestAccount(id, login, passwordHash string) *models.Account {
	return &models.Account{
		ID:           id,
		Login:        login,
		PasswordHash: passwordHash,
		Status:       models.StatusActive,
	}
}

// NewTestAccountWithEmployee returns an active account linked to an employee
func NewTestAccountWithEmployee(id, login, passwordHash string, employee *models.Employee) *models.Account {
	account := NewTestAccount(id, login, passwordHash)
	account.EmployeeID = strPtr(employee.ID)
	account.Employee = employee
	return account
}

// NewTestEmployee returns an active employee with system access
func NewTestEmployee(id, firstName string) *models.Employee {
	return &models.Employee{
		ID:           id,
		FirstName:    firstName,
		LastName:     "Silva",
		Email:        firstName + "@example.com",
		SystemAccess: true,
		Status:       models.StatusActive,
	}
}
