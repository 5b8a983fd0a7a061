package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"net/url"
	"strings"

	"github.com/BradenHooton/gestaopro/internal/models"
)

// NewLoginRequest creates a form-encoded POST /login request for testing
func NewLoginRequest(login, senha string) *http.Request {
	form := url.Values{}
	form.Set("login", login)
	form.Set("senha", senha)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "192.0.2.10:51234"
	return req
}

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	LoginFunc func(ctx context.Context, identity, secret string, origin netip.Addr) (*models.Snapshot, error)
	Calls     int
}

func (m *MockAuthService) Login(ctx context.Context, identity, secret string, origin netip.Addr) (*models.Snapshot, error) {
	m.Calls++
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, identity, secret, origin)
	}
	return nil, models.ErrInvalidCredentials
}

// MockSessionManager implements SessionManagerInterface for testing
type MockSessionManager struct {
	EstablishFunc func(ctx context.Context, w http.ResponseWriter, r *http.Request, snapshot models.Snapshot) error
	LoadFunc      func(ctx context.Context, r *http.Request) (*models.Snapshot, error)
	DestroyFunc   func(ctx context.Context, w http.ResponseWriter, r *http.Request) error

	Established []models.Snapshot
	Destroyed   int
}

func (m *MockSessionManager) Establish(ctx context.Context, w http.ResponseWriter, r *http.Request, snapshot models.Snapshot) error {
	m.Established = append(m.Established, snapshot)
	if m.EstablishFunc != nil {
		return m.EstablishFunc(ctx, w, r, snapshot)
	}
	return nil
}

func (m *MockSessionManager) Load(ctx context.Context, r *http.Request) (*models.Snapshot, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, r)
	}
	return nil, nil
}

func (m *MockSessionManager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	m.Destroyed++
	if m.DestroyFunc != nil {
		return m.DestroyFunc(ctx, w, r)
	}
	return nil
}

// MockHealthChecker implements HealthChecker for testing
type MockHealthChecker struct {
	Err error
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Err
}
