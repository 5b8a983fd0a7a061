package auth

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/BradenHooton/gestaopro/internal/models"
	pkgauth "github.com/BradenHooton/gestaopro/pkg/auth"
)

// SessionStore persists sessions keyed by the SHA-256 of their token.
// Get returns models.ErrNotFound for unknown or expired tokens.
type SessionStore interface {
	Create(ctx context.Context, tokenHash []byte, session *models.Session) error
	Get(ctx context.Context, tokenHash []byte) (*models.Session, error)
	Delete(ctx context.Context, tokenHash []byte) error
}

// SessionManager establishes, loads and destroys server-side sessions.
// The raw token only ever lives in the client cookie.
type SessionManager struct {
	store  SessionStore
	cookie CookieConfig
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionManager(store SessionStore, cookie CookieConfig, ttl time.Duration) *SessionManager {
	return &SessionManager{
		store:  store,
		cookie: cookie,
		ttl:    ttl,
		now:    time.Now,
	}
}

func hashToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}

// Establish stores snapshot under a fresh token and sets the session cookie.
// A session already carried by the request is destroyed first.
func (m *SessionManager) Establish(ctx context.Context, w http.ResponseWriter, r *http.Request, snapshot models.Snapshot) error {
	if old := GetSessionCookie(r, m.cookie); old != "" {
		if err := m.store.Delete(ctx, hashToken(old)); err != nil {
			return fmt.Errorf("failed to drop previous session: %w", err)
		}
	}

	token, err := pkgauth.GenerateToken()
	if err != nil {
		return err
	}

	now := m.now()
	session := &models.Session{
		Snapshot:  snapshot,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.Create(ctx, hashToken(token), session); err != nil {
		return err
	}

	SetSessionCookie(w, token, m.ttl, m.cookie)
	return nil
}

// Load returns the snapshot for the request's session, or nil when unauthenticated
func (m *SessionManager) Load(ctx context.Context, r *http.Request) (*models.Snapshot, error) {
	token := GetSessionCookie(r, m.cookie)
	if token == "" {
		return nil, nil
	}

	session, err := m.store.Get(ctx, hashToken(token))
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.Expired(m.now()) {
		return nil, nil
	}

	snapshot := session.Snapshot
	return &snapshot, nil
}

// Destroy deletes the stored session and expires the cookie.
// The cookie is cleared even when the store delete fails.
func (m *SessionManager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer ClearSessionCookie(w, m.cookie)

	token := GetSessionCookie(r, m.cookie)
	if token == "" {
		return nil
	}

	return m.store.Delete(ctx, hashToken(token))
}
