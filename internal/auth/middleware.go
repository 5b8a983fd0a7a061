package auth

import (
	"context"
	"net/http"

	"github.com/BradenHooton/gestaopro/internal/models"
	pkghttp "github.com/BradenHooton/gestaopro/pkg/http"
)

// contextKey is a custom type for context keys
type contextKey string

const (
	// SessionContextKey is the key for storing the session snapshot in context
	SessionContextKey contextKey = "session"

	LoginPath     = "/login"
	ProtectedPath = "/"
)

// RequireSession redirects anonymous requests to the login page and injects the
// session snapshot into the context otherwise
func RequireSession(m *SessionManager, debug bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snapshot, err := m.Load(r.Context(), r)
			if err != nil {
				pkghttp.WriteInternalError(w, err, debug)
				return
			}
			if snapshot == nil {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSnapshot(r.Context(), snapshot)))
		})
	}
}

// RedirectIfAuthenticated sends requests that already carry a session to the
// protected area, so the login page never loops
func RedirectIfAuthenticated(m *SessionManager, debug bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snapshot, err := m.Load(r.Context(), r)
			if err != nil {
				pkghttp.WriteInternalError(w, err, debug)
				return
			}
			if snapshot != nil {
				http.Redirect(w, r, ProtectedPath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithSnapshot returns a copy of ctx carrying snapshot
func WithSnapshot(ctx context.Context, snapshot *models.Snapshot) context.Context {
	return context.WithValue(ctx, SessionContextKey, snapshot)
}

// GetSnapshotFromContext extracts the session snapshot from request context
func GetSnapshotFromContext(r *http.Request) *models.Snapshot {
	snapshot, ok := r.Context().Value(SessionContextKey).(*models.Snapshot)
	if !ok {
		return nil
	}
	return snapshot
}
