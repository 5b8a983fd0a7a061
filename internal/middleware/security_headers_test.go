package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func serveWithHeaders(env string, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	SecurityHeaders(SecurityHeadersConfig{Env: env})(okHandler()).ServeHTTP(w, req)
	return w
}

func TestSecurityHeaders_Production(t *testing.T) {
	w := serveWithHeaders("production", httptest.NewRequest(http.MethodGet, "/login", nil))

	tests := []struct {
		header   string
		expected string
	}{
		{"X-Frame-Options", "DENY"},
		{"X-Content-Type-Options", "nosniff"},
		{"Referrer-Policy", "same-origin"},
		{"Cross-Origin-Opener-Policy", "same-origin"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, w.Header().Get(tt.header), tt.header)
	}

	csp := w.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "script-src 'none'")
	assert.Contains(t, csp, "form-action 'self'")
	assert.NotEmpty(t, w.Header().Get("Permissions-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"), "no HSTS over plain HTTP")
}

func TestSecurityHeaders_ProductionBehindTLSProxy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("X-Forwarded-Proto", "https")

	w := serveWithHeaders("production", req)
	assert.Contains(t, w.Header().Get("Strict-Transport-Security"), "max-age=31536000")
}

func TestSecurityHeaders_Development(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("X-Forwarded-Proto", "https")

	w := serveWithHeaders("development", req)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "unsafe-inline")
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}
