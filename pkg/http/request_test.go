package http_test

import (
	"net/http/httptest"
	"testing"

	pkghttp "github.com/BradenHooton/gestaopro/pkg/http"
	"github.com/stretchr/testify/assert"
)

func TestExtractClientIP(t *testing.T) {
	trusted := &pkghttp.IPConfig{TrustedProxies: []string{"10.0.0.0/8"}}

	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		config     *pkghttp.IPConfig
		want       string
	}{
		{"remote addr with port", "1.2.3.4:5555", "", "", nil, "1.2.3.4"},
		{"ipv6 remote addr", "[2001:db8::1]:443", "", "", nil, "2001:db8::1"},
		{"untrusted proxy ignores XFF", "1.2.3.4:5555", "9.9.9.9", "", trusted, "1.2.3.4"},
		{"trusted proxy uses XFF", "10.1.2.3:5555", "9.9.9.9, 10.1.2.3", "", trusted, "9.9.9.9"},
		{"trusted proxy uses X-Real-IP", "10.1.2.3:5555", "", "8.8.8.8", trusted, "8.8.8.8"},
		{"trusted proxy skips invalid XFF", "10.1.2.3:5555", "garbage", "", trusted, "10.1.2.3"},
		{"no config ignores headers", "1.2.3.4:5555", "9.9.9.9", "", nil, "1.2.3.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}

			assert.Equal(t, tt.want, pkghttp.ExtractClientIP(req, tt.config))
		})
	}
}
