package middleware

import (
	"net/http"
	"time"

	"github.com/BradenHooton/gestaopro/internal/auth"
	pkghttp "github.com/BradenHooton/gestaopro/pkg/http"
	"github.com/go-chi/httprate"
)

// RateLimitConfig holds the coarse per-origin request budget for the login form
type RateLimitConfig struct {
	RequestsPerMinute int
	IPConfig          *pkghttp.IPConfig
}

// DefaultLoginRateLimit allows 30 submissions per minute per origin
func DefaultLoginRateLimit() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: 30,
	}
}

// RateLimitLogin throttles raw request volume per client origin. It sits in front of
// the ledger-based limiter and only absorbs floods; failed attempts are still counted
// by the ledger. A non-positive budget disables it.
func RateLimitLogin(config RateLimitConfig) func(next http.Handler) http.Handler {
	if config.RequestsPerMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(
		config.RequestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return auth.NormalizeOrigin(pkghttp.ExtractClientIP(r, config.IPConfig)).String(), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			pkghttp.WriteTooManyRequests(w)
		}),
	)
}
