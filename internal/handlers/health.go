package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is satisfied by database.DB
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Health reports whether the database answers within two seconds
func Health(db HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.HealthCheck(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy","database":"up"}`))
	}
}
