package models

import (
	"net/netip"
	"time"
)

// LoginAttempt represents a single failed login attempt in the ledger
type LoginAttempt struct {
	ID         string     `db:"id"`
	Identity   string     `db:"login"`
	Origin     netip.Addr `db:"ip"`
	OccurredAt time.Time  `db:"occurred_at"`
}

// AttemptCounts aggregates attempts inside a window, split by axis.
// A single row matching both identity and origin counts toward both.
type AttemptCounts struct {
	ByIdentity int
	ByOrigin   int
}
