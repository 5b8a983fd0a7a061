package models

import "time"

// Snapshot is the reduced set of account fields kept in a session.
// It never carries the password hash.
type Snapshot struct {
	AccountID  string  `json:"id"`
	Login      string  `json:"login"`
	EmployeeID *string `json:"employee_id"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Email      *string `json:"email"`
}

// DisplayName returns the employee first name, falling back to the login
func (s Snapshot) DisplayName() string {
	if s.FirstName != nil && *s.FirstName != "" {
		return *s.FirstName
	}
	return s.Login
}

// Session is a stored server-side session keyed by the hash of its token
type Session struct {
	Snapshot  Snapshot  `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
