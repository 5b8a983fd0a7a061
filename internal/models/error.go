package models

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Login outcomes
	ErrValidation          = errors.New("login and password are required")
	ErrInvalidCredentials  = errors.New("invalid login or password")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrEmployeeInactive    = errors.New("employee is inactive")
	ErrAccessNotAuthorized = errors.New("system access not authorized")
	ErrRateLimitExceeded   = errors.New("too many login attempts")
)

// RateLimitedError reports a blocked login together with the time left in the window.
type RateLimitedError struct {
	Remaining time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%s: retry in %s", ErrRateLimitExceeded, e.Remaining)
}

// Unwrap lets errors.Is match ErrRateLimitExceeded.
func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimitExceeded
}

// IsCredentialFailure reports whether err is one of the recoverable verifier outcomes
// that count as a failed attempt.
func IsCredentialFailure(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrAccountInactive) ||
		errors.Is(err, ErrEmployeeInactive) ||
		errors.Is(err, ErrAccessNotAuthorized)
}
