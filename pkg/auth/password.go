package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultBcryptCost = 12
	TokenLength       = 32 // 256 bits
	MaxPasswordLen    = 72 // bcrypt ignores anything past 72 bytes
)

// Hasher hashes and verifies passwords with bcrypt at a fixed cost
type Hasher struct {
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewHasher returns a Hasher at cost, clamped to bcrypt's accepted range
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	if len(password) > MaxPasswordLen {
		return "", fmt.Errorf("password exceeds %d bytes", MaxPasswordLen)
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// ComparePassword returns nil only when password matches hashedPassword
func (h *Hasher) ComparePassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// CompareDummy burns the same bcrypt work as a real comparison and always fails.
// Used when the account does not exist so both paths cost the same.
func (h *Hasher) CompareDummy(password string) error {
	h.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), h.cost)
		if err == nil {
			h.dummyHash = hash
		}
	})
	if h.dummyHash == nil {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
	return bcrypt.ErrMismatchedHashAndPassword
}

// GenerateToken returns a URL-safe random token and is used for session identifiers
func GenerateToken() (string, error) {
	bytes := make([]byte, TokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
