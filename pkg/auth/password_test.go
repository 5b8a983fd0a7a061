package auth_test

import (
	"strings"
	"testing"

	pkgauth "github.com/BradenHooton/gestaopro/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_RoundTrip(t *testing.T) {
	h := pkgauth.NewHasher(bcrypt.MinCost)

	hash, err := h.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, h.ComparePassword(hash, "correct horse"))
	assert.Error(t, h.ComparePassword(hash, "wrong"))
}

func TestHasher_RejectsEmptyAndOversized(t *testing.T) {
	h := pkgauth.NewHasher(bcrypt.MinCost)

	_, err := h.HashPassword("")
	assert.Error(t, err)

	_, err = h.HashPassword(strings.Repeat("a", pkgauth.MaxPasswordLen+1))
	assert.Error(t, err)
}

func TestHasher_CompareDummyAlwaysFails(t *testing.T) {
	h := pkgauth.NewHasher(bcrypt.MinCost)

	assert.ErrorIs(t, h.CompareDummy("dummy-password-for-timing"), bcrypt.ErrMismatchedHashAndPassword)
	assert.ErrorIs(t, h.CompareDummy("anything"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestNewHasher_ClampsInvalidCost(t *testing.T) {
	h := pkgauth.NewHasher(99)

	hash, err := h.HashPassword("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, pkgauth.DefaultBcryptCost, cost)
}

func TestGenerateToken_Unique(t *testing.T) {
	a, err := pkgauth.GenerateToken()
	require.NoError(t, err)
	b, err := pkgauth.GenerateToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43) // 32 bytes, raw base64url
}
