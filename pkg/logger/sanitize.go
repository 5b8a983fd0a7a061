package logger

import (
	"strings"
	"unicode/utf8"
)

// SanitizedLogin masks a submitted login for logging, keeping only its first rune
// (e.g., "alice" -> "a****"). Logins are unverified input and may be secrets typed
// into the wrong field.
func SanitizedLogin(login string) string {
	if login == "" {
		return "[empty]"
	}
	first, size := utf8.DecodeRuneInString(login)
	rest := utf8.RuneCountInString(login[size:])
	return string(first) + strings.Repeat("*", rest)
}

// SanitizeQueryString checks if query string contains sensitive parameters
// and returns true if the entire query string should be redacted
func SanitizeQueryString(rawQuery string) bool {
	sensitiveParams := []string{
		"senha",
		"password",
		"login",
		"token",
		"secret",
		"session",
	}

	query := strings.ToLower(rawQuery)
	for _, param := range sensitiveParams {
		if strings.Contains(query, param) {
			return true
		}
	}
	return false
}
