package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_PASSWORD", "test")
}

func TestLoad_RequiresDBPassword(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestLoad_LoginDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Auth.MaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LockoutWindow)
	assert.Equal(t, 2, cfg.Cleanup.RetentionDays)
	assert.Equal(t, time.Duration(0), cfg.Cleanup.Interval)
	assert.Equal(t, int64(1024*1024), cfg.Cleanup.MaxLogBytes)
	assert.Equal(t, "postgres", cfg.Session.Store)
	assert.False(t, cfg.Server.Debug, "debug must be off by default")
}

func TestServerConfig_Timeouts_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	tests := []struct {
		name     string
		actual   time.Duration
		expected time.Duration
	}{
		{"ReadTimeout", cfg.Server.ReadTimeout, 15 * time.Second},
		{"WriteTimeout", cfg.Server.WriteTimeout, 15 * time.Second},
		{"IdleTimeout", cfg.Server.IdleTimeout, 60 * time.Second},
	}

	for _, tt := range tests {
		if tt.actual != tt.expected {
			t.Errorf("%s: got %v, want %v", tt.name, tt.actual, tt.expected)
		}
	}
}

func TestServerConfig_Timeouts_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_READ_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	// Invalid duration should fall back to default
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_CustomLoginSettings(t *testing.T) {
	setRequired(t)
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")
	t.Setenv("LOGIN_WINDOW", "10m")
	t.Setenv("ATTEMPT_RETENTION_DAYS", "7")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, ,192.168.0.0/16")
	t.Setenv("SESSION_STORE", "Redis")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Auth.MaxAttempts)
	assert.Equal(t, 10*time.Minute, cfg.Auth.LockoutWindow)
	assert.Equal(t, 7, cfg.Cleanup.RetentionDays)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.0.0/16"}, cfg.Server.TrustedProxies)
	assert.Equal(t, "redis", cfg.Session.Store)
}

func TestLoad_RejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		env   string
	}{
		{"debug in production", "APP_DEBUG", "true", "production"},
		{"zero attempts", "LOGIN_MAX_ATTEMPTS", "0", "development"},
		{"negative window", "LOGIN_WINDOW", "-1m", "development"},
		{"zero retention", "ATTEMPT_RETENTION_DAYS", "0", "development"},
		{"unknown session store", "SESSION_STORE", "memcached", "development"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv("ENV", tt.env)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_CookieSecureFollowsEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Session.Secure)
}
