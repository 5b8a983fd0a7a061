package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Auth     AuthConfig
	Session  SessionConfig
	Redis    RedisConfig
	Cleanup  CleanupConfig
}

type DatabaseConfig struct {
	Host              string
	Port              int
	User              string
	Password          string
	Name              string
	SSLMode           string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

type ServerConfig struct {
	Port           string
	Env            string
	Debug          bool // Verbose fault detail on error pages; never allowed in production
	LogLevel       string
	TrustedProxies []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

type AuthConfig struct {
	MaxAttempts           int
	LockoutWindow         time.Duration
	HTTPRequestsPerMinute int
	BcryptCost            int
	TimingDelayBaseMs     int
	TimingDelayRandomMs   int
}

type SessionConfig struct {
	Store      string // "postgres" or "redis"
	CookieName string
	TTL        time.Duration
	Secure     bool
	SameSite   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CleanupConfig struct {
	RetentionDays int
	Interval      time.Duration // 0 disables the in-process sweeper
	LogFile       string
	MaxLogBytes   int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("ENV", "development")

	cfg := &Config{
		Database: DatabaseConfig{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              getEnvAsInt("DB_PORT", 5432),
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", ""),
			Name:              getEnv("DB_NAME", "gestaopro"),
			SSLMode:           getEnv("DB_SSLMODE", "disable"),
			MaxConns:          int32(getEnvAsInt("DB_MAX_CONNS", 25)),
			MinConns:          int32(getEnvAsInt("DB_MIN_CONNS", 2)),
			MaxConnLifetime:   getEnvAsDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 1*time.Minute),
			HealthCheckPeriod: getEnvAsDuration("DB_HEALTH_CHECK_PERIOD", 1*time.Minute),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            env,
			Debug:          getEnvAsBool("APP_DEBUG", false),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Auth: AuthConfig{
			MaxAttempts:           getEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
			LockoutWindow:         getEnvAsDuration("LOGIN_WINDOW", 15*time.Minute),
			HTTPRequestsPerMinute: getEnvAsInt("LOGIN_HTTP_RATE_PER_MINUTE", 30),
			BcryptCost:            getEnvAsInt("BCRYPT_COST", 12),
			TimingDelayBaseMs:     getEnvAsInt("AUTH_TIMING_BASE_MS", 200),
			TimingDelayRandomMs:   getEnvAsInt("AUTH_TIMING_RANDOM_MS", 100),
		},
		Session: SessionConfig{
			Store:      strings.ToLower(getEnv("SESSION_STORE", "postgres")),
			CookieName: getEnv("SESSION_COOKIE_NAME", "gestaopro_session"),
			TTL:        getEnvAsDuration("SESSION_TTL", 8*time.Hour),
			Secure:     getEnvAsBool("COOKIE_SECURE", env == "production"),
			SameSite:   getEnv("COOKIE_SAMESITE", "lax"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Cleanup: CleanupConfig{
			RetentionDays: getEnvAsInt("ATTEMPT_RETENTION_DAYS", 2),
			Interval:      getEnvAsDuration("CLEANUP_INTERVAL", 0),
			LogFile:       getEnv("CLEANUP_LOG_FILE", "cleanup.log"),
			MaxLogBytes:   int64(getEnvAsInt("CLEANUP_MAX_LOG_BYTES", 1024*1024)),
		},
	}

	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects settings that would disable throttling or leak internals
func (c *Config) validate() error {
	if c.Server.Env == "production" && c.Server.Debug {
		return fmt.Errorf("APP_DEBUG cannot be enabled in production environment")
	}
	if c.Auth.MaxAttempts < 1 {
		return fmt.Errorf("LOGIN_MAX_ATTEMPTS must be at least 1 (got %d)", c.Auth.MaxAttempts)
	}
	if c.Auth.LockoutWindow <= 0 {
		return fmt.Errorf("LOGIN_WINDOW must be positive (got %s)", c.Auth.LockoutWindow)
	}
	if c.Cleanup.RetentionDays < 1 {
		return fmt.Errorf("ATTEMPT_RETENTION_DAYS must be at least 1 (got %d)", c.Cleanup.RetentionDays)
	}
	switch c.Session.Store {
	case "postgres", "redis":
	default:
		return fmt.Errorf("SESSION_STORE must be postgres or redis (got %q)", c.Session.Store)
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
