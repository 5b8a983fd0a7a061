package logger

import (
	"context"
	"log/slog"
	"time"
)

// AuditEvent represents a security audit event
type AuditEvent struct {
	EventType     string
	Login         string // Raw submitted login, masked before logging
	AccountID     string
	IPAddress     string
	Success       bool
	FailureReason string
}

// AuditLogger writes audit events to the structured log
type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{
		logger: logger,
	}
}

// LogAuthAttempt logs login outcomes; failures are logged at warn level
func (al *AuditLogger) LogAuthAttempt(ctx context.Context, event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("audit_type", "auth"),
		slog.String("event_type", event.EventType),
		slog.Bool("success", event.Success),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}

	if event.Login != "" {
		attrs = append(attrs, slog.String("login", SanitizedLogin(event.Login)))
	}
	if event.AccountID != "" {
		attrs = append(attrs, slog.String("account_id", event.AccountID))
	}
	if event.IPAddress != "" {
		attrs = append(attrs, slog.String("ip_address", event.IPAddress))
	}
	if event.FailureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", event.FailureReason))
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	al.logger.LogAttrs(ctx, level, "audit", attrs...)
}

// LogLogout logs a session teardown
func (al *AuditLogger) LogLogout(ctx context.Context, accountID, ipAddress string) {
	attrs := []slog.Attr{
		slog.String("audit_type", "session"),
		slog.String("event_type", "logout"),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}
	if accountID != "" {
		attrs = append(attrs, slog.String("account_id", accountID))
	}
	if ipAddress != "" {
		attrs = append(attrs, slog.String("ip_address", ipAddress))
	}

	al.logger.LogAttrs(ctx, slog.LevelInfo, "audit", attrs...)
}
