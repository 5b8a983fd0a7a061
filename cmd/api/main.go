package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BradenHooton/gestaopro/internal/auth"
	"github.com/BradenHooton/gestaopro/internal/background"
	"github.com/BradenHooton/gestaopro/internal/config"
	"github.com/BradenHooton/gestaopro/internal/database"
	"github.com/BradenHooton/gestaopro/internal/handlers"
	middlewareCustom "github.com/BradenHooton/gestaopro/internal/middleware"
	"github.com/BradenHooton/gestaopro/internal/models"
	"github.com/BradenHooton/gestaopro/internal/repositories"
	"github.com/BradenHooton/gestaopro/internal/routes"
	"github.com/BradenHooton/gestaopro/internal/services"
	pkgauth "github.com/BradenHooton/gestaopro/pkg/auth"
	pkghttp "github.com/BradenHooton/gestaopro/pkg/http"
	pkglogger "github.com/BradenHooton/gestaopro/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// sessionBackend is a session store that may also need expired rows swept
type sessionBackend interface {
	auth.SessionStore
	background.ExpiredSessionPurger
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.Server.LogLevel)}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.String("env", cfg.Server.Env),
		slog.String("session_store", cfg.Session.Store))

	// Initialize database
	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize repositories
	accountRepo := repositories.NewAccountRepository(db)
	loginAttemptRepo := repositories.NewLoginAttemptRepository(db)

	var sessionStore sessionBackend
	switch cfg.Session.Store {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := repositories.NewRedisClient(ctx, &cfg.Redis)
		cancel()
		if err != nil {
			logger.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer redisClient.Close()
		sessionStore = repositories.NewRedisSessionRepository(redisClient)
	default:
		sessionStore = repositories.NewSessionRepository(db)
	}

	// Initialize security services
	auditLogger := pkglogger.NewAuditLogger(logger)
	hasher := pkgauth.NewHasher(cfg.Auth.BcryptCost)

	rateLimitService := services.NewRateLimitService(loginAttemptRepo, services.RateLimitConfig{
		MaxAttempts: cfg.Auth.MaxAttempts,
		Window:      cfg.Auth.LockoutWindow,
	}, logger)

	timingDelay := auth.NewTimingDelay(auth.TimingConfig{
		BaseDelayMs:   cfg.Auth.TimingDelayBaseMs,
		RandomDelayMs: cfg.Auth.TimingDelayRandomMs,
	})

	credentialService := services.NewCredentialService(accountRepo, hasher, rateLimitService, logger)
	authService := services.NewAuthService(rateLimitService, credentialService, timingDelay, logger, auditLogger)

	sessionManager := auth.NewSessionManager(sessionStore, auth.CookieConfig{
		Name:     cfg.Session.CookieName,
		Secure:   cfg.Session.Secure,
		SameSite: cfg.Session.SameSite,
	}, cfg.Session.TTL)

	// Initialize handlers
	ipConfig := &pkghttp.IPConfig{TrustedProxies: cfg.Server.TrustedProxies}
	authHandler := handlers.NewAuthHandler(authService, sessionManager, ipConfig, logger, auditLogger, cfg.Server.Debug)

	// Bootstrap first account if configured
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureAdminAccount(ctx, accountRepo, hasher, logger); err != nil {
		logger.Error("failed to ensure admin account", slog.Any("error", err))
	}
	cancel()

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(router, authHandler, sessionManager, handlers.Health(db), middlewareCustom.RateLimitConfig{
		RequestsPerMinute: cfg.Auth.HTTPRequestsPerMinute,
		IPConfig:          ipConfig,
	}, cfg.Server.Debug)

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start cleanup task; the scheduled cmd/cleanup job covers deployments without it
	var cleanupManager *background.CleanupManager
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()

	if cfg.Cleanup.Interval > 0 {
		cleanupManager = background.NewCleanupManager(
			background.NewSweeper(loginAttemptRepo),
			sessionStore,
			cfg.Cleanup.RetentionDays,
			logger,
			cfg.Cleanup.Interval,
		)
		go cleanupManager.Start(cleanupCtx)
	}

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	cleanupCancel()
	if cleanupManager != nil {
		cleanupManager.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// ensureAdminAccount creates the first account if ADMIN_LOGIN and ADMIN_PASSWORD are set.
// The account has no employee link, so only its own status gates it.
func ensureAdminAccount(ctx context.Context, accountRepo *repositories.AccountRepository, hasher *pkgauth.Hasher, logger *slog.Logger) error {
	adminLogin := os.Getenv("ADMIN_LOGIN")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminLogin == "" || adminPassword == "" {
		logger.Info("no ADMIN_LOGIN or ADMIN_PASSWORD set, skipping admin account creation")
		return nil
	}

	_, err := accountRepo.GetByLogin(ctx, adminLogin)
	if err == nil {
		logger.Info("admin account already exists")
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to check if admin exists: %w", err)
	}

	hashedPassword, err := hasher.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = accountRepo.Create(ctx, &models.Account{
		Login:        adminLogin,
		PasswordHash: hashedPassword,
		Status:       models.StatusActive,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logger.Info("admin account created successfully")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
