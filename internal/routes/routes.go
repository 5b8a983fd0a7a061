package routes

import (
	"net/http"

	"github.com/BradenHooton/gestaopro/internal/auth"
	"github.com/BradenHooton/gestaopro/internal/handlers"
	"github.com/BradenHooton/gestaopro/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RegisterRoutes registers all application routes. It must run before any other
// route is added to router.
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	sessions *auth.SessionManager,
	health http.HandlerFunc,
	loginRateLimit middleware.RateLimitConfig,
	debug bool,
) {
	// "/dashboard/" and "/dashboard" are the same route
	router.Use(chimiddleware.StripSlashes)

	router.Get("/health", health)

	// Login form: anyone with a session is sent to the protected area instead
	router.Group(func(r chi.Router) {
		r.Use(auth.RedirectIfAuthenticated(sessions, debug))
		r.Get(auth.LoginPath, authHandler.ShowLogin)
		r.With(middleware.RateLimitLogin(loginRateLimit)).Post(auth.LoginPath, authHandler.Login)
	})

	// Logout works for any method and any session state
	router.HandleFunc("/logout", authHandler.Logout)

	// Protected routes - session required
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(sessions, debug))
		r.Get(auth.ProtectedPath, authHandler.Dashboard)
		r.Get("/index.php", authHandler.Dashboard)
		r.Get("/dashboard", authHandler.Dashboard)
	})

	router.NotFound(authHandler.NotFound)
	router.MethodNotAllowed(authHandler.NotFound)
}
