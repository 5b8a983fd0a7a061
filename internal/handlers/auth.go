package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/netip"

	"github.com/BradenHooton/gestaopro/internal/auth"
	"github.com/BradenHooton/gestaopro/internal/models"
	pkghttp "github.com/BradenHooton/gestaopro/pkg/http"
	pkglogger "github.com/BradenHooton/gestaopro/pkg/logger"
)

// AuthServiceInterface defines the interface for login business logic
type AuthServiceInterface interface {
	Login(ctx context.Context, identity, secret string, origin netip.Addr) (*models.Snapshot, error)
}

// SessionManagerInterface defines the session operations the handlers need
type SessionManagerInterface interface {
	Establish(ctx context.Context, w http.ResponseWriter, r *http.Request, snapshot models.Snapshot) error
	Load(ctx context.Context, r *http.Request) (*models.Snapshot, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// AuthHandler handles the login form, logout and the protected landing page
type AuthHandler struct {
	service     AuthServiceInterface
	sessions    SessionManagerInterface
	ipConfig    *pkghttp.IPConfig
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
	debug       bool
}

// NewAuthHandler creates a new AuthHandler. debug exposes fault details on error pages.
func NewAuthHandler(
	service AuthServiceInterface,
	sessions SessionManagerInterface,
	ipConfig *pkghttp.IPConfig,
	logger *slog.Logger,
	auditLogger *pkglogger.AuditLogger,
	debug bool,
) *AuthHandler {
	return &AuthHandler{
		service:     service,
		sessions:    sessions,
		ipConfig:    ipConfig,
		logger:      logger,
		auditLogger: auditLogger,
		debug:       debug,
	}
}

// ShowLogin renders the empty login form
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, http.StatusOK, "", "")
}

// Login handles the login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, http.StatusBadRequest, MsgValidation, "")
		return
	}

	form := parseLoginForm(r.PostForm)
	if err := ValidateRequest(form); err != nil {
		h.renderLogin(w, http.StatusBadRequest, MsgValidation, form.Login)
		return
	}

	origin := auth.NormalizeOrigin(pkghttp.ExtractClientIP(r, h.ipConfig))

	snapshot, err := h.service.Login(r.Context(), form.Login, form.Senha, origin)
	if err != nil {
		status, message, ok := loginFailure(err)
		if !ok {
			h.logger.Error("login failed", slog.Any("error", err))
			pkghttp.WriteInternalError(w, err, h.debug)
			return
		}
		h.renderLogin(w, status, message, form.Login)
		return
	}

	if err := h.sessions.Establish(r.Context(), w, r, *snapshot); err != nil {
		h.logger.Error("failed to establish session", slog.Any("error", err))
		pkghttp.WriteInternalError(w, err, h.debug)
		return
	}

	http.Redirect(w, r, auth.ProtectedPath, http.StatusSeeOther)
}

// Logout destroys the session, if any, and returns to the login page
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.sessions.Load(r.Context(), r)
	if err != nil {
		h.logger.Warn("failed to load session on logout", slog.Any("error", err))
	}

	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		h.logger.Error("failed to destroy session", slog.Any("error", err))
		pkghttp.WriteInternalError(w, err, h.debug)
		return
	}

	if snapshot != nil {
		ip := auth.NormalizeOrigin(pkghttp.ExtractClientIP(r, h.ipConfig))
		h.auditLogger.LogLogout(r.Context(), snapshot.AccountID, ip.String())
	}

	http.Redirect(w, r, auth.LoginPath, http.StatusFound)
}

// Dashboard renders the protected landing page. It must run behind auth.RequireSession.
func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snapshot := auth.GetSnapshotFromContext(r)
	if snapshot == nil {
		http.Redirect(w, r, auth.LoginPath, http.StatusFound)
		return
	}

	data := newPageData("Painel")
	data.User = snapshot
	if err := render(w, dashboardView, http.StatusOK, data); err != nil {
		h.logger.Error("failed to render dashboard", slog.Any("error", err))
	}
}

// NotFound renders the 404 page
func (h *AuthHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteNotFound(w)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, status int, message, login string) {
	data := newPageData("Login")
	data.Error = message
	data.Login = login
	if err := render(w, loginView, status, data); err != nil {
		h.logger.Error("failed to render login", slog.Any("error", err))
		pkghttp.WriteInternalError(w, err, h.debug)
	}
}
