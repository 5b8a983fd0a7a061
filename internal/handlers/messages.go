package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/BradenHooton/gestaopro/internal/models"
	"github.com/BradenHooton/gestaopro/internal/services"
)

// User-facing login messages
const (
	MsgValidation         = "Informe login e senha."
	MsgInvalidCredentials = "Usuário ou senha inválidos."
	MsgAccountInactive    = "Usuário inativo."
	MsgEmployeeInactive   = "Funcionário inativo."
	MsgAccessDenied       = "Acesso ao sistema não autorizado."
	msgRateLimitedFormat  = "Muitas tentativas. Tente novamente em ~%d min."
)

// RateLimitedMessage renders the lockout message for the time left in the window
func RateLimitedMessage(remaining int) string {
	return fmt.Sprintf(msgRateLimitedFormat, remaining)
}

// loginFailure maps a login outcome to the status and the single message shown on the form.
// ok is false for storage faults, which are not shown on the form.
func loginFailure(err error) (status int, message string, ok bool) {
	var rateLimited *models.RateLimitedError
	switch {
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests, RateLimitedMessage(services.LockoutMinutes(rateLimited.Remaining)), true
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, MsgValidation, true
	case errors.Is(err, models.ErrAccountInactive):
		return http.StatusForbidden, MsgAccountInactive, true
	case errors.Is(err, models.ErrEmployeeInactive):
		return http.StatusForbidden, MsgEmployeeInactive, true
	case errors.Is(err, models.ErrAccessNotAuthorized):
		return http.StatusForbidden, MsgAccessDenied, true
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, MsgInvalidCredentials, true
	default:
		return http.StatusInternalServerError, "", false
	}
}
