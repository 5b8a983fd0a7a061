package handlers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Global validator instance (reused across all handlers)
var validate = validator.New()

// LoginForm is the form-encoded body of POST /login
type LoginForm struct {
	Login string `validate:"required"`
	Senha string `validate:"required"`
}

// ValidateRequest validates a request struct using go-playground/validator
// and returns the first failing field
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return fmt.Errorf("validation failed: %s: %s", ve[0].Field(), formatValidationError(ve[0]))
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// formatValidationError converts a validator FieldError to a short message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("must have a maximum of %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}

// parseLoginForm reads the login form. The login is trimmed; the password is kept as sent.
func parseLoginForm(values url.Values) LoginForm {
	return LoginForm{
		Login: strings.TrimSpace(values.Get("login")),
		Senha: values.Get("senha"),
	}
}
