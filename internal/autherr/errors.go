package autherr

import (
	"errors"
	"net/http"
)

// Error is a classified domain error carrying a stable machine-readable
// code and the HTTP status it maps to at the handler boundary. The code is
// what clients switch on; the message is for humans only.
type Error struct {
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func newErr(code string, status int, msg string) *Error {
	return &Error{Code: code, Status: status, Message: msg}
}

var (
	ErrValidation          = newErr("VALIDATION_ERROR", http.StatusBadRequest, "invalid or missing fields")
	ErrEmailTaken          = newErr("EMAIL_TAKEN", http.StatusConflict, "email already registered")
	ErrInvalidCredentials  = newErr("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrMissingToken        = newErr("MISSING_TOKEN", http.StatusUnauthorized, "refresh token required")
	ErrUnauthorized        = newErr("UNAUTHORIZED", http.StatusUnauthorized, "authentication required")
	ErrInvalidRefreshToken = newErr("INVALID_REFRESH_TOKEN", http.StatusForbidden, "refresh token invalid or expired")
	ErrNotFound            = newErr("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrInternal            = newErr("INTERNAL_ERROR", http.StatusInternalServerError, "internal error")
)

// Validation returns a VALIDATION_ERROR with a specific message.
func Validation(msg string) *Error {
	return newErr(ErrValidation.Code, ErrValidation.Status, msg)
}

// Classify maps any error to a domain *Error; anything unrecognized
// collapses to ErrInternal so internals never leak to clients.
func Classify(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return ErrInternal
}
