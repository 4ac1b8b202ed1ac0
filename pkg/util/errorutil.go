package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string) error {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound, nil)
}

// NewMissingCredential covers requests with no usable Authorization header.
func NewMissingCredential() error {
	return NewDomainError("MISSING_CREDENTIAL", "Access token required", http.StatusUnauthorized, nil)
}

// NewInvalidCredential covers every token verification failure. The
// malformed/bad-signature/expired sub-kinds are never exposed to clients.
func NewInvalidCredential() error {
	return NewDomainError("INVALID_CREDENTIAL", "Invalid or expired token", http.StatusUnauthorized, nil)
}

// NewInvalidCredentials is the login failure. Unknown email and wrong
// password must produce this exact error so accounts cannot be enumerated.
func NewInvalidCredentials() error {
	return NewDomainError("INVALID_CREDENTIALS", "Invalid email or password", http.StatusUnauthorized, nil)
}

func NewAccountNotActive(message string) error {
	return NewDomainError("ACCOUNT_NOT_ACTIVE", message, http.StatusForbidden, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewMethodNotAllowed() error {
	return NewDomainError("METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed, nil)
}

func NewConflict(message string) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("resource").(*DomainError)
	}
	// Unique violations reach here when a check-then-insert races its
	// constraint, most notably concurrent registrations of one email.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return NewConflict("Resource already exists").(*DomainError)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < http.StatusInternalServerError {
		return NewDomainError("REQUEST_FAILED", fiberErr.Message, fiberErr.Code, nil)
	}
	return NewInternalError(err).(*DomainError)
}
