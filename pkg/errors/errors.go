package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError provides a structured error that can be rendered to API consumers.
// Message is returned verbatim to clients, so it must never carry internals.
type AppError struct {
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Details    []string `json:"errors,omitempty"`
	StatusCode int      `json:"-"`
	Internal   error    `json:"-"`
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}

	return e.Message
}

// Unwrap exposes the internal error for errors.Is / errors.As compatibility.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Internal
}

// Is matches two AppErrors sharing the same code and status.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) || e == nil || other == nil {
		return false
	}
	return e.Code == other.Code && e.StatusCode == other.StatusCode && e.Message == other.Message
}

// WithInternal returns a copy of the AppError with an attached internal error.
func (e *AppError) WithInternal(err error) *AppError {
	if e == nil {
		return nil
	}

	cpy := *e
	cpy.Internal = err
	return &cpy
}

// WithDetails returns a copy of the AppError carrying per-field messages.
func (e *AppError) WithDetails(details ...string) *AppError {
	if e == nil {
		return nil
	}

	cpy := *e
	cpy.Details = append([]string(nil), details...)
	return &cpy
}

// Error codes for the taxonomy surfaced by the API.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeAuthorization  = "AUTHORIZATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeUnexpected     = "SERVER_ERROR"
)

// Common errors exposed to the rest of the application. Messages are part of
// the public contract and are relied upon by the admin panel.
var (
	ErrTokenRequired = &AppError{
		Code:       CodeAuthentication,
		Message:    "Access token required",
		StatusCode: http.StatusUnauthorized,
	}

	ErrInvalidToken = &AppError{
		Code:       CodeAuthentication,
		Message:    "Invalid token",
		StatusCode: http.StatusForbidden,
	}

	ErrInactiveUser = &AppError{
		Code:       CodeAuthentication,
		Message:    "Invalid or inactive user",
		StatusCode: http.StatusUnauthorized,
	}

	ErrInvalidCredentials = &AppError{
		Code:       CodeAuthentication,
		Message:    "Invalid credentials",
		StatusCode: http.StatusUnauthorized,
	}

	ErrAccountDeactivated = &AppError{
		Code:       CodeAuthentication,
		Message:    "Account is deactivated",
		StatusCode: http.StatusUnauthorized,
	}

	ErrMainAdminRequired = &AppError{
		Code:       CodeAuthorization,
		Message:    "Main admin access required",
		StatusCode: http.StatusForbidden,
	}

	ErrAdminRequired = &AppError{
		Code:       CodeAuthorization,
		Message:    "Admin access required",
		StatusCode: http.StatusForbidden,
	}

	ErrSportAccessDenied = &AppError{
		Code:       CodeAuthorization,
		Message:    "Access denied for this sport",
		StatusCode: http.StatusForbidden,
	}

	ErrNotFound = &AppError{
		Code:       CodeNotFound,
		Message:    "Resource not found",
		StatusCode: http.StatusNotFound,
	}

	ErrBadRequest = &AppError{
		Code:       CodeValidation,
		Message:    "Invalid request",
		StatusCode: http.StatusBadRequest,
	}

	ErrInternalServer = &AppError{
		Code:       CodeUnexpected,
		Message:    "Server error",
		StatusCode: http.StatusInternalServerError,
	}

	ErrRateLimit = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Too many requests, please slow down",
		StatusCode: http.StatusTooManyRequests,
	}
)

// New builds a new application error with the provided metadata.
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap turns any error into an UnexpectedError while keeping the original error for logging.
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:       CodeUnexpected,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Internal:   err,
	}
}

// FromError converts a generic error into an AppError, defaulting to ErrInternalServer.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return ErrInternalServer.WithInternal(err)
}

// NewBadRequest wraps validation errors with a helpful message.
func NewBadRequest(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewValidation reports a failed schema validation with one message per field.
func NewValidation(details ...string) *AppError {
	return NewBadRequest("Validation error").WithDetails(details...)
}

// NewConflict reports a uniqueness violation. Conflicts surface as 400 for
// compatibility with existing clients.
func NewConflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewNotFound reports a missing entity with a resource specific message.
func NewNotFound(message string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// IsStatus reports whether err resolves to an AppError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.StatusCode == status
}
