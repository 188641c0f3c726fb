package apperrors

import (
	"net/http"
)

// AppError carries the HTTP status a failure should map to. Services
// return these; the global error middleware renders them.
type AppError struct {
	Code    int
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCode creates an error with an explicit status code.
func WithCode(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// InvalidRequestError wraps a parameter validation failure.
func InvalidRequestError(message string) *AppError {
	return WithCode(http.StatusBadRequest, message)
}

// InvalidRequestErrorDefault is the fallback validation failure.
func InvalidRequestErrorDefault() *AppError {
	return WithCode(http.StatusBadRequest, "Parameter verification failed")
}

// NotFoundError reports a missing entry.
func NotFoundError(message string) *AppError {
	return WithCode(http.StatusNotFound, message)
}

// ConflictError reports a short code that is already taken.
func ConflictError(message string) *AppError {
	return WithCode(http.StatusConflict, message)
}

// SystemError wraps a store or internal failure.
func SystemError(message string) *AppError {
	return WithCode(http.StatusInternalServerError, message)
}

// SystemErrorDefault is the generic internal failure.
func SystemErrorDefault() *AppError {
	return WithCode(http.StatusInternalServerError, "System error")
}
