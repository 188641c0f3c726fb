package response

import (
	"time"

	"qrlink-go/internal/apperrors"
)

// ErrorResponse is the envelope the error middleware renders.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// PageResponse is the pagination body for list endpoints.
type PageResponse[T any] struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Items    []T   `json:"items"`
}

// Error constructs a failure response.
func Error(message string) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
}

// ErrorFromAppError constructs a failure response from an AppError.
func ErrorFromAppError(err *apperrors.AppError) *ErrorResponse {
	return Error(err.Message)
}
