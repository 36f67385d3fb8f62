package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound             = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrBadRequest           = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer       = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrTooManyRequests      = &AppError{Code: http.StatusTooManyRequests, Message: "Too many requests"}
	ErrRowNotFound          = &AppError{Code: http.StatusNotFound, Message: "Line item not found"}
	ErrSubmissionInProgress = &AppError{Code: http.StatusConflict, Message: "A submission is already in progress"}
	ErrDraftFrozen          = &AppError{Code: http.StatusConflict, Message: "The invoice cannot be edited while it is being saved"}
	ErrStaffLocked          = &AppError{Code: http.StatusConflict, Message: "Staff (Collected By) is locked for this session"}
)

// DefaultSaveFailedMessage is reported when the endpoint gives no reason of its own.
const DefaultSaveFailedMessage = "Save failed"

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a draft validation error. The field names the
// first rule that failed.
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
		Errors:  []FieldError{{Field: field, Message: message}},
	}
}

// NewEndpointError creates an error for a rejected or failed save on the
// storage endpoint. An empty message falls back to DefaultSaveFailedMessage.
func NewEndpointError(message string) *AppError {
	if message == "" {
		message = DefaultSaveFailedMessage
	}
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsValidation reports whether err is a draft validation failure.
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusUnprocessableEntity
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
