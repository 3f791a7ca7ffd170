package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a workflow error code.
type ErrorCode string

const (
	ErrInvalidRequest     ErrorCode = "INVALID_REQUEST"     // 400
	ErrNotFound           ErrorCode = "NOT_FOUND"           // 404
	ErrLocked             ErrorCode = "LOCKED"              // 423
	ErrInvalidData        ErrorCode = "INVALID_DATA"        // 422
	ErrCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE" // 503
	ErrNetwork            ErrorCode = "NETWORK"             // 502
	ErrInternal           ErrorCode = "INTERNAL"            // 500
)

// AppError represents a structured error with code, status, and details.
type AppError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	Cause   error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause so callers can match on fs.ErrNotExist and friends.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *AppError {
	return &AppError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a template whose backing file is gone.
func NewNotFound(name string, cause error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("template not found: %s", name),
		Details: map[string]any{"template": name},
		Cause:   cause,
	}
}

// NewLocked creates a 423 error when another process holds the catalog update lock.
func NewLocked(path string) *AppError {
	return &AppError{
		Code:    ErrLocked,
		Status:  423,
		Message: "another update is already running",
		Details: map[string]any{"lock": path},
	}
}

// NewInvalidData creates a 422 error for an archive that cannot be parsed.
func NewInvalidData(cause error) *AppError {
	return &AppError{
		Code:    ErrInvalidData,
		Status:  422,
		Message: fmt.Sprintf("open ZIP archive failed: %v", cause),
		Cause:   cause,
	}
}

// NewCatalogUnavailable creates a 503 error when the template directory cannot be listed.
func NewCatalogUnavailable(path string, cause error) *AppError {
	return &AppError{
		Code:    ErrCatalogUnavailable,
		Status:  503,
		Message: fmt.Sprintf("template catalog unavailable at %s: %v", path, cause),
		Details: map[string]any{"path": path},
		Cause:   cause,
	}
}

// NewNetwork creates a 502 error for a failed archive download.
func NewNetwork(url string, cause error) *AppError {
	return &AppError{
		Code:    ErrNetwork,
		Status:  502,
		Message: fmt.Sprintf("download %s failed: %v", url, cause),
		Details: map[string]any{"url": url},
		Cause:   cause,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *AppError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &AppError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
		Cause:   err,
	}
}

// Is checks if err, or anything it wraps, is an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}
