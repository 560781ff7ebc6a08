// Package errors provides the typed error kinds raised by the domain layer.
// The resource layer maps them to HTTP status codes; domain code never does.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies the kind of failure.
type ErrorCode string

const (
	// General errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalid      ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrDuplicate    ErrorCode = "DUPLICATE"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"

	// Database errors
	ErrDatabase   ErrorCode = "DATABASE_ERROR"
	ErrMigration  ErrorCode = "MIGRATION_FAILED"
	ErrConstraint ErrorCode = "CONSTRAINT_VIOLATION"

	// Account errors
	ErrInvalidPassword ErrorCode = "INVALID_PASSWORD"
)

// AppError represents an application error with code and message.
// Field names the offending input field for validation failures.
type AppError struct {
	Code    ErrorCode
	Message string
	Field   string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an error code.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Invalid reports a missing or malformed input field.
func Invalid(field, message string) *AppError {
	return &AppError{
		Code:    ErrInvalid,
		Message: message,
		Field:   field,
	}
}

// NotFound reports a missing (or invisible) resource.
func NotFound(what string) *AppError {
	return New(ErrNotFound, what+" not found")
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *AppError {
	return New(ErrDuplicate, message)
}

// Is checks if an error, or any error it wraps, carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the code of the first AppError in err's chain,
// or ErrInternal when there is none.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}
