// Package errors provides domain-specific error types for ipnorm.
//
// Per-line parse rejections are not errors: they are reported as values by the
// endpoint package. The types here cover the surrounding driver: configuration,
// sources, output, storage.
package errors

import "fmt"

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeConfig indicates a configuration-related error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeSource indicates a failure reading or downloading an input source.
	ErrCodeSource ErrorCode = "SOURCE_ERROR"

	// ErrCodeOutput indicates a failure writing or uploading the normalized list.
	ErrCodeOutput ErrorCode = "OUTPUT_ERROR"

	// ErrCodeStorage indicates a database error.
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"

	// ErrCodeValidation indicates a validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewSourceError creates a new source error.
func NewSourceError(message string, cause error) *Error {
	return Wrap(ErrCodeSource, message, cause)
}

// NewOutputError creates a new output error.
func NewOutputError(message string, cause error) *Error {
	return Wrap(ErrCodeOutput, message, cause)
}

// NewStorageError creates a new storage error.
func NewStorageError(message string, cause error) *Error {
	return Wrap(ErrCodeStorage, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}

// Sentinels for errors.Is checks by category.
var (
	ErrConfig     = New(ErrCodeConfig, "")
	ErrSource     = New(ErrCodeSource, "")
	ErrOutput     = New(ErrCodeOutput, "")
	ErrStorage    = New(ErrCodeStorage, "")
	ErrValidation = New(ErrCodeValidation, "")
)
