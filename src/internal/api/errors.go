package api

import (
	"encoding/json"
	"net/http"
)

// ErrorCode represents standard API error codes.
type ErrorCode string

const (
	// ErrCodeInvalidRequest indicates malformed or invalid request data.
	ErrCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrCodeForbidden indicates the client is not allowed to use the API.
	ErrCodeForbidden ErrorCode = "forbidden"

	// ErrCodeEmptyInput indicates the request contained no non-blank line.
	ErrCodeEmptyInput ErrorCode = "empty_input"

	// ErrCodePayloadTooLarge indicates the body exceeded the configured limit.
	ErrCodePayloadTooLarge ErrorCode = "payload_too_large"

	// ErrCodeUnsupportedMediaType indicates a wrong Content-Type.
	ErrCodeUnsupportedMediaType ErrorCode = "unsupported_media_type"

	// ErrCodeInternalError indicates an internal server error.
	ErrCodeInternalError ErrorCode = "internal_error"
)

// APIError represents a structured API error response.
type APIError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps an APIError for JSON responses.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code ErrorCode, message string) APIError {
	return APIError{
		Code:    code,
		Message: message,
	}
}

// WithDetails adds details to an APIError.
func (e APIError) WithDetails(details map[string]interface{}) APIError {
	e.Details = details
	return e
}

// WriteError writes an error response to the HTTP response writer.
func WriteError(w http.ResponseWriter, statusCode int, err APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: err})
}

// WriteInvalidRequest writes a 400 Bad Request error.
func WriteInvalidRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, NewAPIError(ErrCodeInvalidRequest, message))
}

// WriteForbidden writes a 403 Forbidden error.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// WriteEmptyInput writes a 422 error for input without any non-blank line.
func WriteEmptyInput(w http.ResponseWriter) {
	WriteError(w, http.StatusUnprocessableEntity, NewAPIError(ErrCodeEmptyInput, "input is empty"))
}

// WritePayloadTooLarge writes a 413 error with the configured limit.
func WritePayloadTooLarge(w http.ResponseWriter, limit int64) {
	err := NewAPIError(ErrCodePayloadTooLarge, "request body is too large").
		WithDetails(map[string]interface{}{"max_body_bytes": limit})
	WriteError(w, http.StatusRequestEntityTooLarge, err)
}

// WriteUnsupportedMediaType writes a 415 error naming the expected type.
func WriteUnsupportedMediaType(w http.ResponseWriter, expected string) {
	WriteError(w, http.StatusUnsupportedMediaType, NewAPIError(ErrCodeUnsupportedMediaType, "Content-Type must be "+expected))
}

// WriteInternalError writes a 500 Internal Server Error.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}
