package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "error without cause",
			err:      &Error{Code: ErrCodeConfig, Message: "invalid configuration"},
			expected: "[CONFIG_ERROR] invalid configuration",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeSource, "failed to open list", errors.New("permission denied")),
			expected: "[SOURCE_ERROR] failed to open list: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "wrapper", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to find the cause")
	}
}

func TestError_Is(t *testing.T) {
	err1 := &Error{Code: ErrCodeConfig, Message: "test error"}
	err2 := &Error{Code: ErrCodeConfig, Message: "another error"}
	err3 := &Error{Code: ErrCodeOutput, Message: "output error"}

	if !err1.Is(err2) {
		t.Errorf("Expected errors with same code to match")
	}
	if err1.Is(err3) {
		t.Errorf("Expected errors with different codes to not match")
	}
}

func TestSentinels(t *testing.T) {
	wrapped := fmt.Errorf("normalize: %w", NewSourceError("read failed", errors.New("eof")))

	if !errors.Is(wrapped, ErrSource) {
		t.Errorf("expected wrapped source error to match ErrSource")
	}
	if errors.Is(wrapped, ErrStorage) {
		t.Errorf("source error must not match ErrStorage")
	}

	var domainErr *Error
	if !errors.As(wrapped, &domainErr) {
		t.Fatalf("expected errors.As to find *Error")
	}
	if domainErr.Code != ErrCodeSource {
		t.Errorf("Code = %s, want %s", domainErr.Code, ErrCodeSource)
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		name string
		err  *Error
		code ErrorCode
	}{
		{"config", NewConfigError("m", cause), ErrCodeConfig},
		{"source", NewSourceError("m", cause), ErrCodeSource},
		{"output", NewOutputError("m", cause), ErrCodeOutput},
		{"storage", NewStorageError("m", cause), ErrCodeStorage},
		{"validation", NewValidationError("m", cause), ErrCodeValidation},
		{"internal", NewInternalError("m", cause), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.Cause != cause {
				t.Errorf("Cause not preserved")
			}
		})
	}
}
