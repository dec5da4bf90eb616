// Package errors provides structured error types for the bingoforge tools.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across both command-line tools
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Each code identifies one failure category:
//   - INVALID_CONFIG: bad or mutually-exclusive options
//   - INVALID_FORMAT: malformed value-file content
//   - VALIDATION_FAILED: column labels inconsistent with the card grid
//   - INSUFFICIENT_VALUES: value pool too small for the requested grid
//   - DUPLICATE_EXHAUSTION: distinct-card retry budget exhausted
//   - IO_ERROR: unreadable input or unwritable output
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "line %d: mixed tagged and untagged values", n)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle format error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "read value file %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Option and configuration errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Value-file content errors
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Column-label consistency errors
	ErrCodeValidation Code = "VALIDATION_FAILED"

	// Pool capacity errors
	ErrCodeInsufficientValues  Code = "INSUFFICIENT_VALUES"
	ErrCodeDuplicateExhaustion Code = "DUPLICATE_EXHAUSTION"

	// File system errors
	ErrCodeIO Code = "IO_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
