// Package errors provides structured error types for cratemap.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the watch loop
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The taxonomy is deliberately small. A build either fails on its inputs
// (INVALID_ROOT), fails on the filesystem (IO_ERROR), or produces a graph
// that violates its own invariants (INVALID_GRAPH). There is no partial
// success: callers never receive both a graph and an error.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRoot, "workspace root must be a directory: %s", root)
//	if errors.Is(err, errors.ErrCodeInvalidRoot) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "failed to read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors: the caller handed us something unusable.
	ErrCodeInvalidRoot   Code = "INVALID_ROOT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Filesystem errors: listing, stat, or read failures during a scan or build.
	ErrCodeIO Code = "IO_ERROR"

	// Graph errors: a decoded or assembled graph violates its invariants.
	ErrCodeInvalidGraph Code = "INVALID_GRAPH"

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
