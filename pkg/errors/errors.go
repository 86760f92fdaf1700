// Package errors provides structured error types for the picforge layout engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library surfaces
//   - Machine-readable error codes for programmatic handling
//   - Failure messages that carry the offending component, port, and
//     cross-section identifiers so layout bugs can be traced
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource lookups that came up empty
//   - Layout codes (PORT_WIDTH_MISMATCH, NO_TRANSITION_DEFINED, UNROUTABLE,
//     CYCLIC_REFERENCE): geometric or topological build failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodePortNotFound, "component %q has no port %q", comp, port)
//	if errors.Is(err, errors.ErrCodePortNotFound) {
//	    // Handle missing port
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeUnroutable, origErr, "bundle %d failed", i)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidNetlist Code = "INVALID_NETLIST"
	ErrCodeInvalidLayout  Code = "INVALID_LAYOUT"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound            Code = "NOT_FOUND"
	ErrCodePortNotFound        Code = "PORT_NOT_FOUND"
	ErrCodeFactoryNotFound     Code = "FACTORY_NOT_FOUND"
	ErrCodeUnknownCrossSection Code = "UNKNOWN_CROSS_SECTION"
	ErrCodeFileNotFound        Code = "FILE_NOT_FOUND"

	// Layout construction errors
	ErrCodeDuplicatePortName   Code = "DUPLICATE_PORT_NAME"
	ErrCodePortWidthMismatch   Code = "PORT_WIDTH_MISMATCH"
	ErrCodeNoTransitionDefined Code = "NO_TRANSITION_DEFINED"
	ErrCodeUnroutable          Code = "UNROUTABLE"
	ErrCodeCyclicReference     Code = "CYCLIC_REFERENCE"
	ErrCodeInvalidTechnology   Code = "INVALID_TECHNOLOGY"
	ErrCodeFinalized           Code = "COMPONENT_FINALIZED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
