// Package errors provides structured error types for cabinetry.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-facing rejection reasons for layout pre-flight checks
//
// Rule violations are not errors. They are returned as data by the engine
// package; this package only covers failures and rejections.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND_*: Referenced entity missing
//   - INSUFFICIENT_* / MISSING_*: Layout pre-flight rejections
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInsufficientHeight, "needs %gmm, %gmm available", h, avail)
//	if errors.Is(err, errors.ErrCodeInsufficientHeight) {
//	    // Show the rejection reason to the user
//	}
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
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidRule       Code = "INVALID_RULE"
	ErrCodeInvalidConstraint Code = "INVALID_CONSTRAINT"
	ErrCodeInvalidCombinator Code = "INVALID_COMBINATOR"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	// Referential errors
	ErrCodeNotFound          Code = "NOT_FOUND"
	ErrCodePanelNotFound     Code = "PANEL_NOT_FOUND"
	ErrCodeComponentNotFound Code = "COMPONENT_NOT_FOUND"
	ErrCodePlacementNotFound Code = "PLACEMENT_NOT_FOUND"

	// Layout rejections
	ErrCodeInsufficientHeight Code = "INSUFFICIENT_HEIGHT"
	ErrCodeMissingRequired    Code = "MISSING_REQUIRED_COMPONENT"

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

// IsRejection reports whether err is a layout pre-flight rejection, i.e. the
// caller's placement array was left unchanged because the request could not
// be satisfied.
func IsRejection(err error) bool {
	switch GetCode(err) {
	case ErrCodeInsufficientHeight, ErrCodeMissingRequired:
		return true
	}
	return false
}
