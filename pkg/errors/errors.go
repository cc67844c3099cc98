// Package errors provides structured error types for the dockyard docking engine.
//
// Every failure reported by the registry, the layout mutator, the drag
// resolver and the snapshot layer is an [*Error] carrying a machine-readable
// [Code]. The codes describe programmer-visible contract violations (docking
// an unknown dockable, splitting an empty root, undocking twice) rather than
// transient faults, so none of them are retried.
//
// # Error Codes
//
// Codes are grouped by the condition they describe:
//   - Registration: DUPLICATE_IDENTIFIER, NOT_REGISTERED, INVALID_DOCKABLE, STILL_DOCKED
//   - Tree mutation: NOT_DOCKED, INVALID_REGION, SELF_DOCK, INVALID_PROPORTION, LIMITED_TO_ROOT
//   - Header actions: NOT_CLOSABLE, NOT_PINNABLE, NOT_UNPINNED, NOT_MAXIMIZABLE
//   - Windows and drag: INVALID_WINDOW, NOT_FLOATABLE, NO_DRAG
//   - Layouts: UNKNOWN_IDENTIFIER, INVALID_LAYOUT, NOT_FOUND
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotDocked, "dockable %q is not docked", id)
//	if errors.Is(err, errors.ErrCodeNotDocked) {
//	    // Handle the missing position
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidLayout, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Registration errors
	ErrCodeDuplicateIdentifier Code = "DUPLICATE_IDENTIFIER"
	ErrCodeNotRegistered       Code = "NOT_REGISTERED"
	ErrCodeInvalidDockable     Code = "INVALID_DOCKABLE"
	ErrCodeStillDocked         Code = "STILL_DOCKED"

	// Tree mutation errors
	ErrCodeNotDocked         Code = "NOT_DOCKED"
	ErrCodeInvalidRegion     Code = "INVALID_REGION"
	ErrCodeSelfDock          Code = "SELF_DOCK"
	ErrCodeInvalidProportion Code = "INVALID_PROPORTION"
	ErrCodeLimitedToRoot     Code = "LIMITED_TO_ROOT"

	// Header action errors
	ErrCodeNotClosable    Code = "NOT_CLOSABLE"
	ErrCodeNotPinnable    Code = "NOT_PINNABLE"
	ErrCodeNotUnpinned    Code = "NOT_UNPINNED"
	ErrCodeNotMaximizable Code = "NOT_MAXIMIZABLE"

	// Window and drag errors
	ErrCodeInvalidWindow Code = "INVALID_WINDOW"
	ErrCodeNotFloatable  Code = "NOT_FLOATABLE"
	ErrCodeNoDrag        Code = "NO_DRAG"

	// Layout errors
	ErrCodeUnknownIdentifier Code = "UNKNOWN_IDENTIFIER"
	ErrCodeInvalidLayout     Code = "INVALID_LAYOUT"
	ErrCodeNotFound          Code = "NOT_FOUND"
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

// UserMessage returns the message of an *Error without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// SkippedError reports a partial layout restore. The restore completed for
// every known dockable; IDs lists the persistent IDs that were left out.
type SkippedError struct {
	IDs []string
}

// Error implements the error interface.
func (e *SkippedError) Error() string {
	return fmt.Sprintf("%s: skipped %d unknown dockable(s): %v", ErrCodeUnknownIdentifier, len(e.IDs), e.IDs)
}

// Code returns the error code for this error type.
func (e *SkippedError) Code() Code {
	return ErrCodeUnknownIdentifier
}

// Unwrap exposes an *Error form so Is(err, ErrCodeUnknownIdentifier) matches.
func (e *SkippedError) Unwrap() error {
	return New(ErrCodeUnknownIdentifier, "skipped %v", e.IDs)
}
