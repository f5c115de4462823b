// Package apperrors defines the closed error taxonomy every trips
// operation resolves to before returning to the transport layer. The
// public message is a single sentence; the wrapped cause is for logs only
// and never reaches a client.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure
type Kind int

const (
	// KindValidation marks malformed, missing, or out-of-enum input
	KindValidation Kind = iota
	// KindAuthorization marks an authenticated but unpermitted caller
	KindAuthorization
	// KindNotFound marks an entity that is absent, not owned by the
	// caller, or not in the required state. These are deliberately
	// indistinguishable so callers cannot probe existence or ownership.
	KindNotFound
	// KindConflict marks a lost concurrent race. Reported to the loser
	// with the same surface as not-found.
	KindConflict
	// KindPrecondition marks caller state that blocks the operation
	KindPrecondition
	// KindInternal marks store unavailability or an unexpected failure
	KindInternal
)

// AppError carries a failure kind plus a caller-safe message
type AppError struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is/As chains
func (e *AppError) Unwrap() error {
	return e.cause
}

// New creates an AppError with the given kind and message
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap creates an AppError that keeps its cause for logging
func Wrap(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, cause: cause}
}

// Validation creates a validation error
func Validation(message string) *AppError {
	return New(KindValidation, message)
}

// Authorization creates an authorization error
func Authorization(message string) *AppError {
	return New(KindAuthorization, message)
}

// NotFound creates a not-found error
func NotFound(message string) *AppError {
	return New(KindNotFound, message)
}

// Conflict creates a conflict error
func Conflict(message string) *AppError {
	return New(KindConflict, message)
}

// Precondition creates a precondition error
func Precondition(message string) *AppError {
	return New(KindPrecondition, message)
}

// Internal wraps an unexpected failure behind a generic message
func Internal(cause error) *AppError {
	return Wrap(KindInternal, "something went wrong, please try again later", cause)
}

// KindOf extracts the kind from err, defaulting to KindInternal for
// anything outside the taxonomy.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// PublicMessage returns the caller-safe message for err
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "something went wrong, please try again later"
}
