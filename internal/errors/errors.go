// Package errors provides standardized error kinds that express engine intent
// rather than implementation details. Domain packages wrap these kinds with their
// own sentinels so callers can classify failures with Is.
package errors

import (
	"errors"
	"fmt"
)

// Standard error kinds shared by all engine modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate token).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the caller failed the authorization check.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the operation is not permitted on the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrExpired indicates the resource existed but its lifetime has elapsed.
	ErrExpired = errors.New("expired")

	// ErrResourceExhausted indicates a configured capacity ceiling was reached.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrUnsupported indicates the requested behavior has no handler in this build.
	ErrUnsupported = errors.New("unsupported")

	// ErrRateLimited indicates the caller exceeded the configured request rate.
	ErrRateLimited = errors.New("rate limited")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error kind.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is like Wrap but formats the message with the given arguments.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors. Nil errors are discarded.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
