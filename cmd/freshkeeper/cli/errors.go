// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/fresh-keeper/freshkeeper/lib/api"
)

// ErrorCategory classifies command errors so that the process exit
// code reflects the kind of failure, letting scripts branch without
// parsing error message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// missing required arguments, unparseable values, a rejected form.
	// The caller should fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced product does not exist.
	// Retrying with the same parameters will not help.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryUnauthenticated indicates there is no valid session.
	// The caller should log in and retry.
	CategoryUnauthenticated ErrorCategory = "unauthenticated"

	// CategoryTransient indicates a temporary failure: network error,
	// timeout, server error. The caller should back off and retry.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates an unexpected error: bugs, I/O
	// failures, parse errors on data the system produced.
	CategoryInternal ErrorCategory = "internal"
)

// Exit codes by category. Transient and internal failures share the
// generic failure code; the distinct codes are the ones scripts act on.
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitValidation      = 2
	ExitNotFound        = 3
	ExitUnauthenticated = 4
)

// CommandError is a categorized error returned by CLI commands. The
// main function inspects the category (via ExitCode) to pick the
// process exit code.
//
// CommandError wraps an inner error, preserving the full error chain
// for debugging while adding category metadata. Use the
// category-specific constructors (Validation, NotFound, etc.) rather
// than constructing CommandError directly.
type CommandError struct {
	// Category classifies the error for exit-code mapping.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error
}

// Error returns the underlying error message. The category is not
// included in the string — it travels via the exit code.
func (e *CommandError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the CommandError wrapper.
func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode maps the category to a process exit code.
func (e *CommandError) ExitCode() int {
	switch e.Category {
	case CategoryValidation:
		return ExitValidation
	case CategoryNotFound:
		return ExitNotFound
	case CategoryUnauthenticated:
		return ExitUnauthenticated
	}
	return ExitFailure
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced product does not exist.
func NotFound(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Unauthenticated creates an unauthenticated error: no valid session.
func Unauthenticated(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryUnauthenticated, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error: a temporary failure that may
// succeed on retry.
func Transient(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or
// I/O error.
func Internal(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// WrapAPI categorizes an error from the API client. The operation
// string prefixes the message ("list products: connection refused").
func WrapAPI(operation string, err error) *CommandError {
	category := CategoryInternal
	var apiErr *api.Error
	switch {
	case api.IsUnauthorized(err):
		category = CategoryUnauthenticated
	case api.IsNotFound(err):
		category = CategoryNotFound
	case api.IsValidation(err):
		category = CategoryValidation
	case api.IsNetworkError(err):
		category = CategoryTransient
	case errors.As(err, &apiErr) && apiErr.StatusCode >= 500:
		// Server-side failure: worth retrying later.
		category = CategoryTransient
	}
	return &CommandError{Category: category, Err: fmt.Errorf("%s: %w", operation, err)}
}
