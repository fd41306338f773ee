// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents a failed API request. StatusCode 0 means no
// response was received at all (network or connectivity failure);
// otherwise it is the HTTP status of the response.
type Error struct {
	// StatusCode is the HTTP response status, or 0 for network errors.
	StatusCode int

	// Message is the server-provided error description, or a generic
	// connectivity message for network errors.
	Message string

	// Errors contains field-level validation messages, present on
	// validation failures.
	Errors []string
}

func (err *Error) Error() string {
	var builder strings.Builder
	if err.StatusCode == 0 {
		builder.WriteString("api: network error")
	} else {
		fmt.Fprintf(&builder, "api: HTTP %d", err.StatusCode)
	}
	if err.Message != "" {
		builder.WriteString(": ")
		builder.WriteString(err.Message)
	}
	for _, detail := range err.Errors {
		builder.WriteString("; ")
		builder.WriteString(detail)
	}
	return builder.String()
}

// networkError wraps a transport-level failure (no response received).
func networkError(cause error) *Error {
	return &Error{
		StatusCode: 0,
		Message:    fmt.Sprintf("network error, check your connection: %v", cause),
	}
}

// IsNetworkError reports whether err is an API error with no response
// received.
func IsNetworkError(err error) bool {
	var apiError *Error
	return errors.As(err, &apiError) && apiError.StatusCode == 0
}

// IsNotFound reports whether err is an API 404 response.
func IsNotFound(err error) bool {
	var apiError *Error
	return errors.As(err, &apiError) && apiError.StatusCode == 404
}

// IsUnauthorized reports whether err is an API 401 response (missing
// or rejected credentials).
func IsUnauthorized(err error) bool {
	var apiError *Error
	return errors.As(err, &apiError) && apiError.StatusCode == 401
}

// IsValidation reports whether err is an API 400 or 422 response.
func IsValidation(err error) bool {
	var apiError *Error
	if !errors.As(err, &apiError) {
		return false
	}
	return apiError.StatusCode == 400 || apiError.StatusCode == 422
}

// IsClientError reports whether err is any 4xx API response. Client
// errors are never retried: the request was received and rejected, so
// resending the same bytes wastes a round trip.
func IsClientError(err error) bool {
	var apiError *Error
	return errors.As(err, &apiError) && apiError.StatusCode >= 400 && apiError.StatusCode < 500
}
