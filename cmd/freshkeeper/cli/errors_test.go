// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"testing"

	"github.com/fresh-keeper/freshkeeper/lib/api"
)

func TestWrapAPICategories(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		exitCode int
	}{
		{
			name:     "unauthorized",
			err:      &api.Error{StatusCode: 401, Message: "no session"},
			category: CategoryUnauthenticated,
			exitCode: ExitUnauthenticated,
		},
		{
			name:     "not found",
			err:      &api.Error{StatusCode: 404, Message: "no such product"},
			category: CategoryNotFound,
			exitCode: ExitNotFound,
		},
		{
			name:     "validation",
			err:      &api.Error{StatusCode: 422, Errors: []string{"name is required"}},
			category: CategoryValidation,
			exitCode: ExitValidation,
		},
		{
			name:     "network",
			err:      &api.Error{StatusCode: 0, Message: "connection refused"},
			category: CategoryTransient,
			exitCode: ExitFailure,
		},
		{
			name:     "server error",
			err:      &api.Error{StatusCode: 500, Message: "boom"},
			category: CategoryTransient,
			exitCode: ExitFailure,
		},
		{
			name:     "unexpected error",
			err:      errors.New("json: cannot unmarshal"),
			category: CategoryInternal,
			exitCode: ExitFailure,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			wrapped := WrapAPI("list products", test.err)
			if wrapped.Category != test.category {
				t.Errorf("category = %q, want %q", wrapped.Category, test.category)
			}
			if wrapped.ExitCode() != test.exitCode {
				t.Errorf("exit code = %d, want %d", wrapped.ExitCode(), test.exitCode)
			}
		})
	}
}

func TestWrapAPIPreservesChain(t *testing.T) {
	cause := &api.Error{StatusCode: 404, Message: "no such product"}
	wrapped := WrapAPI("show product", cause)

	var apiErr *api.Error
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("errors.As cannot reach the api.Error through the wrapper")
	}
	if apiErr.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
}

func TestCategoryConstructors(t *testing.T) {
	if code := Validation("bad input").ExitCode(); code != ExitValidation {
		t.Errorf("Validation exit code = %d, want %d", code, ExitValidation)
	}
	if code := NotFound("missing").ExitCode(); code != ExitNotFound {
		t.Errorf("NotFound exit code = %d, want %d", code, ExitNotFound)
	}
	if code := Unauthenticated("log in first").ExitCode(); code != ExitUnauthenticated {
		t.Errorf("Unauthenticated exit code = %d, want %d", code, ExitUnauthenticated)
	}
	if code := Transient("try later").ExitCode(); code != ExitFailure {
		t.Errorf("Transient exit code = %d, want %d", code, ExitFailure)
	}
	if code := Internal("bug").ExitCode(); code != ExitFailure {
		t.Errorf("Internal exit code = %d, want %d", code, ExitFailure)
	}
}
