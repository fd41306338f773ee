// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

// Package session owns the client's authentication state: who is
// logged in and where in the login lifecycle the client is.
//
// The Store is an explicit, injectable object — commands and the TUI
// receive it as a parameter, never through a package-level singleton —
// so auth behavior is testable without global reset logic. State is
// mutated exclusively by Login, Signup, Logout, and CheckAuth; view
// code only reads it.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fresh-keeper/freshkeeper/lib/api"
)

// Status is the authentication lifecycle state.
type Status string

const (
	// StatusIdle means no auth operation has run yet.
	StatusIdle Status = "idle"
	// StatusLoading means a login, signup, or auth check is in flight.
	StatusLoading Status = "loading"
	// StatusAuthenticated means the session cookie is established and
	// User is set.
	StatusAuthenticated Status = "authenticated"
	// StatusUnauthenticated means the client is logged out.
	StatusUnauthenticated Status = "unauthenticated"
	// StatusError means the last auth operation failed. User is nil.
	StatusError Status = "error"
)

// AuthAPI is the slice of the API client the session store needs.
// *api.Client satisfies it.
type AuthAPI interface {
	Signup(ctx context.Context, name, email, password string) (api.User, error)
	Login(ctx context.Context, email, password string) (api.User, error)
	Logout(ctx context.Context) error
	ListProducts(ctx context.Context) ([]api.Product, error)
}

// Store holds authentication state for one running client.
// Safe for concurrent use.
type Store struct {
	api      AuthAPI
	logger   *slog.Logger
	filePath string

	mu        sync.Mutex
	status    Status
	user      *api.User
	lastError string
}

// New creates a session store. filePath is where the session persists
// across runs (see SessionFilePath); pass empty to disable persistence.
func New(authAPI AuthAPI, filePath string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		api:      authAPI,
		logger:   logger,
		filePath: filePath,
		status:   StatusIdle,
	}
}

// Status returns the current lifecycle state.
func (store *Store) Status() Status {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.status
}

// User returns a copy of the authenticated user, or nil.
func (store *Store) User() *api.User {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.user == nil {
		return nil
	}
	user := *store.user
	return &user
}

// IsAuthenticated reports whether a user is logged in.
func (store *Store) IsAuthenticated() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.status == StatusAuthenticated && store.user != nil
}

// LastError returns the message of the most recent failed auth
// operation, or empty.
func (store *Store) LastError() string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.lastError
}

// Login authenticates with the server. On success the store is
// authenticated with the returned user; on failure it transitions to
// StatusError with no user set — never a partial user object.
func (store *Store) Login(ctx context.Context, email, password string) error {
	store.setLoading()

	user, err := store.api.Login(ctx, email, password)
	if err != nil {
		store.setError(loginErrorMessage(err))
		return err
	}

	store.setAuthenticated(user)
	store.persist()
	return nil
}

// Signup creates an account and authenticates. Same state transitions
// as Login.
func (store *Store) Signup(ctx context.Context, name, email, password string) error {
	store.setLoading()

	user, err := store.api.Signup(ctx, name, email, password)
	if err != nil {
		store.setError(err.Error())
		return err
	}

	store.setAuthenticated(user)
	store.persist()
	return nil
}

// Logout ends the session. Local state is cleared even when the
// server call fails — the user asked to log out, so they are logged
// out locally no matter what.
func (store *Store) Logout(ctx context.Context) error {
	err := store.api.Logout(ctx)
	if err != nil {
		store.logger.Warn("server logout failed, clearing local state anyway", "error", err)
	}

	store.mu.Lock()
	store.status = StatusUnauthenticated
	store.user = nil
	store.lastError = ""
	store.mu.Unlock()

	store.persist()
	return err
}

// CheckAuth probes the server to verify the persisted session still
// works, by calling the authenticated product list endpoint. Any
// failure (network, 401, server error) yields unauthenticated, not
// an error: the client must always reach a usable logged-out state.
//
// A successful probe without a stored user also yields
// unauthenticated. The probe endpoint returns products, not identity,
// so when the session file is gone there is no name or email to
// restore; a re-login rebuilds both the identity and the cookie.
func (store *Store) CheckAuth(ctx context.Context) {
	store.mu.Lock()
	hadUser := store.user
	store.status = StatusLoading
	store.mu.Unlock()

	_, err := store.api.ListProducts(ctx)

	store.mu.Lock()
	if err != nil || hadUser == nil {
		store.status = StatusUnauthenticated
		store.user = nil
	} else {
		store.status = StatusAuthenticated
	}
	store.lastError = ""
	store.mu.Unlock()

	if err != nil {
		store.logger.Debug("auth check failed, treating as logged out", "error", err)
	}
	store.persist()
}

func (store *Store) setLoading() {
	store.mu.Lock()
	store.status = StatusLoading
	store.lastError = ""
	store.mu.Unlock()
}

func (store *Store) setAuthenticated(user api.User) {
	store.mu.Lock()
	store.status = StatusAuthenticated
	store.user = &user
	store.lastError = ""
	store.mu.Unlock()
}

func (store *Store) setError(message string) {
	store.mu.Lock()
	store.status = StatusError
	store.user = nil
	store.lastError = message
	store.mu.Unlock()
}

// loginErrorMessage maps login failures to user-facing messages.
func loginErrorMessage(err error) string {
	switch {
	case api.IsUnauthorized(err):
		return "email or password is incorrect"
	case api.IsValidation(err):
		return "invalid login input"
	case api.IsNetworkError(err):
		return "cannot reach the server, check your connection"
	}
	return err.Error()
}
