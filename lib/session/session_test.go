// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fresh-keeper/freshkeeper/lib/api"
)

// fakeAuth is a scripted AuthAPI.
type fakeAuth struct {
	loginErr   error
	signupErr  error
	logoutErr  error
	listErr    error
	user       api.User
	logoutSeen bool
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (api.User, error) {
	if f.loginErr != nil {
		return api.User{}, f.loginErr
	}
	return f.user, nil
}

func (f *fakeAuth) Signup(ctx context.Context, name, email, password string) (api.User, error) {
	if f.signupErr != nil {
		return api.User{}, f.signupErr
	}
	return f.user, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutSeen = true
	return f.logoutErr
}

func (f *fakeAuth) ListProducts(ctx context.Context) ([]api.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return nil, nil
}

func tempSessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestLoginSuccess(t *testing.T) {
	fake := &fakeAuth{user: api.User{ID: 1, Email: "alice@example.com", Name: "alice"}}
	store := New(fake, tempSessionPath(t), nil)

	if err := store.Login(context.Background(), "alice@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if store.Status() != StatusAuthenticated || !store.IsAuthenticated() {
		t.Errorf("status = %v, want authenticated", store.Status())
	}
	if user := store.User(); user == nil || user.Email != "alice@example.com" {
		t.Errorf("user = %+v", user)
	}
}

func TestLoginWrongPasswordLeavesNoPartialState(t *testing.T) {
	fake := &fakeAuth{loginErr: &api.Error{StatusCode: 401, Message: "invalid email or password"}}
	store := New(fake, tempSessionPath(t), nil)

	if err := store.Login(context.Background(), "alice@example.com", "wrong"); err == nil {
		t.Fatal("Login should fail")
	}
	if store.Status() != StatusError {
		t.Errorf("status = %v, want error", store.Status())
	}
	if store.IsAuthenticated() {
		t.Error("IsAuthenticated() true after failed login")
	}
	if user := store.User(); user != nil {
		t.Errorf("partial user set after failed login: %+v", user)
	}
	if msg := store.LastError(); !strings.Contains(msg, "incorrect") {
		t.Errorf("LastError() = %q, want credentials message", msg)
	}
}

func TestLogoutClearsStateEvenOnServerError(t *testing.T) {
	fake := &fakeAuth{
		user:      api.User{ID: 1, Email: "alice@example.com", Name: "alice"},
		logoutErr: &api.Error{StatusCode: 500, Message: "boom"},
	}
	store := New(fake, tempSessionPath(t), nil)
	ctx := context.Background()

	if err := store.Login(ctx, "alice@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := store.Logout(ctx); err == nil {
		t.Fatal("Logout should propagate the server error")
	}
	if !fake.logoutSeen {
		t.Error("server logout never attempted")
	}
	if store.Status() != StatusUnauthenticated || store.User() != nil {
		t.Errorf("local state not cleared: status=%v user=%+v", store.Status(), store.User())
	}
}

func TestCheckAuthFailureIsLoggedOutNotFatal(t *testing.T) {
	fake := &fakeAuth{
		user:    api.User{ID: 1, Email: "alice@example.com", Name: "alice"},
		listErr: &api.Error{StatusCode: 0, Message: "network error"},
	}
	store := New(fake, tempSessionPath(t), nil)
	ctx := context.Background()

	fake.listErr = nil
	if err := store.Login(ctx, "alice@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	fake.listErr = &api.Error{StatusCode: 0, Message: "network error"}
	store.CheckAuth(ctx)
	if store.Status() != StatusUnauthenticated {
		t.Errorf("status = %v, want unauthenticated after failed auth check", store.Status())
	}
}

func TestCheckAuthKeepsValidSession(t *testing.T) {
	fake := &fakeAuth{user: api.User{ID: 1, Email: "alice@example.com", Name: "alice"}}
	store := New(fake, tempSessionPath(t), nil)
	ctx := context.Background()

	if err := store.Login(ctx, "alice@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	store.CheckAuth(ctx)
	if !store.IsAuthenticated() {
		t.Error("valid session dropped by auth check")
	}
}

func TestCheckAuthWithoutStoredUserRequiresLogin(t *testing.T) {
	// A live cookie with no session file: the probe succeeds but the
	// store has no identity to restore, so the user must log in again.
	fake := &fakeAuth{user: api.User{ID: 1, Email: "alice@example.com", Name: "alice"}}
	store := New(fake, tempSessionPath(t), nil)
	ctx := context.Background()

	store.CheckAuth(ctx)
	if store.IsAuthenticated() {
		t.Fatal("authenticated without a stored user")
	}
	if store.Status() != StatusUnauthenticated {
		t.Errorf("status = %v, want %v", store.Status(), StatusUnauthenticated)
	}
	if store.User() != nil {
		t.Errorf("user = %v, want nil", store.User())
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := tempSessionPath(t)
	fake := &fakeAuth{user: api.User{ID: 7, Email: "bob@example.com", Name: "bob"}}

	first := New(fake, path, nil)
	if err := first.Login(context.Background(), "bob@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	second := New(fake, path, nil)
	if err := second.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !second.IsAuthenticated() {
		t.Error("persisted session not restored")
	}
	if user := second.User(); user == nil || user.ID != 7 {
		t.Errorf("restored user = %+v", user)
	}
}

func TestPersistenceNeverStoresTransientState(t *testing.T) {
	path := tempSessionPath(t)
	fake := &fakeAuth{loginErr: &api.Error{StatusCode: 401, Message: "no"}}

	store := New(fake, path, nil)
	_ = store.Login(context.Background(), "x@example.com", "bad")
	if err := store.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	for _, transient := range []string{"loading", `"error"`} {
		if strings.Contains(content, transient) {
			t.Errorf("session file contains transient state %s: %s", transient, content)
		}
	}

	restored := New(fake, path, nil)
	if err := restored.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if restored.Status() != StatusUnauthenticated {
		t.Errorf("restored status = %v, want unauthenticated", restored.Status())
	}
}

func TestLoadMissingFileIsIdle(t *testing.T) {
	store := New(&fakeAuth{}, filepath.Join(t.TempDir(), "absent.json"), nil)
	if err := store.Load(); err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}
	if store.Status() != StatusIdle {
		t.Errorf("status = %v, want idle", store.Status())
	}
}

func TestSessionFileMode(t *testing.T) {
	path := tempSessionPath(t)
	fake := &fakeAuth{user: api.User{ID: 1, Email: "a@b.c", Name: "a"}}
	store := New(fake, path, nil)
	if err := store.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("session file mode = %o, want 0600", mode)
	}
}
