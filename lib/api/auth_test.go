// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// authTestServer simulates the auth surface: /csrf issues a token,
// /login requires it, /products requires the session cookie set by
// login.
func authTestServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var csrfFetches atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/csrf", func(w http.ResponseWriter, r *http.Request) {
		csrfFetches.Add(1)
		fmt.Fprint(w, `{"success": true, "csrf_token": "token-123"}`)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-CSRF-Token") != "token-123" {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"success": false, "message": "missing csrf token"}`)
			return
		}
		var credentials struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := jsonDecode(r, &credentials); err != nil || credentials.Password != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"success": false, "message": "invalid email or password"}`)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "session-jwt"})
		// Successful login answers with an empty body.
	})
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true}`)
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("token")
		if err != nil || cookie.Value != "session-jwt" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"success": false, "message": "missing or malformed jwt"}`)
			return
		}
		fmt.Fprint(w, `{"success": true, "data": []}`)
	})
	return httptest.NewServer(mux), &csrfFetches
}

func jsonDecode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func TestLoginEmptyBodyVerifiesSessionAndSynthesizesUser(t *testing.T) {
	server, csrfFetches := authTestServer(t)
	defer server.Close()

	client, _ := newTestClient(t, server)
	user, err := client.Login(context.Background(), "alice@example.com", "correct")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "alice@example.com" || user.Name != "alice" {
		t.Errorf("synthesized user wrong: %+v", user)
	}
	if got := csrfFetches.Load(); got != 1 {
		t.Errorf("csrf fetched %d times, want 1", got)
	}
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	server, _ := authTestServer(t)
	defer server.Close()

	client, _ := newTestClient(t, server)
	_, err := client.Login(context.Background(), "alice@example.com", "wrong")
	if !IsUnauthorized(err) {
		t.Fatalf("got %v, want 401 *Error", err)
	}
}

func TestCSRFTokenFetchedOncePerSession(t *testing.T) {
	server, csrfFetches := authTestServer(t)
	defer server.Close()

	client, _ := newTestClient(t, server)
	ctx := context.Background()
	if err := client.EnsureCSRFToken(ctx); err != nil {
		t.Fatalf("EnsureCSRFToken: %v", err)
	}
	if err := client.EnsureCSRFToken(ctx); err != nil {
		t.Fatalf("EnsureCSRFToken (second): %v", err)
	}
	if _, err := client.Login(ctx, "alice@example.com", "correct"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got := csrfFetches.Load(); got != 1 {
		t.Errorf("csrf fetched %d times, want 1", got)
	}
}

func TestLogoutClearsCSRFTokenEvenOnServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/csrf", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "csrf_token": "token-123"}`)
	})
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, _ := newTestClient(t, server)
	ctx := context.Background()
	if err := client.EnsureCSRFToken(ctx); err != nil {
		t.Fatalf("EnsureCSRFToken: %v", err)
	}
	if err := client.Logout(ctx); err == nil {
		t.Fatal("Logout should propagate the server error")
	}
	if token := client.currentCSRFToken(); token != "" {
		t.Errorf("csrf token not cleared after failed logout: %q", token)
	}
}
