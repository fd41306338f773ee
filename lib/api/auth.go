// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"strings"
)

// csrfResponse is the shape of the GET /csrf endpoint. The token
// travels at the top level, outside the standard envelope's data
// field, so this endpoint is fetched raw.
type csrfResponse struct {
	CSRFToken string `json:"csrf_token"`
}

// EnsureCSRFToken fetches the CSRF token if the client does not hold
// one yet. Idempotent; called automatically before login and signup.
func (client *Client) EnsureCSRFToken(ctx context.Context) error {
	if client.currentCSRFToken() != "" {
		return nil
	}

	body, err := client.getRaw(ctx, "/csrf")
	if err != nil {
		return err
	}
	var response csrfResponse
	if err := json.Unmarshal(body, &response); err != nil || response.CSRFToken == "" {
		return &Error{Message: "csrf token missing from response"}
	}

	client.mu.Lock()
	client.csrfToken = response.CSRFToken
	client.mu.Unlock()
	return nil
}

// ClearCSRFToken drops the client-side CSRF token. Called on logout
// regardless of whether the server call succeeded.
func (client *Client) ClearCSRFToken() {
	client.mu.Lock()
	client.csrfToken = ""
	client.mu.Unlock()
}

func (client *Client) currentCSRFToken() string {
	client.mu.Lock()
	defer client.mu.Unlock()
	return client.csrfToken
}

// signupRequest is the POST /signup payload.
type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the POST /login payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new account. Fetches the CSRF token first if the
// client does not hold one.
func (client *Client) Signup(ctx context.Context, name, email, password string) (User, error) {
	if err := client.EnsureCSRFToken(ctx); err != nil {
		return User{}, err
	}

	var user User
	err := client.post(ctx, "/signup", signupRequest{Name: name, Email: email, Password: password}, &user)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// Login authenticates and establishes the session cookie. Fetches the
// CSRF token first if absent.
//
// The server may answer a successful login with an empty body (the
// identity lives in the session cookie, not the response). In that
// case the session is verified against the authenticated product list
// endpoint and a User is synthesized from the login email.
func (client *Client) Login(ctx context.Context, email, password string) (User, error) {
	if err := client.EnsureCSRFToken(ctx); err != nil {
		return User{}, err
	}

	var user User
	if err := client.post(ctx, "/login", loginRequest{Email: email, Password: password}, &user); err != nil {
		return User{}, err
	}

	if user == (User{}) {
		// Empty-body login: confirm the cookie works before
		// reporting success.
		if _, err := client.ListProducts(ctx); err != nil {
			return User{}, err
		}
		user = User{Email: email, Name: localPart(email)}
	}
	return user, nil
}

// Logout ends the server session. The client-side CSRF token is
// cleared even when the server call fails, so a retried login starts
// from a clean slate.
func (client *Client) Logout(ctx context.Context) error {
	err := client.post(ctx, "/logout", nil, nil)
	client.ClearCSRFToken()
	return err
}

// localPart returns the part of an email address before the "@",
// used as a fallback display name.
func localPart(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
