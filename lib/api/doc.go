// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is a typed HTTP client for the Fresh Keeper server.
//
// The server authenticates with a session cookie (set by login) plus a
// CSRF token transported in the X-CSRF-Token header. The client owns a
// cookie jar and fetches the CSRF token once per session, before the
// first state-changing request.
//
// Responses arrive in a JSON envelope ({"success": bool, "message":
// string, "data": ...}); non-2xx responses and success=false envelopes
// both surface as *Error with the server's message and status code.
// Read requests (GET) retry a bounded number of times with exponential
// backoff on network and 5xx failures; 4xx responses and all mutations
// are never retried.
package api
