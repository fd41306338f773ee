// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/fresh-keeper/freshkeeper/lib/clock"
)

// defaultTimeout bounds each HTTP request, connect through response.
const defaultTimeout = 30 * time.Second

// Read retry policy: readAttempts total tries, exponential backoff
// starting at retryBaseDelay (doubled per attempt). Mutations are
// never retried.
const (
	readAttempts   = 3
	retryBaseDelay = 500 * time.Millisecond
)

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the root URL for API requests, without a trailing
	// slash (e.g. "https://fresh-keeper.example.com/api"). Required.
	BaseURL string

	// HTTPClient is used for all HTTP requests. Defaults to a client
	// with a fresh cookie jar and the configured timeout. If a custom
	// client is supplied without a cookie jar, one is attached, since
	// the server's session lives in a cookie.
	HTTPClient *http.Client

	// Timeout bounds each request. Defaults to 30 seconds. Ignored
	// when HTTPClient is supplied.
	Timeout time.Duration

	// CookieFile, when set, persists the session cookie to this path
	// (mode 0600) so logins survive across process invocations. Empty
	// means an in-memory jar. Ignored when HTTPClient already has a jar.
	CookieFile string

	// Clock provides time operations (retry backoff). Defaults to
	// clock.Real(); inject clock.Fake() in tests.
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger

	// RetryBaseDelay overrides the first backoff interval for read
	// retries. Zero means the default (500ms).
	RetryBaseDelay time.Duration
}

// Client is a typed Fresh Keeper API client with cookie-session
// authentication, CSRF token handling, and bounded read retries.
// Safe for concurrent use.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	clock          clock.Clock
	logger         *slog.Logger
	retryBaseDelay time.Duration

	mu        sync.Mutex
	csrfToken string
}

// NewClient creates an API client from the given configuration.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	if httpClient.Jar == nil {
		if config.CookieFile != "" {
			jar, err := newPersistentJar(config.CookieFile, baseURL)
			if err != nil {
				return nil, err
			}
			httpClient.Jar = jar
		} else {
			jar, err := cookiejar.New(nil)
			if err != nil {
				return nil, fmt.Errorf("api: creating cookie jar: %w", err)
			}
			httpClient.Jar = jar
		}
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	baseDelay := config.RetryBaseDelay
	if baseDelay == 0 {
		baseDelay = retryBaseDelay
	}

	return &Client{
		baseURL:        baseURL,
		httpClient:     httpClient,
		clock:          clk,
		logger:         logger,
		retryBaseDelay: baseDelay,
	}, nil
}

// envelope is the server's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

// get executes a GET request and decodes the envelope data into
// result. Retries up to readAttempts times with exponential backoff on
// network errors and 5xx responses; 4xx is returned immediately.
func (client *Client) get(ctx context.Context, path string, result any) error {
	var lastErr error
	for attempt := 0; attempt < readAttempts; attempt++ {
		if attempt > 0 {
			delay := client.retryBaseDelay << (attempt - 1)
			client.logger.Debug("retrying read",
				"path", path,
				"attempt", attempt+1,
				"delay", delay,
			)
			select {
			case <-client.clock.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = client.do(ctx, http.MethodGet, path, nil, result)
		if lastErr == nil {
			return nil
		}
		if IsClientError(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

// getRaw executes a GET request and returns the raw response body,
// bypassing envelope decoding. Used for endpoints whose payload rides
// outside the standard envelope (the CSRF token). Same retry policy
// as get.
func (client *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < readAttempts; attempt++ {
		if attempt > 0 {
			delay := client.retryBaseDelay << (attempt - 1)
			select {
			case <-client.clock.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, err := client.doRaw(ctx, http.MethodGet, path)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if IsClientError(lastErr) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// post executes a POST request. Never retried.
func (client *Client) post(ctx context.Context, path string, body, result any) error {
	return client.do(ctx, http.MethodPost, path, body, result)
}

// put executes a PUT request. Never retried.
func (client *Client) put(ctx context.Context, path string, body, result any) error {
	return client.do(ctx, http.MethodPut, path, body, result)
}

// delete executes a DELETE request. Never retried.
func (client *Client) delete(ctx context.Context, path string) error {
	return client.do(ctx, http.MethodDelete, path, nil, nil)
}

// do executes one HTTP request against the API. The path is relative
// to the base URL. A non-nil body is JSON-encoded. On a 2xx response
// with a successful envelope, the envelope's data field is decoded
// into result (when result is non-nil). All failures are *Error.
func (client *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token := client.currentCSRFToken(); token != "" {
		request.Header.Set("X-CSRF-Token", token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		// Context cancellation is the caller's doing, not a network
		// condition worth wrapping as an API error.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return networkError(err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return networkError(err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return parseErrorBody(response.StatusCode, responseBody)
	}

	// Some endpoints (login) legitimately return an empty body.
	if len(bytes.TrimSpace(responseBody)) == 0 {
		return nil
	}

	var wrapped envelope
	if err := json.Unmarshal(responseBody, &wrapped); err != nil {
		return &Error{StatusCode: response.StatusCode, Message: "unexpected response format"}
	}
	if !wrapped.Success {
		return &Error{
			StatusCode: response.StatusCode,
			Message:    wrapped.Message,
			Errors:     wrapped.Errors,
		}
	}
	if result != nil {
		if err := json.Unmarshal(wrapped.Data, result); err != nil {
			return &Error{StatusCode: response.StatusCode, Message: "unexpected response format"}
		}
	}
	return nil
}

// doRaw executes one GET request and returns the body without
// envelope interpretation. Non-2xx responses become *Error.
func (client *Client) doRaw(ctx context.Context, method, path string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if token := client.currentCSRFToken(); token != "" {
		request.Header.Set("X-CSRF-Token", token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, networkError(err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, networkError(err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, parseErrorBody(response.StatusCode, body)
	}
	return body, nil
}

// parseErrorBody builds an *Error from a non-2xx response body,
// tolerating both enveloped and bare error payloads.
func parseErrorBody(statusCode int, body []byte) *Error {
	apiError := &Error{StatusCode: statusCode}

	var wrapped envelope
	if json.Unmarshal(body, &wrapped) == nil && wrapped.Message != "" {
		apiError.Message = wrapped.Message
		apiError.Errors = wrapped.Errors
		return apiError
	}

	// Echo-style bare {"message": "..."} bodies.
	var bare struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &bare) == nil && bare.Message != "" {
		apiError.Message = bare.Message
		return apiError
	}

	apiError.Message = strings.TrimSpace(string(body))
	return apiError
}
