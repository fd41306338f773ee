// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fresh-keeper/freshkeeper/lib/clock"
)

// newTestClient creates a Client against the given test server with a
// fake clock, and returns both.
func newTestClient(t *testing.T, server *httptest.Server) (*Client, *clock.FakeClock) {
	t.Helper()
	fakeClock := clock.Fake(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	client, err := NewClient(Config{
		BaseURL: server.URL,
		Clock:   fakeClock,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, fakeClock
}

func productListBody(products string) string {
	return fmt.Sprintf(`{"success": true, "data": %s}`, products)
}

func TestListProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		fmt.Fprint(w, productListBody(`[
			{"id": 1, "name": "牛乳", "quantity": 1, "expiry_date": "2026-09-03T00:00:00Z", "type": "use_by", "is_notified": true, "days_left": 2},
			{"id": 2, "name": "yogurt", "quantity": 3, "expiry_date": "2026-09-10T00:00:00Z", "type": "best_before", "is_notified": false, "days_left": 9}
		]`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)
	products, err := client.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	if products[0].Name != "牛乳" || products[0].DaysLeft != 2 || !products[0].IsNotified {
		t.Errorf("first product decoded wrong: %+v", products[0])
	}
}

func TestReadRetriesOnServerError(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"success": false, "message": "temporary"}`)
			return
		}
		fmt.Fprint(w, productListBody("[]"))
	}))
	defer server.Close()

	client, fakeClock := newTestClient(t, server)

	resultCh := make(chan error, 1)
	go func() {
		_, err := client.ListProducts(context.Background())
		resultCh <- err
	}()

	// Two backoff waits: 500ms then 1s.
	fakeClock.WaitForTimers(1)
	fakeClock.Advance(500 * time.Millisecond)
	fakeClock.WaitForTimers(1)
	fakeClock.Advance(time.Second)

	select {
	case err := <-resultCh:
		if err != nil {
			t.Fatalf("ListProducts after retries: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for retried read")
	}
	if got := requests.Load(); got != 3 {
		t.Errorf("server saw %d requests, want 3", got)
	}
}

func TestReadGivesUpAfterThreeAttempts(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, fakeClock := newTestClient(t, server)

	resultCh := make(chan error, 1)
	go func() {
		_, err := client.ListProducts(context.Background())
		resultCh <- err
	}()

	fakeClock.WaitForTimers(1)
	fakeClock.Advance(500 * time.Millisecond)
	fakeClock.WaitForTimers(1)
	fakeClock.Advance(time.Second)

	select {
	case err := <-resultCh:
		var apiError *Error
		if !errors.As(err, &apiError) || apiError.StatusCode != http.StatusBadGateway {
			t.Fatalf("got %v, want 502 *Error", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for exhausted retries")
	}
	if got := requests.Load(); got != 3 {
		t.Errorf("server saw %d requests, want 3", got)
	}
}

func TestReadDoesNotRetryClientErrors(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"success": false, "message": "product not found"}`)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)
	_, err := client.GetProduct(context.Background(), 99)
	if !IsNotFound(err) {
		t.Fatalf("got %v, want 404 *Error", err)
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("server saw %d requests, want 1 (4xx must not be retried)", got)
	}
}

func TestMutationsAreNotRetried(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)
	err := client.DeleteProduct(context.Background(), 1)
	var apiError *Error
	if !errors.As(err, &apiError) || apiError.StatusCode != http.StatusInternalServerError {
		t.Fatalf("got %v, want 500 *Error", err)
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("server saw %d requests, want 1 (mutations must not be retried)", got)
	}
}

func TestEnvelopeFailureSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": false, "message": "quantity must be greater than 0", "errors": ["quantity: min 1"]}`)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)
	_, err := client.CreateProduct(context.Background(), ProductDraft{Name: "milk"})
	var apiError *Error
	if !errors.As(err, &apiError) {
		t.Fatalf("got %v, want *Error", err)
	}
	if apiError.Message != "quantity must be greater than 0" || len(apiError.Errors) != 1 {
		t.Errorf("error decoded wrong: %+v", apiError)
	}
}

func TestNetworkErrorHasZeroStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	fakeClock := clock.Fake(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	client, err := NewClient(Config{BaseURL: server.URL, Clock: fakeClock})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	resultCh := make(chan error, 1)
	go func() {
		err := client.DeleteProduct(context.Background(), 1)
		resultCh <- err
	}()

	select {
	case err := <-resultCh:
		if !IsNetworkError(err) {
			t.Fatalf("got %v, want network *Error", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
	}
}

func TestUpdateSendsFullRecord(t *testing.T) {
	var receivedBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			receivedBody, _ = io.ReadAll(r.Body)
		}
		fmt.Fprint(w, `{"success": true, "data": {"id": 7, "name": "cheese", "quantity": 2, "is_notified": true, "type": "best_before", "days_left": 5, "expiry_date": "2026-09-06T00:00:00Z"}}`)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)
	current := Product{
		ID:         7,
		Name:       "cheese",
		Quantity:   2,
		ExpiryDate: time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC),
		Type:       "best_before",
		IsNotified: false,
	}
	updated, err := client.ToggleNotification(context.Background(), current, true)
	if err != nil {
		t.Fatalf("ToggleNotification: %v", err)
	}
	if !updated.IsNotified {
		t.Error("returned product should have IsNotified=true")
	}

	// The toggle payload must be a full record, not a one-field patch.
	for _, field := range []string{`"name":"cheese"`, `"quantity":2`, `"type":"best_before"`, `"is_notified":true`, `"expiry_date"`} {
		if !strings.Contains(string(receivedBody), field) {
			t.Errorf("update payload missing %s: %s", field, receivedBody)
		}
	}
}
