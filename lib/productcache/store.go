// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package productcache

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fresh-keeper/freshkeeper/lib/api"
	"github.com/fresh-keeper/freshkeeper/lib/clock"
)

// Freshness windows. A cached entry older than its window is treated
// as stale and refetched on the next read.
const (
	listFreshness   = 5 * time.Minute
	detailFreshness = 2 * time.Minute
)

// ProductAPI is the slice of the API client the store needs. *api.Client
// satisfies it; tests substitute a scripted fake.
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]api.Product, error)
	GetProduct(ctx context.Context, id int) (api.Product, error)
	CreateProduct(ctx context.Context, draft api.ProductDraft) (api.Product, error)
	UpdateProduct(ctx context.Context, id int, draft api.ProductDraft) (api.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	ToggleNotification(ctx context.Context, current api.Product, enabled bool) (api.Product, error)
}

// Config holds configuration for creating a Store.
type Config struct {
	// API performs the underlying network operations. Required.
	API ProductAPI

	// Clock provides time for freshness arithmetic. Defaults to
	// clock.Real().
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger

	// ListFreshness and DetailFreshness override the default windows.
	// Zero means the default (5 and 2 minutes).
	ListFreshness   time.Duration
	DetailFreshness time.Duration
}

// Store is the cache and mutation coordinator. Safe for concurrent
// use; all views share one Store per running client.
type Store struct {
	api             ProductAPI
	clock           clock.Clock
	logger          *slog.Logger
	listFreshness   time.Duration
	detailFreshness time.Duration

	group singleflight.Group

	mu      sync.Mutex
	list    *entry[[]api.Product]
	details map[int]*entry[api.Product]
}

// entry is one cached value with its freshness state.
type entry[T any] struct {
	value     T
	fetchedAt time.Time
	stale     bool
}

// New creates a Store from the given configuration.
func New(config Config) (*Store, error) {
	if config.API == nil {
		return nil, fmt.Errorf("productcache: API is required")
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	listWindow := config.ListFreshness
	if listWindow == 0 {
		listWindow = listFreshness
	}
	detailWindow := config.DetailFreshness
	if detailWindow == 0 {
		detailWindow = detailFreshness
	}
	return &Store{
		api:             config.API,
		clock:           clk,
		logger:          logger,
		listFreshness:   listWindow,
		detailFreshness: detailWindow,
		details:         make(map[int]*entry[api.Product]),
	}, nil
}

// fresh reports whether e holds a usable value at time now.
func fresh[T any](e *entry[T], now time.Time, window time.Duration) bool {
	return e != nil && !e.stale && now.Sub(e.fetchedAt) < window
}

// detailKey is the singleflight key for one item's detail fetch.
func detailKey(id int) string { return fmt.Sprintf("products/%d", id) }

// listKey is the singleflight key for the product list fetch.
const listKey = "products"

// Products returns the product list, from cache when fresh. Concurrent
// callers on a cold cache share one fetch.
func (store *Store) Products(ctx context.Context) ([]api.Product, error) {
	store.mu.Lock()
	if fresh(store.list, store.clock.Now(), store.listFreshness) {
		cached := slices.Clone(store.list.value)
		store.mu.Unlock()
		return cached, nil
	}
	store.mu.Unlock()

	result, err, _ := store.group.Do(listKey, func() (any, error) {
		products, err := store.api.ListProducts(ctx)
		if err != nil {
			// Failed reads never populate the cache.
			return nil, err
		}
		store.mu.Lock()
		store.list = &entry[[]api.Product]{value: products, fetchedAt: store.clock.Now()}
		store.mu.Unlock()
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(result.([]api.Product)), nil
}

// Product returns one item by id, from cache when fresh.
func (store *Store) Product(ctx context.Context, id int) (api.Product, error) {
	store.mu.Lock()
	if e := store.details[id]; fresh(e, store.clock.Now(), store.detailFreshness) {
		cached := e.value
		store.mu.Unlock()
		return cached, nil
	}
	store.mu.Unlock()

	result, err, _ := store.group.Do(detailKey(id), func() (any, error) {
		product, err := store.api.GetProduct(ctx, id)
		if err != nil {
			return api.Product{}, err
		}
		store.mu.Lock()
		store.details[id] = &entry[api.Product]{value: product, fetchedAt: store.clock.Now()}
		store.mu.Unlock()
		return product, nil
	})
	if err != nil {
		return api.Product{}, err
	}
	return result.(api.Product), nil
}

// InvalidateList marks the list entry stale; the next Products call
// refetches.
func (store *Store) InvalidateList() {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.list != nil {
		store.list.stale = true
	}
}

// InvalidateDetail marks one detail entry stale.
func (store *Store) InvalidateDetail(id int) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if e := store.details[id]; e != nil {
		e.stale = true
	}
}

// InvalidateAll marks every entry stale. Used by the TUI refresh key.
func (store *Store) InvalidateAll() {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.list != nil {
		store.list.stale = true
	}
	for _, e := range store.details {
		e.stale = true
	}
}

// evictDetail removes a detail entry entirely. Unlike invalidation,
// eviction guarantees no later read can observe the old value: the
// next read must go to the server (and fail with not-found for a
// deleted item).
func (store *Store) evictDetail(id int) {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.details, id)
}

// Create registers a new item. On success the list entry is
// invalidated so the next list read picks up the server's ordering
// and computed fields.
func (store *Store) Create(ctx context.Context, draft api.ProductDraft) (api.Product, error) {
	created, err := store.api.CreateProduct(ctx, draft)
	if err != nil {
		return api.Product{}, err
	}
	store.InvalidateList()
	store.logger.Info("product created", "id", created.ID, "name", created.Name)
	return created, nil
}

// Update replaces an item. On success both the list entry and the
// item's detail entry are invalidated rather than written through:
// only a subset of the returned fields is guaranteed fresh, so the
// next read refetches.
func (store *Store) Update(ctx context.Context, id int, draft api.ProductDraft) (api.Product, error) {
	updated, err := store.api.UpdateProduct(ctx, id, draft)
	if err != nil {
		return api.Product{}, err
	}
	store.InvalidateList()
	store.InvalidateDetail(id)
	store.logger.Info("product updated", "id", id)
	return updated, nil
}

// Delete removes an item. On success the deleted id is filtered out
// of the cached list in place — no refetch, no flash of stale state —
// and the detail entry is evicted entirely.
func (store *Store) Delete(ctx context.Context, id int) error {
	if err := store.api.DeleteProduct(ctx, id); err != nil {
		return err
	}

	store.mu.Lock()
	if store.list != nil {
		store.list.value = slices.DeleteFunc(slices.Clone(store.list.value), func(p api.Product) bool {
			return p.ID == id
		})
	}
	store.mu.Unlock()

	store.evictDetail(id)
	store.logger.Info("product deleted", "id", id)
	return nil
}

// ToggleNotification flips an item's notification flag. This is the
// one path that deliberately avoids refetching: on success the
// server-returned record is written through to both the list entry
// (replacing the matching element) and the detail entry. On failure
// the list is invalidated — downstream UI may have assumed the flip
// happened, so the next read resynchronizes.
func (store *Store) ToggleNotification(ctx context.Context, id int, enabled bool) (api.Product, error) {
	current, err := store.Product(ctx, id)
	if err != nil {
		return api.Product{}, err
	}

	updated, err := store.api.ToggleNotification(ctx, current, enabled)
	if err != nil {
		store.InvalidateList()
		return api.Product{}, err
	}

	now := store.clock.Now()
	store.mu.Lock()
	if store.list != nil {
		list := slices.Clone(store.list.value)
		for i := range list {
			if list[i].ID == updated.ID {
				list[i] = updated
			}
		}
		store.list.value = list
	}
	store.details[id] = &entry[api.Product]{value: updated, fetchedAt: now}
	store.mu.Unlock()

	store.logger.Info("notification toggled", "id", id, "enabled", updated.IsNotified)
	return updated, nil
}
