// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

// Package productcache is the client-side cache and mutation
// coordinator between the views and the Fresh Keeper API.
//
// Reads serve from cache while the entry is fresh (list: 5 minutes,
// detail: 2 minutes) and otherwise fetch through a singleflight group,
// so N concurrent readers of a cold key share exactly one network
// call. Each write operation applies a deterministic cache policy:
//
//   - create: invalidate the list (next list read refetches)
//   - update: invalidate the list and the item's detail entry
//   - delete: filter the item out of the cached list in place and
//     evict its detail entry entirely, so the key can never resolve
//     to the deleted record
//   - toggle-notification: write the server-returned record through
//     to both the list and detail entries without a refetch; on
//     failure, invalidate the list to force resynchronization
//
// Create/update/delete failures leave the cache untouched. A fetch
// whose initiating view has gone away still populates the cache when
// it completes; the response is never discarded just because nobody
// is waiting anymore.
package productcache
