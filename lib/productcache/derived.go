// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package productcache

import (
	"context"

	"github.com/fresh-keeper/freshkeeper/lib/api"
	"github.com/fresh-keeper/freshkeeper/lib/expiry"
)

// DefaultUrgentThreshold matches the classifier's warning window: an
// item is "urgent" while its alert level is warning or worse but not
// yet expired.
const DefaultUrgentThreshold = 3

// UrgentProducts returns items with 0 <= days_left <= threshold,
// served from the cached list under the list's staleness rules.
func (store *Store) UrgentProducts(ctx context.Context, threshold int) ([]api.Product, error) {
	products, err := store.Products(ctx)
	if err != nil {
		return nil, err
	}
	urgent := products[:0]
	for _, product := range products {
		if product.DaysLeft >= 0 && product.DaysLeft <= threshold {
			urgent = append(urgent, product)
		}
	}
	return urgent, nil
}

// ExpiredProducts returns items whose expiry date has passed.
func (store *Store) ExpiredProducts(ctx context.Context) ([]api.Product, error) {
	products, err := store.Products(ctx)
	if err != nil {
		return nil, err
	}
	expired := products[:0]
	for _, product := range products {
		if product.DaysLeft < 0 {
			expired = append(expired, product)
		}
	}
	return expired, nil
}

// Stats summarizes the list by alert level.
type Stats struct {
	Total   int
	Expired int
	Danger  int
	Warning int
	Safe    int
}

// Urgent is the danger + warning count: items that need attention but
// are still edible.
func (s Stats) Urgent() int { return s.Danger + s.Warning }

// ProductStats classifies every cached item and returns the counts.
func (store *Store) ProductStats(ctx context.Context) (Stats, error) {
	products, err := store.Products(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Total: len(products)}
	for _, product := range products {
		switch expiry.Classify(product.DaysLeft) {
		case expiry.Expired:
			stats.Expired++
		case expiry.Danger:
			stats.Danger++
		case expiry.Warning:
			stats.Warning++
		case expiry.Safe:
			stats.Safe++
		}
	}
	return stats, nil
}
