// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
)

// ListProducts returns all of the authenticated user's items.
func (client *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := client.get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns one item by id.
func (client *Client) GetProduct(ctx context.Context, id int) (Product, error) {
	var product Product
	if err := client.get(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// CreateProduct registers a new item and returns the server's copy
// (with id, days_left, and timestamps assigned).
func (client *Client) CreateProduct(ctx context.Context, draft ProductDraft) (Product, error) {
	var product Product
	if err := client.post(ctx, "/products", draft, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// UpdateProduct replaces an item. The server has full-record replace
// semantics: the draft must carry every required field, not just the
// changed ones.
func (client *Client) UpdateProduct(ctx context.Context, id int, draft ProductDraft) (Product, error) {
	var product Product
	if err := client.put(ctx, fmt.Sprintf("/products/%d", id), draft, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// DeleteProduct removes an item.
func (client *Client) DeleteProduct(ctx context.Context, id int) error {
	return client.delete(ctx, fmt.Sprintf("/products/%d", id))
}

// ToggleNotification flips the notification flag on an item. The
// caller supplies its current copy of the record; the full update
// payload is rebuilt from it with only the flag changed, per the
// server's full-replace contract.
func (client *Client) ToggleNotification(ctx context.Context, current Product, enabled bool) (Product, error) {
	draft := DraftFrom(current)
	draft.IsNotified = enabled
	return client.UpdateProduct(ctx, current.ID, draft)
}
