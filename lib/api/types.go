// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"time"

	"github.com/fresh-keeper/freshkeeper/lib/expiry"
)

// Product is a registered food item as served by the API. DaysLeft is
// computed by the server relative to the moment the response was
// served; a long-lived view must not assume it stays correct across
// midnight boundaries.
type Product struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Quantity    int         `json:"quantity"`
	ExpiryDate  time.Time   `json:"expiry_date"`
	Type        expiry.Type `json:"type"`
	IsNotified  bool        `json:"is_notified"`
	DaysLeft    int         `json:"days_left"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ProductDraft is the client-supplied portion of a product, used for
// both create and update. Update has full-record replace semantics on
// the server, so every field is always sent — including IsNotified,
// even when only one flag changed.
type ProductDraft struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Quantity    int         `json:"quantity"`
	ExpiryDate  time.Time   `json:"expiry_date"`
	Type        expiry.Type `json:"type"`
	IsNotified  bool        `json:"is_notified"`
}

// DraftFrom builds a full update payload from an existing record.
// Toggle-style mutations start from this and flip the one field they
// care about, satisfying the server's full-replace contract.
func DraftFrom(product Product) ProductDraft {
	return ProductDraft{
		Name:        product.Name,
		Description: product.Description,
		Quantity:    product.Quantity,
		ExpiryDate:  product.ExpiryDate,
		Type:        product.Type,
		IsNotified:  product.IsNotified,
	}
}

// User is the authenticated user's identity as returned by the auth
// endpoints.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
