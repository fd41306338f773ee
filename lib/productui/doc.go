// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

// Package productui implements the interactive terminal UI for
// browsing and managing food items. Built on bubbletea (Elm
// architecture): a tabbed product list (all / urgent / expired) with
// a detail panel, alert chips colored by the expiry classifier, and
// keyboard-driven mutations (toggle notification, delete with
// confirm, refresh).
//
// All data access goes through a [productcache.Store]; the model
// never talks to the API client directly, so every mutation picks up
// the store's cache policies for free.
package productui
