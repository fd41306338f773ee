// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fresh-keeper/freshkeeper/lib/api"
)

// persistedSession is the on-disk subset of the store's state: user
// identity and the authenticated flag only. Transient loading/error
// states are never written; a process that died mid-login restarts
// logged out, not stuck "loading".
type persistedSession struct {
	User            *api.User `json:"user,omitempty"`
	IsAuthenticated bool      `json:"is_authenticated"`
	Status          Status    `json:"status"`
}

// SessionFilePath returns the path of the persisted session file.
// Checks FRESHKEEPER_SESSION_FILE first, then
// $XDG_CONFIG_HOME/freshkeeper/session.json, then
// ~/.config/freshkeeper/session.json.
func SessionFilePath() string {
	if envPath := os.Getenv("FRESHKEEPER_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("/tmp", "freshkeeper-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "freshkeeper", "session.json")
}

// Save writes the persistable subset of the store's state to its
// session file with mode 0600. No-op when persistence is disabled.
func (store *Store) Save() error {
	if store.filePath == "" {
		return nil
	}

	store.mu.Lock()
	snapshot := persistedSession{
		IsAuthenticated: store.status == StatusAuthenticated && store.user != nil,
		Status:          normalizeStatus(store.status),
	}
	if snapshot.IsAuthenticated {
		user := *store.user
		snapshot.User = &user
	}
	store.mu.Unlock()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshaling: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(store.filePath)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("session: creating directory %s: %w", directory, err)
	}
	if err := os.WriteFile(store.filePath, data, 0600); err != nil {
		return fmt.Errorf("session: writing %s: %w", store.filePath, err)
	}
	return nil
}

// Load restores persisted state from the session file. A missing file
// leaves the store idle; a corrupt file is an error. Transient
// statuses found on disk (from older writers) normalize to
// unauthenticated.
func (store *Store) Load() error {
	if store.filePath == "" {
		return nil
	}

	data, err := os.ReadFile(store.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("session: reading %s: %w", store.filePath, err)
	}

	var snapshot persistedSession
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("session: parsing %s: %w", store.filePath, err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if snapshot.IsAuthenticated && snapshot.User != nil {
		store.status = StatusAuthenticated
		user := *snapshot.User
		store.user = &user
	} else {
		store.status = normalizeStatus(snapshot.Status)
		store.user = nil
	}
	store.lastError = ""
	return nil
}

// persist saves best-effort after a state transition. Persistence
// failures are logged, not propagated — a read-only config directory
// must not break login.
func (store *Store) persist() {
	if err := store.Save(); err != nil {
		store.logger.Warn("persisting session failed", "error", err)
	}
}

// normalizeStatus collapses transient states to the nearest durable
// one for persistence.
func normalizeStatus(status Status) Status {
	switch status {
	case StatusAuthenticated:
		return StatusAuthenticated
	case StatusIdle:
		return StatusIdle
	}
	return StatusUnauthenticated
}
