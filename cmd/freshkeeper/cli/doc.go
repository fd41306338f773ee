// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-tree framework for the freshkeeper
// binary: command dispatch with typo suggestions, structured help
// output, categorized errors that map to process exit codes, and
// shared helpers for logging and password input.
package cli
