// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

// Package expiry classifies remaining shelf life into alert levels.
//
// This is the single threshold table in the repository. Every view
// (CLI tables, TUI rows, stats) derives its urgency label and color
// from [Classify]; no caller carries its own thresholds.
package expiry

import (
	"math"
	"time"
)

// AlertLevel is the severity classification of an item's remaining
// shelf life. The numeric order is the severity order:
// Safe < Warning < Danger < Expired.
type AlertLevel int

const (
	// Safe means more than three days remain.
	Safe AlertLevel = iota
	// Warning means two or three days remain.
	Warning
	// Danger means the item expires today or tomorrow.
	Danger
	// Expired means the expiry date has passed.
	Expired
)

// String returns the canonical lowercase name of the level.
func (level AlertLevel) String() string {
	switch level {
	case Safe:
		return "safe"
	case Warning:
		return "warning"
	case Danger:
		return "danger"
	case Expired:
		return "expired"
	}
	return "unknown"
}

// Classify maps a remaining-day count to an alert level. Total over
// all integers:
//
//	daysLeft < 0   → Expired
//	0 <= d <= 1    → Danger
//	2 <= d <= 3    → Warning
//	daysLeft > 3   → Safe
func Classify(daysLeft int) AlertLevel {
	switch {
	case daysLeft < 0:
		return Expired
	case daysLeft <= 1:
		return Danger
	case daysLeft <= 3:
		return Warning
	}
	return Safe
}

// DaysLeft returns the whole calendar days from now until expiry.
// Both instants are truncated to midnight in now's location before
// differencing, so the result is stable across the day regardless of
// time-of-day, and day boundaries are evaluated in a single timezone.
// Same calendar day yields 0; past dates yield negative values.
func DaysLeft(expiry, now time.Time) int {
	location := now.Location()
	expiryMidnight := midnight(expiry.In(location))
	nowMidnight := midnight(now)
	// Calendar days, not elapsed time: a DST transition makes one day
	// 23 or 25 hours long, so rounding the hour difference keeps the
	// count exact across those boundaries.
	return int(math.Round(expiryMidnight.Sub(nowMidnight).Hours() / 24))
}

// midnight truncates t to 00:00:00 in its own location.
func midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
