// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package expiry

import "fmt"

// Type is the kind of expiry date printed on the item.
type Type string

const (
	// TypeBestBefore is 賞味期限: the date through which quality is
	// guaranteed. The item is usually still edible afterwards.
	TypeBestBefore Type = "best_before"
	// TypeUseBy is 消費期限: the date through which safety is
	// guaranteed. The item should not be eaten afterwards.
	TypeUseBy Type = "use_by"
)

// Valid reports whether t is one of the two known expiry kinds.
func (t Type) Valid() bool {
	return t == TypeBestBefore || t == TypeUseBy
}

// Label returns the display name of the expiry kind in the given
// language ("ja" or "en"). Unknown languages fall back to English.
func (t Type) Label(lang string) string {
	if lang == "ja" {
		switch t {
		case TypeBestBefore:
			return "賞味期限"
		case TypeUseBy:
			return "消費期限"
		}
		return string(t)
	}
	switch t {
	case TypeBestBefore:
		return "best before"
	case TypeUseBy:
		return "use by"
	}
	return string(t)
}

// Label returns the urgency label for an item with the given
// days-left value, in the given language ("ja" or "en"). The label is
// a function of daysLeft alone; the level parameter exists so callers
// that already classified the value do not classify it twice.
//
//	Expired          → 期限切れ / expired
//	daysLeft == 0    → 今日が期限 / due today
//	otherwise        → 残りN日 / N days left
func Label(level AlertLevel, daysLeft int, lang string) string {
	if lang == "ja" {
		if level == Expired {
			return "期限切れ"
		}
		if daysLeft == 0 {
			return "今日が期限"
		}
		return fmt.Sprintf("残り%d日", daysLeft)
	}
	if level == Expired {
		return "expired"
	}
	if daysLeft == 0 {
		return "due today"
	}
	if daysLeft == 1 {
		return "1 day left"
	}
	return fmt.Sprintf("%d days left", daysLeft)
}
