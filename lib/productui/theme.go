// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package productui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fresh-keeper/freshkeeper/lib/expiry"
)

// Theme defines the color palette for the product TUI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Alert levels (safe, warning, danger, expired).
	AlertSafe    lipgloss.Color
	AlertWarning lipgloss.Color
	AlertDanger  lipgloss.Color
	AlertExpired lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Status bar notices.
	NoticeSuccess lipgloss.Color
	NoticeError   lipgloss.Color
}

// AlertColor returns the color for an alert level.
func (theme Theme) AlertColor(level expiry.AlertLevel) lipgloss.Color {
	switch level {
	case expiry.Safe:
		return theme.AlertSafe
	case expiry.Warning:
		return theme.AlertWarning
	case expiry.Danger:
		return theme.AlertDanger
	case expiry.Expired:
		return theme.AlertExpired
	}
	return theme.NormalText
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("237"),
	SelectedForeground: lipgloss.Color("255"),

	AlertSafe:    lipgloss.Color("42"),  // green
	AlertWarning: lipgloss.Color("214"), // orange
	AlertDanger:  lipgloss.Color("203"), // red
	AlertExpired: lipgloss.Color("131"), // dark red

	HeaderForeground: lipgloss.Color("39"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("243"),

	NoticeSuccess: lipgloss.Color("42"),
	NoticeError:   lipgloss.Color("203"),
}
