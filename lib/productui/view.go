// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package productui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fresh-keeper/freshkeeper/lib/api"
	"github.com/fresh-keeper/freshkeeper/lib/expiry"
)

// tabNames are the tab bar labels, indexed by Tab.
var tabNames = [tabCount]string{"All", "Urgent", "Expired"}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "loading..."
	}

	var sections []string
	sections = append(sections, model.renderTabBar())
	if model.form != nil {
		sections = append(sections, model.renderForm(model.form))
	} else {
		sections = append(sections, model.renderList())
		if model.showDetail {
			if product, ok := model.selected(); ok {
				sections = append(sections, model.renderDetail(product))
			}
		}
	}
	sections = append(sections, model.renderStatusBar())
	return strings.Join(sections, "\n")
}

// renderTabBar draws the header line with the three tabs, the active
// one highlighted.
func (model Model) renderTabBar() string {
	activeStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)

	parts := make([]string, 0, tabCount)
	for i, name := range tabNames {
		label := name
		if Tab(i) == model.activeTab {
			label = fmt.Sprintf("%s (%d)", name, len(model.products))
			parts = append(parts, activeStyle.Render("["+label+"]"))
			continue
		}
		parts = append(parts, inactiveStyle.Render(" "+label+" "))
	}
	return strings.Join(parts, " ")
}

// renderList draws the product rows. Each row shows the urgency chip,
// name, quantity, expiry type, and the expiry date.
func (model Model) renderList() string {
	if model.loading {
		return lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render("  fetching products...")
	}
	if len(model.products) == 0 {
		return lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render("  no products")
	}

	rows := make([]string, 0, len(model.products))
	for i, product := range model.products {
		rows = append(rows, model.renderRow(product, i == model.cursor))
	}
	return strings.Join(rows, "\n")
}

// renderRow draws one product line. The selected row gets a background
// highlight; the urgency chip is always colored by alert level.
func (model Model) renderRow(product api.Product, selected bool) string {
	level := alertLevel(product)
	chip := lipgloss.NewStyle().
		Foreground(model.theme.AlertColor(level)).
		Bold(level == expiry.Danger || level == expiry.Expired).
		Render(expiry.Label(level, product.DaysLeft, model.language))

	notify := " "
	if product.IsNotified {
		notify = "!"
	}

	line := fmt.Sprintf(" %s %-20s x%-3d %-8s %s  %s",
		notify,
		truncate(product.Name, 20),
		product.Quantity,
		product.Type.Label(model.language),
		product.ExpiryDate.Format("2006-01-02"),
		chip,
	)

	if selected {
		return lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground).
			Render(line)
	}
	return lipgloss.NewStyle().
		Foreground(model.theme.NormalText).
		Render(line)
}

// renderDetail draws the bordered detail panel for the selected
// product.
func (model Model) renderDetail(product api.Product) string {
	level := alertLevel(product)
	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	valueStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)

	notified := "off"
	if product.IsNotified {
		notified = "on"
	}

	lines := []string{
		valueStyle.Bold(true).Render(product.Name),
		labelStyle.Render("status:   ") + lipgloss.NewStyle().
			Foreground(model.theme.AlertColor(level)).
			Render(expiry.Label(level, product.DaysLeft, model.language)),
		labelStyle.Render("type:     ") + valueStyle.Render(product.Type.Label(model.language)),
		labelStyle.Render("expires:  ") + valueStyle.Render(product.ExpiryDate.Format("2006-01-02")),
		labelStyle.Render("quantity: ") + valueStyle.Render(fmt.Sprintf("%d", product.Quantity)),
		labelStyle.Render("notify:   ") + valueStyle.Render(notified),
	}
	if product.Description != "" {
		lines = append(lines, labelStyle.Render("note:     ")+valueStyle.Render(product.Description))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderStatusBar draws the bottom line: the delete confirmation
// prompt, a transient notice, or the key help.
func (model Model) renderStatusBar() string {
	if model.confirmDelete {
		name := ""
		if product, ok := model.selected(); ok {
			name = product.Name
		}
		return lipgloss.NewStyle().
			Foreground(model.theme.NoticeError).
			Bold(true).
			Render(fmt.Sprintf("delete %q? (y/n)", name))
	}

	if model.notice != "" {
		color := model.theme.NoticeSuccess
		if model.noticeIsErr {
			color = model.theme.NoticeError
		}
		return lipgloss.NewStyle().Foreground(color).Render(model.notice)
	}

	help := "j/k move · tab switch · enter detail · n notify · a add · d delete · r refresh · q quit"
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(help)
}

// truncate shortens a name to fit the list column, appending an
// ellipsis when cut. Operates on runes so multibyte names (the common
// case for Japanese product names) are not split mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
