// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package productui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fresh-keeper/freshkeeper/lib/api"
	"github.com/fresh-keeper/freshkeeper/lib/expiry"
)

// Form field order. The type row comes last and is a toggle, not a
// text input.
const (
	fieldName = iota
	fieldDescription
	fieldQuantity
	fieldExpires
	fieldType
	fieldCount
)

// addForm is the inline product registration form. Text fields are
// bubbles textinputs; the expiry kind is a two-state toggle.
type addForm struct {
	inputs [4]textinput.Model
	kind   expiry.Type
	focus  int
	errMsg string
}

// newAddForm creates the form with the name field focused.
func newAddForm() *addForm {
	form := &addForm{kind: expiry.TypeBestBefore}

	labels := [4]string{"牛乳", "", "1", "YYYY-MM-DD"}
	for i := range form.inputs {
		input := textinput.New()
		input.Placeholder = labels[i]
		input.CharLimit = 100
		input.Width = 30
		form.inputs[i] = input
	}
	form.inputs[fieldQuantity].CharLimit = 6
	form.inputs[fieldExpires].CharLimit = 10
	form.inputs[fieldName].Focus()
	return form
}

// next moves focus to the following row, wrapping at the end.
func (form *addForm) next() {
	form.setFocus((form.focus + 1) % fieldCount)
}

// previous moves focus to the preceding row.
func (form *addForm) previous() {
	form.setFocus((form.focus + fieldCount - 1) % fieldCount)
}

func (form *addForm) setFocus(focus int) {
	form.focus = focus
	for i := range form.inputs {
		if i == focus {
			form.inputs[i].Focus()
		} else {
			form.inputs[i].Blur()
		}
	}
}

// toggleKind flips the expiry kind when the type row has focus.
func (form *addForm) toggleKind() {
	if form.kind == expiry.TypeBestBefore {
		form.kind = expiry.TypeUseBy
	} else {
		form.kind = expiry.TypeBestBefore
	}
}

// update routes a key press to the focused text input.
func (form *addForm) update(message tea.KeyMsg) tea.Cmd {
	if form.focus >= len(form.inputs) {
		return nil
	}
	var command tea.Cmd
	form.inputs[form.focus], command = form.inputs[form.focus].Update(message)
	return command
}

// draft validates the form into a create payload. On failure it sets
// errMsg and returns false.
func (form *addForm) draft() (api.ProductDraft, bool) {
	name := strings.TrimSpace(form.inputs[fieldName].Value())
	if name == "" {
		form.errMsg = "name is required"
		return api.ProductDraft{}, false
	}

	quantity := 1
	if raw := strings.TrimSpace(form.inputs[fieldQuantity].Value()); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			form.errMsg = "quantity must be a positive number"
			return api.ProductDraft{}, false
		}
		quantity = parsed
	}

	rawDate := strings.TrimSpace(form.inputs[fieldExpires].Value())
	if rawDate == "" {
		form.errMsg = "expiry date is required"
		return api.ProductDraft{}, false
	}
	date, err := time.ParseInLocation("2006-01-02", rawDate, time.Local)
	if err != nil {
		form.errMsg = "expiry date must be YYYY-MM-DD"
		return api.ProductDraft{}, false
	}

	form.errMsg = ""
	return api.ProductDraft{
		Name:        name,
		Description: strings.TrimSpace(form.inputs[fieldDescription].Value()),
		Quantity:    quantity,
		ExpiryDate:  date,
		Type:        form.kind,
	}, true
}

// renderForm draws the registration form panel.
func (model Model) renderForm(form *addForm) string {
	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText).Width(10)
	focusedLabel := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Width(10)
	titleStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)

	label := func(row int, text string) string {
		if row == form.focus {
			return focusedLabel.Render(text)
		}
		return labelStyle.Render(text)
	}

	kindText := form.kind.Label(model.language)
	if form.focus == fieldType {
		kindText = "< " + kindText + " >"
	}

	lines := []string{
		titleStyle.Render("Register product"),
		label(fieldName, "name") + form.inputs[fieldName].View(),
		label(fieldDescription, "note") + form.inputs[fieldDescription].View(),
		label(fieldQuantity, "quantity") + form.inputs[fieldQuantity].View(),
		label(fieldExpires, "expires") + form.inputs[fieldExpires].View(),
		label(fieldType, "type") + kindText,
	}
	if form.errMsg != "" {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(model.theme.NoticeError).
			Render(form.errMsg))
	}
	lines = append(lines, lipgloss.NewStyle().
		Foreground(model.theme.HelpText).
		Render("tab next · enter submit · esc cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
