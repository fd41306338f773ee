// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package productui

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fresh-keeper/freshkeeper/lib/api"
	"github.com/fresh-keeper/freshkeeper/lib/expiry"
	"github.com/fresh-keeper/freshkeeper/lib/productcache"
)

// Tab identifies which product view is active.
type Tab int

const (
	// TabAll shows every tracked product.
	TabAll Tab = iota
	// TabUrgent shows products expiring within the urgency window.
	TabUrgent
	// TabExpired shows products whose expiry date has passed.
	TabExpired
)

// tabCount is the number of tabs; used to cycle with the tab key.
const tabCount = 3

// noticeFadeDelay is how long a status-bar notice stays visible.
const noticeFadeDelay = 3 * time.Second

// productsLoadedMsg carries the result of an asynchronous product
// fetch. On error, products is nil and err is shown in the status bar.
type productsLoadedMsg struct {
	tab      Tab
	products []api.Product
	err      error
}

// mutationDoneMsg is sent when an asynchronous mutation (delete or
// notification toggle) completes. On success the view reloads from
// the cache; on error the failure is shown in the status bar.
type mutationDoneMsg struct {
	action string
	err    error
}

// noticeFadeMsg is sent after a delay to clear the status-bar notice.
type noticeFadeMsg struct{}

// Model is the top-level bubbletea model for the product viewer.
// All data access goes through the product cache, so reads served
// within the freshness window never touch the server.
type Model struct {
	store      *productcache.Store
	theme      Theme
	keys       KeyMap
	language   string
	urgentDays int

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// Active tab and its rows, sorted by days left ascending so the
	// most urgent products surface first.
	activeTab Tab
	products  []api.Product
	cursor    int

	// View state.
	showDetail    bool     // Detail panel open for the selected product.
	confirmDelete bool     // Waiting for y/n on a pending delete.
	form          *addForm // Non-nil while the registration form is open.
	loading       bool

	// Status bar notice. Cleared after noticeFadeDelay.
	notice      string
	noticeIsErr bool
}

// NewModel creates a Model backed by the given cache store. Language
// selects expiry label text ("ja" or "en"); urgentDays is the upper
// bound of the urgent tab's window.
func NewModel(store *productcache.Store, language string, urgentDays int) Model {
	if urgentDays <= 0 {
		urgentDays = productcache.DefaultUrgentThreshold
	}
	return Model{
		store:      store,
		theme:      DefaultTheme,
		keys:       DefaultKeyMap,
		language:   language,
		urgentDays: urgentDays,
		activeTab:  TabAll,
		loading:    true,
	}
}

// Init implements tea.Model. Kicks off the initial product load.
func (model Model) Init() tea.Cmd {
	return model.loadProducts(model.activeTab, false)
}

// loadProducts returns a command that fetches the rows for the given
// tab. When force is true the cached list is invalidated first so the
// fetch goes to the server.
func (model Model) loadProducts(tab Tab, force bool) tea.Cmd {
	store := model.store
	urgentDays := model.urgentDays
	return func() tea.Msg {
		ctx := context.Background()
		if force {
			store.InvalidateList()
		}
		var (
			products []api.Product
			err      error
		)
		switch tab {
		case TabUrgent:
			products, err = store.UrgentProducts(ctx, urgentDays)
		case TabExpired:
			products, err = store.ExpiredProducts(ctx)
		default:
			products, err = store.Products(ctx)
		}
		return productsLoadedMsg{tab: tab, products: products, err: err}
	}
}

// toggleNotification returns a command that flips the notification
// flag on the given product.
func (model Model) toggleNotification(product api.Product) tea.Cmd {
	store := model.store
	return func() tea.Msg {
		_, err := store.ToggleNotification(context.Background(), product.ID, !product.IsNotified)
		return mutationDoneMsg{action: "toggle", err: err}
	}
}

// createProduct returns a command that registers a new product.
func (model Model) createProduct(draft api.ProductDraft) tea.Cmd {
	store := model.store
	return func() tea.Msg {
		_, err := store.Create(context.Background(), draft)
		return mutationDoneMsg{action: "add", err: err}
	}
}

// deleteProduct returns a command that deletes the given product.
func (model Model) deleteProduct(id int) tea.Cmd {
	store := model.store
	return func() tea.Msg {
		err := store.Delete(context.Background(), id)
		return mutationDoneMsg{action: "delete", err: err}
	}
}

// fadeNotice schedules clearing of the status-bar notice.
func fadeNotice() tea.Cmd {
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{}
	})
}

// selected returns the product under the cursor, or false when the
// list is empty.
func (model Model) selected() (api.Product, bool) {
	if model.cursor < 0 || model.cursor >= len(model.products) {
		return api.Product{}, false
	}
	return model.products[model.cursor], true
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		return model, nil

	case productsLoadedMsg:
		// Ignore results for a tab the user already left.
		if message.tab != model.activeTab {
			return model, nil
		}
		model.loading = false
		if message.err != nil {
			model.notice = "load failed: " + message.err.Error()
			model.noticeIsErr = true
			return model, fadeNotice()
		}
		model.products = sortByUrgency(message.products)
		model.clampCursor()
		return model, nil

	case mutationDoneMsg:
		if message.err != nil {
			model.loading = false
			model.notice = message.action + " failed: " + message.err.Error()
			model.noticeIsErr = true
			return model, fadeNotice()
		}
		switch message.action {
		case "add":
			model.notice = "added"
		case "delete":
			model.notice = "deleted"
		case "toggle":
			model.notice = "notification updated"
		}
		model.noticeIsErr = false
		// Reload from the cache: deletes filter the cached list in
		// place and toggles write through, so this does not refetch.
		return model, tea.Batch(model.loadProducts(model.activeTab, false), fadeNotice())

	case noticeFadeMsg:
		model.notice = ""
		model.noticeIsErr = false
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)
	}

	return model, nil
}

// handleKey routes a key press. The registration form and the delete
// confirmation capture input before any other binding is consulted.
func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.form != nil {
		return model.handleFormKey(message)
	}

	if model.confirmDelete {
		switch {
		case key.Matches(message, model.keys.Confirm):
			model.confirmDelete = false
			if product, ok := model.selected(); ok {
				return model, model.deleteProduct(product.ID)
			}
			return model, nil
		case key.Matches(message, model.keys.Cancel):
			model.confirmDelete = false
			return model, nil
		}
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.products)-1 {
			model.cursor++
		}

	case key.Matches(message, model.keys.Home):
		model.cursor = 0

	case key.Matches(message, model.keys.End):
		if len(model.products) > 0 {
			model.cursor = len(model.products) - 1
		}

	case key.Matches(message, model.keys.NextTab):
		model.activeTab = (model.activeTab + 1) % tabCount
		model.cursor = 0
		model.showDetail = false
		model.loading = true
		return model, model.loadProducts(model.activeTab, false)

	case key.Matches(message, model.keys.Detail):
		if _, ok := model.selected(); ok {
			model.showDetail = true
		}

	case key.Matches(message, model.keys.Back):
		model.showDetail = false

	case key.Matches(message, model.keys.Toggle):
		if product, ok := model.selected(); ok {
			return model, model.toggleNotification(product)
		}

	case key.Matches(message, model.keys.Delete):
		if _, ok := model.selected(); ok {
			model.confirmDelete = true
		}

	case key.Matches(message, model.keys.Add):
		model.form = newAddForm()
		model.showDetail = false

	case key.Matches(message, model.keys.Refresh):
		model.loading = true
		return model, model.loadProducts(model.activeTab, true)
	}

	return model, nil
}

// handleFormKey routes input while the registration form is open.
// Enter advances through the fields and submits from the type row;
// esc abandons the form.
func (model Model) handleFormKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := model.form

	switch message.Type {
	case tea.KeyEscape:
		model.form = nil
		return model, nil

	case tea.KeyTab, tea.KeyDown:
		form.next()
		return model, nil

	case tea.KeyShiftTab, tea.KeyUp:
		form.previous()
		return model, nil

	case tea.KeyEnter:
		if form.focus < fieldType {
			form.next()
			return model, nil
		}
		draft, ok := form.draft()
		if !ok {
			return model, nil
		}
		model.form = nil
		model.loading = true
		return model, model.createProduct(draft)
	}

	if form.focus == fieldType {
		switch message.Type {
		case tea.KeyLeft, tea.KeyRight, tea.KeySpace:
			form.toggleKind()
		}
		return model, nil
	}

	return model, form.update(message)
}

// clampCursor keeps the cursor within the current row count after a
// reload shrinks the list.
func (model *Model) clampCursor() {
	if model.cursor >= len(model.products) {
		model.cursor = len(model.products) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
}

// sortByUrgency orders products by days left ascending, breaking ties
// by ID for a stable display order.
func sortByUrgency(products []api.Product) []api.Product {
	sorted := slices.Clone(products)
	slices.SortStableFunc(sorted, func(a, b api.Product) int {
		if a.DaysLeft != b.DaysLeft {
			return a.DaysLeft - b.DaysLeft
		}
		return a.ID - b.ID
	})
	return sorted
}

// alertLevel classifies a product for display coloring.
func alertLevel(product api.Product) expiry.AlertLevel {
	return expiry.Classify(product.DaysLeft)
}
