// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/fresh-keeper/freshkeeper/cmd/freshkeeper/cli"
	"github.com/fresh-keeper/freshkeeper/lib/productui"
)

// tuiCommand returns the "tui" command: the full-screen product
// viewer.
func tuiCommand() *cli.Command {
	var common commonFlags

	return &cli.Command{
		Name:    "tui",
		Summary: "Open the interactive product viewer",
		Description: `Open the full-screen product viewer.

Tabs for all / urgent / expired products, with inline notification
toggles and deletes. Requires a saved login session.`,
		Usage: "freshkeeper tui [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("tui", pflag.ContinueOnError)
			common.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			app, err := newApp("tui", common)
			if err != nil {
				return err
			}

			// Fail fast with a clear message instead of opening a
			// viewer that can only show load errors.
			app.session.CheckAuth(context.Background())
			if !app.session.IsAuthenticated() {
				return cli.Unauthenticated("not logged in (run 'freshkeeper login')")
			}

			model := productui.NewModel(app.cache, app.config.Language, app.urgentDays())
			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return cli.Internal("run viewer: %w", err)
			}
			return nil
		},
	}
}
