// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete freshkeeper CLI command tree.
package commands

import (
	"fmt"

	"github.com/fresh-keeper/freshkeeper/cmd/freshkeeper/cli"
	"github.com/fresh-keeper/freshkeeper/lib/version"
)

// Root builds and returns the complete freshkeeper command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "freshkeeper",
		Description: `Fresh Keeper: track perishable food and its expiration dates.

Register products with their expiry dates, see what needs eating
first, and flag items for expiry notification.`,
		Subcommands: []*cli.Command{
			signupCommand(),
			loginCommand(),
			logoutCommand(),
			whoamiCommand(),
			listCommand(),
			showCommand(),
			addCommand(),
			editCommand(),
			rmCommand(),
			notifyCommand(),
			statsCommand(),
			tuiCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("freshkeeper %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Log in (prompts for password)",
				Command:     "freshkeeper login taro@example.com",
			},
			{
				Description: "See what needs eating first",
				Command:     "freshkeeper list --urgent",
			},
			{
				Description: "Register a carton of milk",
				Command:     "freshkeeper add --name 牛乳 --expires 2026-09-05 --type use_by",
			},
			{
				Description: "Open the interactive viewer",
				Command:     "freshkeeper tui",
			},
		},
	}
}
