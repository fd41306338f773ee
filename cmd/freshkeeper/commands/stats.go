// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/fresh-keeper/freshkeeper/cmd/freshkeeper/cli"
)

// statsCommand returns the "stats" command: urgency counts over the
// tracked products.
func statsCommand() *cli.Command {
	var common commonFlags
	var asJSON bool

	return &cli.Command{
		Name:    "stats",
		Summary: "Show urgency counts",
		Usage:   "freshkeeper stats [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("stats", pflag.ContinueOnError)
			common.register(flagSet)
			flagSet.BoolVar(&asJSON, "json", false, "emit JSON instead of a table")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			app, err := newApp("stats", common)
			if err != nil {
				return err
			}

			stats, err := app.cache.ProductStats(context.Background())
			if err != nil {
				return cli.WrapAPI("load stats", err)
			}

			if asJSON {
				return printJSON(stats)
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Total:\t%d\n", stats.Total)
			fmt.Fprintf(tw, "Expired:\t%d\n", stats.Expired)
			fmt.Fprintf(tw, "Urgent:\t%d\n", stats.Urgent())
			fmt.Fprintf(tw, "Safe:\t%d\n", stats.Safe)
			tw.Flush()
			return nil
		},
	}
}
