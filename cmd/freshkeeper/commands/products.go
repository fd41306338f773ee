// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/fresh-keeper/freshkeeper/cmd/freshkeeper/cli"
	"github.com/fresh-keeper/freshkeeper/lib/api"
	"github.com/fresh-keeper/freshkeeper/lib/expiry"
)

// listCommand returns the "list" command: the product table, with
// urgency filters and JSON output for scripts.
func listCommand() *cli.Command {
	var common commonFlags
	var urgentOnly bool
	var expiredOnly bool
	var days int
	var asJSON bool

	return &cli.Command{
		Name:    "list",
		Summary: "List tracked products",
		Description: `List tracked products, most urgent first.

--urgent narrows to products expiring within the urgency window
(--days, default from config), --expired to products already past
their date. --json emits the raw records for scripts.`,
		Usage: "freshkeeper list [flags]",
		Examples: []cli.Example{
			{
				Description: "Everything, most urgent first",
				Command:     "freshkeeper list",
			},
			{
				Description: "Only products expiring within 2 days",
				Command:     "freshkeeper list --urgent --days 2",
			},
			{
				Description: "Machine-readable output",
				Command:     "freshkeeper list --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			common.register(flagSet)
			flagSet.BoolVar(&urgentOnly, "urgent", false, "show only products expiring soon")
			flagSet.BoolVar(&expiredOnly, "expired", false, "show only expired products")
			flagSet.IntVar(&days, "days", 0, "urgency window in days (with --urgent; default from config)")
			flagSet.BoolVar(&asJSON, "json", false, "emit JSON instead of a table")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if urgentOnly && expiredOnly {
				return cli.Validation("--urgent and --expired are mutually exclusive")
			}
			if days != 0 && !urgentOnly {
				return cli.Validation("--days only applies with --urgent")
			}

			app, err := newApp("list", common)
			if err != nil {
				return err
			}

			ctx := context.Background()
			var products []api.Product
			switch {
			case urgentOnly:
				window := days
				if window == 0 {
					window = app.urgentDays()
				}
				products, err = app.cache.UrgentProducts(ctx, window)
			case expiredOnly:
				products, err = app.cache.ExpiredProducts(ctx)
			default:
				products, err = app.cache.Products(ctx)
			}
			if err != nil {
				return cli.WrapAPI("list products", err)
			}

			if asJSON {
				return printJSON(products)
			}
			printProductTable(products, app.config.Language)
			return nil
		},
	}
}

// showCommand returns the "show" command: one product in full.
func showCommand() *cli.Command {
	var common commonFlags
	var asJSON bool

	return &cli.Command{
		Name:    "show",
		Summary: "Show one product in detail",
		Usage:   "freshkeeper show <id> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			common.register(flagSet)
			flagSet.BoolVar(&asJSON, "json", false, "emit JSON instead of text")
			return flagSet
		},
		Run: func(args []string) error {
			id, err := parseProductID(args)
			if err != nil {
				return err
			}

			app, err := newApp("show", common)
			if err != nil {
				return err
			}

			product, err := app.cache.Product(context.Background(), id)
			if err != nil {
				return cli.WrapAPI(fmt.Sprintf("show product %d", id), err)
			}

			if asJSON {
				return printJSON(product)
			}
			printProductDetail(product, app.config.Language)
			return nil
		},
	}
}

// draftFlags holds the product field flags shared by add and edit.
type draftFlags struct {
	name        string
	description string
	quantity    int
	expires     string
	kind        string
}

// register adds the draft field flags to a flag set.
func (flags *draftFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&flags.name, "name", "", "product name")
	flagSet.StringVar(&flags.description, "description", "", "free-form note")
	flagSet.IntVar(&flags.quantity, "quantity", 1, "item count")
	flagSet.StringVar(&flags.expires, "expires", "", "expiry date (YYYY-MM-DD)")
	flagSet.StringVar(&flags.kind, "type", string(expiry.TypeBestBefore), "expiry kind: best_before or use_by")
}

// addCommand returns the "add" command: register a new product.
func addCommand() *cli.Command {
	var common commonFlags
	var fields draftFlags

	return &cli.Command{
		Name:    "add",
		Summary: "Register a new product",
		Usage:   "freshkeeper add --name <name> --expires <date> [flags]",
		Examples: []cli.Example{
			{
				Description: "Register a carton of milk with a use-by date",
				Command:     "freshkeeper add --name 牛乳 --expires 2026-09-05 --type use_by",
			},
			{
				Description: "Register eggs with quantity",
				Command:     "freshkeeper add --name 卵 --quantity 10 --expires 2026-09-14",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("add", pflag.ContinueOnError)
			common.register(flagSet)
			fields.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s (product fields are flags)", args[0])
			}
			draft, err := draftFromFlags(fields)
			if err != nil {
				return err
			}

			app, err := newApp("add", common)
			if err != nil {
				return err
			}

			created, err := app.cache.Create(context.Background(), draft)
			if err != nil {
				return cli.WrapAPI("add product", err)
			}

			fmt.Printf("Added %s (id %d), %s\n", created.Name, created.ID,
				expiry.Label(expiry.Classify(created.DaysLeft), created.DaysLeft, app.config.Language))
			return nil
		},
	}
}

// editCommand returns the "edit" command. The server replaces the
// whole record, so unset flags fall back to the current values rather
// than zeroing the field.
func editCommand() *cli.Command {
	var common commonFlags
	var fields draftFlags
	var parsed *pflag.FlagSet

	return &cli.Command{
		Name:    "edit",
		Summary: "Update a product",
		Description: `Update a product. Only the flags you pass change; everything else
keeps its current value.`,
		Usage: "freshkeeper edit <id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Fix a quantity",
				Command:     "freshkeeper edit 42 --quantity 2",
			},
			{
				Description: "Push an expiry date out",
				Command:     "freshkeeper edit 42 --expires 2026-09-20",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("edit", pflag.ContinueOnError)
			common.register(flagSet)
			fields.register(flagSet)
			parsed = flagSet
			return flagSet
		},
		Run: func(args []string) error {
			id, err := parseProductID(args)
			if err != nil {
				return err
			}

			app, err := newApp("edit", common)
			if err != nil {
				return err
			}

			ctx := context.Background()
			current, err := app.cache.Product(ctx, id)
			if err != nil {
				return cli.WrapAPI(fmt.Sprintf("load product %d", id), err)
			}

			// Start from the current record: the server replaces the
			// whole product, so untouched fields must carry over.
			draft := api.DraftFrom(current)
			if parsed.Changed("name") {
				draft.Name = fields.name
			}
			if parsed.Changed("description") {
				draft.Description = fields.description
			}
			if parsed.Changed("quantity") {
				if fields.quantity <= 0 {
					return cli.Validation("--quantity must be positive")
				}
				draft.Quantity = fields.quantity
			}
			if parsed.Changed("expires") {
				date, err := parseExpiryDate(fields.expires)
				if err != nil {
					return err
				}
				draft.ExpiryDate = date
			}
			if parsed.Changed("type") {
				kind := expiry.Type(fields.kind)
				if !kind.Valid() {
					return cli.Validation("invalid --type %q (best_before or use_by)", fields.kind)
				}
				draft.Type = kind
			}

			updated, err := app.cache.Update(ctx, id, draft)
			if err != nil {
				return cli.WrapAPI(fmt.Sprintf("update product %d", id), err)
			}

			fmt.Printf("Updated %s (id %d)\n", updated.Name, updated.ID)
			return nil
		},
	}
}

// rmCommand returns the "rm" command: delete a product, with an
// interactive confirmation unless --yes.
func rmCommand() *cli.Command {
	var common commonFlags
	var skipConfirm bool

	return &cli.Command{
		Name:    "rm",
		Summary: "Delete a product",
		Usage:   "freshkeeper rm <id> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("rm", pflag.ContinueOnError)
			common.register(flagSet)
			flagSet.BoolVar(&skipConfirm, "yes", false, "skip the confirmation prompt")
			return flagSet
		},
		Run: func(args []string) error {
			id, err := parseProductID(args)
			if err != nil {
				return err
			}

			app, err := newApp("rm", common)
			if err != nil {
				return err
			}

			ctx := context.Background()
			product, err := app.cache.Product(ctx, id)
			if err != nil {
				return cli.WrapAPI(fmt.Sprintf("load product %d", id), err)
			}

			if !skipConfirm {
				confirmed, err := confirm(fmt.Sprintf("Delete %s (id %d)?", product.Name, product.ID))
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(os.Stderr, "Aborted")
					return nil
				}
			}

			if err := app.cache.Delete(ctx, id); err != nil {
				return cli.WrapAPI(fmt.Sprintf("delete product %d", id), err)
			}

			fmt.Printf("Deleted %s (id %d)\n", product.Name, product.ID)
			return nil
		},
	}
}

// notifyCommand returns the "notify" command: flip the expiry
// notification flag on a product.
func notifyCommand() *cli.Command {
	var common commonFlags
	var on bool
	var off bool

	return &cli.Command{
		Name:    "notify",
		Summary: "Turn expiry notification on or off",
		Usage:   "freshkeeper notify <id> --on|--off [flags]",
		Examples: []cli.Example{
			{
				Description: "Enable notification for product 42",
				Command:     "freshkeeper notify 42 --on",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("notify", pflag.ContinueOnError)
			common.register(flagSet)
			flagSet.BoolVar(&on, "on", false, "enable notification")
			flagSet.BoolVar(&off, "off", false, "disable notification")
			return flagSet
		},
		Run: func(args []string) error {
			id, err := parseProductID(args)
			if err != nil {
				return err
			}
			if on == off {
				return cli.Validation("exactly one of --on or --off is required")
			}

			app, err := newApp("notify", common)
			if err != nil {
				return err
			}

			updated, err := app.cache.ToggleNotification(context.Background(), id, on)
			if err != nil {
				return cli.WrapAPI(fmt.Sprintf("toggle notification for product %d", id), err)
			}

			state := "off"
			if updated.IsNotified {
				state = "on"
			}
			fmt.Printf("Notification %s for %s (id %d)\n", state, updated.Name, updated.ID)
			return nil
		},
	}
}

// parseProductID extracts and validates the single <id> argument.
func parseProductID(args []string) (int, error) {
	if len(args) < 1 {
		return 0, cli.Validation("product id is required")
	}
	if len(args) > 1 {
		return 0, cli.Validation("unexpected argument: %s", args[1])
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, cli.Validation("invalid product id %q (want a positive integer)", args[0])
	}
	return id, nil
}

// parseExpiryDate parses a YYYY-MM-DD flag value in local time,
// matching how dates are entered and displayed.
func parseExpiryDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, cli.Validation("invalid date %q (want YYYY-MM-DD)", value)
	}
	return date, nil
}

// draftFromFlags validates the add command's flags into a draft.
func draftFromFlags(fields draftFlags) (api.ProductDraft, error) {
	if fields.name == "" {
		return api.ProductDraft{}, cli.Validation("--name is required")
	}
	if fields.expires == "" {
		return api.ProductDraft{}, cli.Validation("--expires is required")
	}
	if fields.quantity <= 0 {
		return api.ProductDraft{}, cli.Validation("--quantity must be positive")
	}
	kind := expiry.Type(fields.kind)
	if !kind.Valid() {
		return api.ProductDraft{}, cli.Validation("invalid --type %q (best_before or use_by)", fields.kind)
	}
	date, err := parseExpiryDate(fields.expires)
	if err != nil {
		return api.ProductDraft{}, err
	}
	return api.ProductDraft{
		Name:        fields.name,
		Description: fields.description,
		Quantity:    fields.quantity,
		ExpiryDate:  date,
		Type:        kind,
	}, nil
}

// confirm prompts on stderr and reads a y/n answer from stdin.
func confirm(prompt string) (bool, error) {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, cli.Internal("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// printProductTable renders products as an aligned table.
func printProductTable(products []api.Product, language string) {
	if len(products) == 0 {
		fmt.Println("no products")
		return
	}
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tTYPE\tEXPIRES\tSTATUS\tNOTIFY")
	for _, product := range products {
		notify := ""
		if product.IsNotified {
			notify = "on"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n",
			product.ID,
			product.Name,
			product.Quantity,
			product.Type.Label(language),
			product.ExpiryDate.Format("2006-01-02"),
			expiry.Label(expiry.Classify(product.DaysLeft), product.DaysLeft, language),
			notify,
		)
	}
	tw.Flush()
}

// printProductDetail renders one product as labeled lines.
func printProductDetail(product api.Product, language string) {
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", product.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", product.Name)
	if product.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", product.Description)
	}
	fmt.Fprintf(tw, "Quantity:\t%d\n", product.Quantity)
	fmt.Fprintf(tw, "Type:\t%s\n", product.Type.Label(language))
	fmt.Fprintf(tw, "Expires:\t%s\n", product.ExpiryDate.Format("2006-01-02"))
	fmt.Fprintf(tw, "Status:\t%s\n", expiry.Label(expiry.Classify(product.DaysLeft), product.DaysLeft, language))
	notify := "off"
	if product.IsNotified {
		notify = "on"
	}
	fmt.Fprintf(tw, "Notify:\t%s\n", notify)
	fmt.Fprintf(tw, "Created:\t%s\n", product.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(tw, "Updated:\t%s\n", product.UpdatedAt.Format(time.RFC3339))
	tw.Flush()
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return cli.Internal("encode JSON: %w", err)
	}
	return nil
}
