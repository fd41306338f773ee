// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/fresh-keeper/freshkeeper/cmd/freshkeeper/cli"
	"github.com/fresh-keeper/freshkeeper/lib/session"
)

// loginCommand returns the "login" command: authenticate and save the
// session locally so subsequent commands work without flags.
func loginCommand() *cli.Command {
	var common commonFlags
	var passwordFile string

	return &cli.Command{
		Name:    "login",
		Summary: "Log in and save the session",
		Description: `Log in to the Fresh Keeper server and save the session locally.

After login, commands like "freshkeeper list" use the saved session
transparently. The session cookie is stored with mode 0600 under
~/.config/freshkeeper/ (or $XDG_CONFIG_HOME, or the paths named by
$FRESHKEEPER_SESSION_FILE and $FRESHKEEPER_COOKIE_FILE).

The password can be provided via --password-file (a path to a file
containing the password) or prompted interactively if --password-file
is "-" or omitted.`,
		Usage: "freshkeeper login <email> [flags]",
		Examples: []cli.Example{
			{
				Description: "Log in interactively (prompts for password)",
				Command:     "freshkeeper login taro@example.com",
			},
			{
				Description: "Log in with password from file",
				Command:     "freshkeeper login taro@example.com --password-file /path/to/password",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
			common.register(flagSet)
			flagSet.StringVar(&passwordFile, "password-file", "", "path to file containing password, or - to prompt interactively (default: prompt)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) < 1 {
				return cli.Validation("email is required\n\nUsage: freshkeeper login <email> [flags]")
			}
			email := args[0]
			if len(args) > 1 {
				return cli.Validation("unexpected argument: %s", args[1])
			}

			password, err := cli.ReadPassword(passwordFile)
			if err != nil {
				return err
			}

			app, err := newApp("login", common)
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := app.session.Login(ctx, email, password); err != nil {
				return cli.WrapAPI("login", err)
			}

			user := app.session.User()
			fmt.Fprintf(os.Stderr, "Logged in as %s\n", user.Email)
			fmt.Fprintf(os.Stderr, "Session saved to %s\n", session.SessionFilePath())
			return nil
		},
	}
}

// signupCommand returns the "signup" command: create an account and
// log in.
func signupCommand() *cli.Command {
	var common commonFlags
	var name string
	var passwordFile string

	return &cli.Command{
		Name:    "signup",
		Summary: "Create an account and log in",
		Description: `Create a Fresh Keeper account, then log in with it.

On success the session is saved locally, exactly as with "login".`,
		Usage: "freshkeeper signup <email> --name <name> [flags]",
		Examples: []cli.Example{
			{
				Description: "Create an account (prompts for password)",
				Command:     "freshkeeper signup taro@example.com --name 太郎",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("signup", pflag.ContinueOnError)
			common.register(flagSet)
			flagSet.StringVar(&name, "name", "", "display name for the new account")
			flagSet.StringVar(&passwordFile, "password-file", "", "path to file containing password, or - to prompt interactively (default: prompt)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) < 1 {
				return cli.Validation("email is required\n\nUsage: freshkeeper signup <email> --name <name> [flags]")
			}
			email := args[0]
			if len(args) > 1 {
				return cli.Validation("unexpected argument: %s", args[1])
			}
			if name == "" {
				return cli.Validation("--name is required")
			}

			password, err := cli.ReadPassword(passwordFile)
			if err != nil {
				return err
			}

			app, err := newApp("signup", common)
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := app.session.Signup(ctx, name, email, password); err != nil {
				return cli.WrapAPI("signup", err)
			}

			fmt.Fprintf(os.Stderr, "Account created, logged in as %s\n", email)
			return nil
		},
	}
}

// logoutCommand returns the "logout" command. Local state is cleared
// even when the server call fails, so a dead server cannot wedge the
// client in a logged-in state.
func logoutCommand() *cli.Command {
	var common commonFlags

	return &cli.Command{
		Name:    "logout",
		Summary: "Log out and clear the saved session",
		Usage:   "freshkeeper logout [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("logout", pflag.ContinueOnError)
			common.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			app, err := newApp("logout", common)
			if err != nil {
				return err
			}

			serverErr := app.session.Logout(context.Background())
			fmt.Fprintln(os.Stderr, "Logged out")
			if serverErr != nil {
				// Local state is already cleared; the server-side
				// session may outlive this logout.
				app.logger.Warn("server logout failed", "error", serverErr)
			}
			return nil
		},
	}
}

// whoamiCommand returns the "whoami" command: print the logged-in
// identity after verifying it against the server.
func whoamiCommand() *cli.Command {
	var common commonFlags

	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the logged-in user",
		Usage:   "freshkeeper whoami [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
			common.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			app, err := newApp("whoami", common)
			if err != nil {
				return err
			}

			app.session.CheckAuth(context.Background())
			if !app.session.IsAuthenticated() {
				return cli.Unauthenticated("not logged in (run 'freshkeeper login')")
			}

			user := app.session.User()
			if user.Name != "" {
				fmt.Printf("%s <%s>\n", user.Name, user.Email)
			} else {
				fmt.Println(user.Email)
			}
			return nil
		},
	}
}
