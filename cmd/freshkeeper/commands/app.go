// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/fresh-keeper/freshkeeper/cmd/freshkeeper/cli"
	"github.com/fresh-keeper/freshkeeper/lib/api"
	"github.com/fresh-keeper/freshkeeper/lib/config"
	"github.com/fresh-keeper/freshkeeper/lib/productcache"
	"github.com/fresh-keeper/freshkeeper/lib/session"
)

// commonFlags holds the flags every command accepts: config file
// location and a server URL override.
type commonFlags struct {
	configPath string
	serverURL  string
}

// register adds the common flags to a flag set.
func (flags *commonFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&flags.configPath, "config", "", "config file path (default: ~/.config/freshkeeper/config.yaml)")
	flagSet.StringVar(&flags.serverURL, "server", "", "API base URL (overrides the config file)")
}

// app bundles the wired client stack for one command invocation:
// configuration, API client, product cache, and session store.
type app struct {
	config  config.Config
	logger  *slog.Logger
	client  *api.Client
	cache   *productcache.Store
	session *session.Store
}

// newApp loads configuration and wires the client stack. The command
// name scopes the logger. The saved session (if any) is restored so
// whoami and auth checks see the prior login.
func newApp(command string, flags commonFlags) (*app, error) {
	configuration, err := config.Load(flags.configPath)
	if err != nil {
		return nil, cli.Validation("load config: %v", err)
	}
	if flags.serverURL != "" {
		configuration.BaseURL = flags.serverURL
	}

	logger := cli.NewCommandLogger().With("command", command)

	client, err := api.NewClient(api.Config{
		BaseURL:    configuration.BaseURL,
		Timeout:    configuration.Timeout,
		CookieFile: api.CookieFilePath(),
		Logger:     logger,
	})
	if err != nil {
		return nil, cli.Internal("create API client: %v", err)
	}

	cache, err := productcache.New(productcache.Config{
		API:    client,
		Logger: logger,
	})
	if err != nil {
		return nil, cli.Internal("create product cache: %v", err)
	}

	sessionStore := session.New(client, session.SessionFilePath(), logger)
	if err := sessionStore.Load(); err != nil {
		// A corrupt session file is not fatal: the user can log in
		// again. Surface it so they know why they were logged out.
		logger.Warn("restore session", "error", err)
	}

	return &app{
		config:  configuration,
		logger:  logger,
		client:  client,
		cache:   cache,
		session: sessionStore,
	}, nil
}

// urgentDays returns the configured urgency window, falling back to
// the classifier's warning window.
func (a *app) urgentDays() int {
	if a.config.UrgentDays > 0 {
		return a.config.UrgentDays
	}
	return productcache.DefaultUrgentThreshold
}
