// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads client configuration for the Fresh Keeper CLI.
//
// Configuration is read from a single YAML file, located by (in
// order): the --config flag, the FRESHKEEPER_CONFIG environment
// variable, or $XDG_CONFIG_HOME/freshkeeper/config.yaml (falling back
// to ~/.config/freshkeeper/config.yaml). A missing file is not an
// error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file is absent or a field is unset.
const (
	DefaultBaseURL  = "http://localhost:8080"
	DefaultTimeout  = 30 * time.Second
	DefaultLanguage = "ja"
)

// Config is the client configuration.
type Config struct {
	// BaseURL is the root URL of the Fresh Keeper API.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each HTTP request.
	Timeout time.Duration `yaml:"timeout"`

	// Language selects display labels: "ja" or "en".
	Language string `yaml:"language"`

	// UrgentDays is the days-left threshold for the urgent filters.
	// Zero means the classifier's warning window (3 days).
	UrgentDays int `yaml:"urgent_days"`
}

// DefaultPath returns the config file location when no flag or
// environment override is set.
func DefaultPath() string {
	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "freshkeeper", "config.yaml")
}

// Load reads the configuration. flagPath (from --config) wins over
// FRESHKEEPER_CONFIG, which wins over the default path. A missing
// file at the default path yields defaults; a missing file at an
// explicitly requested path is an error.
func Load(flagPath string) (Config, error) {
	path := flagPath
	explicit := path != ""
	if path == "" {
		path = os.Getenv("FRESHKEEPER_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath()
	}

	config := Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout,
		Language: DefaultLanguage,
	}

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return config, nil
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Language != "ja" && config.Language != "en" {
		config.Language = DefaultLanguage
	}
	return config, nil
}
