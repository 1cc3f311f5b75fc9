// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for scout.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/scout-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete scout configuration.
type Config struct {
	// Agent contains the backend connection settings.
	Agent AgentConfig `toml:"agent"`

	// UI contains presentation settings.
	UI UIConfig `toml:"ui"`

	// Log contains diagnostic logging settings.
	Log LogConfig `toml:"log"`
}

// AgentConfig contains the agent backend connection settings.
type AgentConfig struct {
	// URL is the base URL of the Paper Scout agent backend.
	URL string `toml:"url"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// ShowTimestamps toggles per-message timestamps in the TUI.
	ShowTimestamps bool `toml:"show_timestamps"`
	// ToolLogSize is the number of tool calls shown in the side panel.
	ToolLogSize int `toml:"tool_log_size"`
}

// LogConfig contains diagnostic logging settings.
type LogConfig struct {
	// Debug enables the structured debug log file.
	Debug bool `toml:"debug"`
	// Path overrides the default debug log location (~/.scout/debug.log).
	Path string `toml:"path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Agent: AgentConfig{
			URL: "http://127.0.0.1:8000",
		},
		UI: UIConfig{
			ShowTimestamps: true,
			ToolLogSize:    5,
		},
		Log: LogConfig{
			Debug: false,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the scout configuration directory (~/.scout).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".scout"), nil
}

// Path returns the config file location (~/.scout/config.toml).
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DebugLogPath returns the debug log location, honoring the override.
func (c *Config) DebugLogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "debug.log"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file, applies defaults for missing fields and
// environment overrides, and validates the result. A missing config file is
// not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads a specific config file. A missing file yields defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if u := os.Getenv("SCOUT_AGENT_URL"); u != "" {
		c.Agent.URL = u
	}
	if os.Getenv("SCOUT_DEBUG") == "1" {
		c.Log.Debug = true
	}
}

// fillDefaults replaces zero values that have no meaningful zero semantics.
func (c *Config) fillDefaults() {
	if c.Agent.URL == "" {
		c.Agent.URL = Default().Agent.URL
	}
	if c.UI.ToolLogSize <= 0 {
		c.UI.ToolLogSize = Default().UI.ToolLogSize
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Agent.URL)
	if err != nil {
		return fmt.Errorf("invalid agent url %q: %w", c.Agent.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("agent url %q must use http or https", c.Agent.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("agent url %q is missing a host", c.Agent.URL)
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to ~/.scout/config.toml atomically.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("# scout configuration\n\n")
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return util.AtomicWriteFile(path, []byte(sb.String()), 0600)
}
