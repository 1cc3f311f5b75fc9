// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration command handler.
//
// Handles the "scout config" command:
//
//   scout config          Show the resolved configuration
//   scout config path     Print the config file location
//   scout config init     Write a default config file (--force to overwrite)

package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/scout-tui/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args *ArgParser) error {
	sub := ""
	if pos := args.Positional(); len(pos) > 0 {
		sub = pos[0]
	}

	switch sub {
	case "", "show":
		return showConfig()
	case "path":
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case "init":
		return initConfig(args.BoolFlag("force"))
	default:
		fmt.Fprintf(os.Stderr, "unknown config subcommand: %s\n", sub)
		os.Exit(ExitUsageError)
		return nil
	}
}

// showConfig prints the configuration after defaults, file, and environment
// overrides are applied, so it reflects what the client will actually use.
func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	path, err := config.Path()
	if err != nil {
		return err
	}

	fmt.Printf("config file:     %s\n", path)
	fmt.Printf("agent.url:       %s\n", cfg.Agent.URL)
	fmt.Printf("ui.show_timestamps: %t\n", cfg.UI.ShowTimestamps)
	fmt.Printf("ui.tool_log_size:   %d\n", cfg.UI.ToolLogSize)
	fmt.Printf("log.debug:       %t\n", cfg.Log.Debug)
	return nil
}

// initConfig writes the default configuration file. An existing file is
// preserved unless --force is given.
func initConfig(force bool) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	if err := config.Save(config.Default()); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
