// scout - A terminal client for the Paper Scout research agent.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/scout-tui/internal/cli"
	"github.com/jeranaias/scout-tui/internal/config"
	"github.com/jeranaias/scout-tui/internal/logging"
	"github.com/jeranaias/scout-tui/internal/model"
	"github.com/jeranaias/scout-tui/internal/scout"
	"github.com/jeranaias/scout-tui/internal/toollog"
	"github.com/jeranaias/scout-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		if err := cli.HandleAsk(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(cli.ExitGeneralError)
		}
	case cli.CmdChat:
		if err := cli.HandleChat(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(cli.ExitGeneralError)
		}
	case cli.CmdServe:
		if err := cli.HandleServe(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(cli.ExitGeneralError)
		}
	case cli.CmdConfig:
		if err := cli.HandleConfig(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(cli.ExitGeneralError)
		}
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintHelp()
	}
}

// runTUI launches the full-screen chat interface.
func runTUI(args *cli.ArgParser) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitGeneralError)
	}

	// CLI args override config.
	if u := args.Flag("url", "u"); u != "" {
		cfg.Agent.URL = u
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(cli.ExitUsageError)
		}
	}

	logPath, err := cfg.DebugLogPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitGeneralError)
	}
	logger, closeLog, err := logging.New(cfg.Log.Debug, logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitGeneralError)
	}
	defer closeLog()

	conv := model.NewConversation()
	tools := toollog.NewLog()
	client := scout.New(cfg.Agent.URL, conv, tools, logger)

	m := chat.New(cfg, client, conv, tools, Version)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running scout: %v\n", err)
		os.Exit(cli.ExitGeneralError)
	}
}
