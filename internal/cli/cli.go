// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
)

// =============================================================================
// VERSION INFO
// =============================================================================

// Version information, overwritten by main at startup from build-time values.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// COMMAND ROUTING
// =============================================================================

// Command identifies a top-level CLI command.
type Command int

const (
	// CmdTUI launches the full-screen chat interface (the default).
	CmdTUI Command = iota

	// CmdAsk sends a single question and prints the reply.
	CmdAsk

	// CmdChat starts a plain-terminal REPL session.
	CmdChat

	// CmdServe runs the local mock agent server.
	CmdServe

	// CmdConfig shows or initializes the configuration.
	CmdConfig

	// CmdVersion prints version information.
	CmdVersion

	// CmdHelp prints usage.
	CmdHelp
)

// Exit codes.
const (
	ExitOK           = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
)

// Parse inspects os.Args and returns the selected command plus its parsed
// arguments. No arguments means the TUI.
func Parse() (Command, *ArgParser) {
	argv := os.Args[1:]
	if len(argv) == 0 {
		return CmdTUI, NewArgParser(nil)
	}

	rest := NewArgParser(argv[1:])
	switch argv[0] {
	case "ask":
		return CmdAsk, rest
	case "chat":
		return CmdChat, rest
	case "serve":
		return CmdServe, rest
	case "config":
		return CmdConfig, rest
	case "tui":
		return CmdTUI, rest
	case "version", "-v", "--version":
		return CmdVersion, rest
	case "help", "-h", "--help":
		return CmdHelp, rest
	}

	// Unknown word: treat the whole line as an ask question, matching the
	// common `scout "what papers cover X"` invocation.
	return CmdAsk, NewArgParser(argv)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("scout version %s\n", Version)
	fmt.Printf("  commit: %s\n", GitCommit)
	fmt.Printf("  built:  %s\n", BuildDate)
}

// PrintHelp prints top-level usage.
func PrintHelp() {
	fmt.Print(`scout - terminal client for the Paper Scout research agent

Usage:
  scout                     Launch the chat TUI
  scout ask "question"      Ask a single question and exit
  scout chat                Interactive chat in the plain terminal
  scout serve               Run a local mock agent for offline use
  scout config              Show, locate, or init the config file
  scout version             Show version information

Flags:
  --url URL       Agent base URL (overrides config)
  --plain         Disable markdown rendering (ask)
  --addr ADDR     Listen address for serve (default :8701)
  --pace N        Tokens per second for serve (default 40)

Configuration is read from ~/.scout/config.toml; SCOUT_AGENT_URL
overrides the agent URL.
`)
}
