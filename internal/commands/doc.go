// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system shared by the TUI and
// the line-mode REPL: a registry of built-in commands, an input parser that
// tokenizes quoted arguments, and prefix completion for command names.
package commands
