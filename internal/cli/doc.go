// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the scout command line surface: argument parsing,
// the one-shot ask command, the plain-terminal chat REPL, and the local
// mock agent server. The full-screen TUI lives in internal/ui and is wired
// up by main.
package cli
