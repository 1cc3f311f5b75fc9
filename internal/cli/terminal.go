// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"

	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// USABILITY: TTY detection for proper terminal handling
// =============================================================================

// IsTTY returns true if stdin is a terminal. Use this to determine if
// interactive prompts are possible.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal. Use this to determine
// if markdown rendering and colored output should be used.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// =============================================================================
// TERMINAL WIDTH
// =============================================================================

const (
	defaultTermWidth = 80
	maxRenderWidth   = 100
)

// TerminalWidth returns the current terminal width, clamped for readable
// markdown rendering. Falls back to 80 columns when detection fails.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	if w > maxRenderWidth {
		return maxRenderWidth
	}
	return w
}
