// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the scout TUI:
// the message list, the recent tool call panel, the status bar, spinners,
// and the welcome screen.
package components
