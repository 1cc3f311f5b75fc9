// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the interactive TUI: a Bubble Tea model wiring the
// conversation view, the input line, the recent tool call panel, and the
// status bar to the streaming client.
//
// Streaming runs in a goroutine owned by the client; its hook callbacks feed
// an event channel that the Bubble Tea loop drains one message per Update.
// The UI never mutates conversation state directly - it renders snapshots
// and lets the client own the write path.
package chat
