// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/scout-tui/internal/toollog"
)

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// The client goroutine translates hook callbacks into these messages. By the
// time one arrives the conversation and tool log are already updated, so
// handlers only refresh the rendered snapshot.

// StreamStartedMsg signals that a request was accepted and streaming begun.
type StreamStartedMsg struct {
	StartTime time.Time
}

// StreamDeltaMsg delivers a content fragment from the in-flight reply.
type StreamDeltaMsg struct {
	Text string
}

// StreamToolCallMsg delivers a tool call the agent reported.
type StreamToolCallMsg struct {
	Call toollog.ToolCall
}

// StreamDoneMsg signals the end of a request. Err is nil when the reply
// settled, non-nil when it failed (the conversation already holds the
// failure message either way).
type StreamDoneMsg struct {
	Err error
}

// =============================================================================
// UI STATE MESSAGES
// =============================================================================

// flashMsg shows a transient notice in the status area.
type flashMsg struct {
	text  string
	isErr bool
}

// clearFlashMsg removes the transient notice.
type clearFlashMsg struct{}

// setFlash returns a command that posts a transient notice.
func (m Model) setFlash(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return flashMsg{text: text, isErr: isErr}
	}
}
