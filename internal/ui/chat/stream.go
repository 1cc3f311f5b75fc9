// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/scout-tui/internal/scout"
	"github.com/jeranaias/scout-tui/internal/toollog"
)

// =============================================================================
// STREAM PUMP
// =============================================================================

// startStream kicks off a request for text and begins pumping stream events
// into the update loop. The client owns all conversation mutation; the
// messages emitted here only tell the UI to refresh its snapshot.
func (m *Model) startStream(text string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	events := m.events
	client := m.client

	go func() {
		hooks := &scout.Hooks{
			OnDelta: func(delta string) {
				events <- StreamDeltaMsg{Text: delta}
			},
			OnToolCall: func(call toollog.ToolCall) {
				events <- StreamToolCallMsg{Call: call}
			},
		}
		err := client.Send(ctx, text, hooks)
		events <- StreamDoneMsg{Err: err}
	}()

	return tea.Batch(
		func() tea.Msg { return StreamStartedMsg{StartTime: time.Now()} },
		m.waitForStream(),
	)
}

// waitForStream blocks until the next stream event arrives. Update re-issues
// it after every stream message until StreamDoneMsg closes the loop.
func (m *Model) waitForStream() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

// cancelStream aborts the in-flight request, if any. The pump still delivers
// StreamDoneMsg with the cancellation error, which settles UI state.
func (m *Model) cancelStream() {
	if m.cancel != nil {
		m.cancel()
	}
}
