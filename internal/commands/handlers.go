// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/scout-tui/internal/toollog"
)

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// These messages are sent by command handlers to update the application state.

// ShowHelpMsg triggers the help display.
type ShowHelpMsg struct{}

// ShowToolLogMsg triggers the full tool log display.
type ShowToolLogMsg struct {
	Calls []toollog.ToolCall
}

// ClearConversationMsg triggers clearing the conversation and tool log.
type ClearConversationMsg struct{}

// ClearCompleteMsg reports the outcome of a clear request.
type ClearCompleteMsg struct {
	Cleared bool // false when a reply was still streaming
}

// ExportConversationMsg triggers exporting the conversation.
type ExportConversationMsg struct {
	Format string // "md" or "json"
	Path   string // empty selects a default path
}

// ExportCompleteMsg indicates export completion.
type ExportCompleteMsg struct {
	Path  string
	Error error
}

// ShowStatusMsg triggers showing connection and conversation status.
type ShowStatusMsg struct{}

// =============================================================================
// HANDLERS
// =============================================================================

// HandleHelp shows the help display.
func HandleHelp(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		return ShowHelpMsg{}
	}
}

// HandleQuit exits the application.
func HandleQuit(ctx *Context, args []string) tea.Cmd {
	return tea.Quit
}

// HandleLog shows the complete tool call history, not just the recent
// window the sidebar renders.
func HandleLog(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		var calls []toollog.ToolCall
		if ctx.Tools != nil {
			calls = ctx.Tools.Recent(ctx.Tools.Len())
		}
		return ShowToolLogMsg{Calls: calls}
	}
}

// HandleClear clears the conversation and tool log. The clear is refused
// while a reply is still streaming so in-flight state is never torn down
// under the orchestrator.
func HandleClear(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		if ctx.Conversation == nil {
			return ClearCompleteMsg{Cleared: false}
		}
		if !ctx.Conversation.Clear() {
			return ClearCompleteMsg{Cleared: false}
		}
		if ctx.Tools != nil {
			ctx.Tools.Clear()
		}
		return ClearConversationMsg{}
	}
}

// HandleExport requests a transcript export. The actual file write happens
// in the application layer, which owns the export destination.
func HandleExport(ctx *Context, args []string) tea.Cmd {
	format := "md"
	if len(args) > 0 {
		format = args[0]
	}
	path := ""
	if len(args) > 1 {
		path = args[1]
	}
	return func() tea.Msg {
		return ExportConversationMsg{Format: format, Path: path}
	}
}

// HandleStatus shows connection and conversation status.
func HandleStatus(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		return ShowStatusMsg{}
	}
}
