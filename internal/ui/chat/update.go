// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/scout-tui/internal/commands"
	"github.com/jeranaias/scout-tui/internal/export"
	"github.com/jeranaias/scout-tui/internal/ui/components"
	"github.com/jeranaias/scout-tui/internal/ui/styles"
)

// flashDuration is how long transient status messages stay on screen.
const flashDuration = 3 * time.Second

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all messages for the chat screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	// Stream lifecycle
	case StreamStartedMsg:
		m.state = StateSending
		m.refreshViewport(true)
		cmd := m.spinner.Start()
		return m, cmd

	case StreamDeltaMsg:
		m.state = StateStreaming
		m.refreshViewport(true)
		return m, m.waitForStream()

	case StreamToolCallMsg:
		// The client already recorded the call; the panel reads the log
		// directly, so this is only a repaint trigger.
		return m, m.waitForStream()

	case StreamDoneMsg:
		return m.handleStreamDone(msg)

	// Command outcomes
	case commands.ShowHelpMsg:
		m.overlay = overlayHelp
		return m, nil

	case commands.ShowToolLogMsg:
		m.overlay = overlayToolLog
		m.overlayCalls = msg.Calls
		return m, nil

	case commands.ShowStatusMsg:
		m.overlay = overlayStatus
		return m, nil

	case commands.ClearConversationMsg:
		m.refreshViewport(false)
		return m, m.setFlash("Conversation cleared", false)

	case commands.ClearCompleteMsg:
		if !msg.Cleared {
			return m, m.setFlash("Cannot clear while a reply is streaming", true)
		}
		return m, nil

	case commands.ExportConversationMsg:
		return m, m.exportTranscript(msg.Format, msg.Path)

	case commands.ExportCompleteMsg:
		if msg.Error != nil {
			return m, m.setFlash("Export failed: "+msg.Error.Error(), true)
		}
		return m, m.setFlash("Exported to "+msg.Path, false)

	// Transient status
	case flashMsg:
		m.flash = msg.text
		m.flashErr = msg.isErr
		return m, tea.Tick(flashDuration, func(time.Time) tea.Msg {
			return clearFlashMsg{}
		})

	case clearFlashMsg:
		m.flash = ""
		m.flashErr = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.Streaming() {
			m.cancelStream()
			return m, nil
		}
		return m, tea.Quit

	case "esc":
		if m.overlay != overlayNone {
			m.overlay = overlayNone
			return m, nil
		}
		if m.Streaming() {
			m.cancelStream()
			return m, nil
		}
		return m, tea.Quit

	case "enter":
		if m.overlay != overlayNone {
			m.overlay = overlayNone
			return m, nil
		}
		return m.handleSubmit()

	case "tab":
		if m.overlay == overlayNone {
			m.applyCompletion()
			return m, nil
		}
		return m, nil
	}

	if m.overlay != overlayNone {
		// Any other key dismisses an overlay.
		m.overlay = overlayNone
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit processes the input line: slash commands dispatch through the
// registry, anything else becomes a chat message.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if commands.IsCommand(text) {
		result := m.parser.Parse(text)
		m.input.SetValue("")
		if result.Command == nil {
			return m, m.setFlash("Unknown command: "+result.CommandName+" (try /help)", true)
		}
		if err := commands.ValidateArgs(result.Command, result.Args); err != nil {
			return m, m.setFlash(err.Error(), true)
		}
		return m, result.Command.Handler(m.cmdCtx, result.Args)
	}

	if m.Streaming() {
		return m, m.setFlash("Still waiting for the current reply", true)
	}

	m.input.SetValue("")
	return m, m.startStream(text)
}

// applyCompletion replaces the last token of the input with the top
// completion suggestion.
func (m *Model) applyCompletion() {
	value := m.input.Value()
	suggestions := m.completer.Complete(value, len(value))
	if len(suggestions) == 0 {
		return
	}
	top := suggestions[0].Value

	if idx := strings.LastIndex(value, " "); idx >= 0 {
		m.input.SetValue(value[:idx+1] + top)
	} else {
		m.input.SetValue(top)
	}
	m.input.CursorEnd()
}

// =============================================================================
// STREAM COMPLETION
// =============================================================================

func (m Model) handleStreamDone(msg StreamDoneMsg) (tea.Model, tea.Cmd) {
	m.state = StateReady
	m.cancel = nil
	m.spinner.Stop()
	m.refreshViewport(true)

	if msg.Err != nil {
		return m, m.setFlash("Request failed: "+msg.Err.Error(), true)
	}
	return m, nil
}

// =============================================================================
// EXPORT
// =============================================================================

// exportTranscript writes the current conversation to disk off the update
// loop and reports the outcome as an ExportCompleteMsg.
func (m Model) exportTranscript(format, path string) tea.Cmd {
	transcript := &export.Transcript{
		Messages:   m.conv.Snapshot(),
		ToolCalls:  m.tools.Recent(m.tools.Len()),
		AgentURL:   m.cfg.Agent.URL,
		ExportedAt: time.Now(),
	}
	return func() tea.Msg {
		exporter, err := export.ForFormat(format)
		if err != nil {
			return commands.ExportCompleteMsg{Error: err}
		}
		written, err := export.ExportToFile(transcript, exporter, path)
		return commands.ExportCompleteMsg{Path: written, Error: err}
	}
}

// =============================================================================
// LAYOUT AND REPAINT
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.theme.SetSize(msg.Width, msg.Height)
	m.welcome.SetSize(msg.Width, msg.Height)

	contentWidth := msg.Width
	if m.theme.GetLayoutMode() == styles.LayoutWide {
		contentWidth = msg.Width - toolPanelWidth - 1
	}
	m.msgList.SetWidth(contentWidth - 2)
	m.toolPanel.SetWidth(toolPanelWidth)
	m.statusBar.Width = msg.Width
	m.input.Width = msg.Width - 4

	m.viewport.Width = contentWidth
	m.viewport.Height = msg.Height - chromeHeight
	m.refreshViewport(false)
	return m, nil
}

// refreshViewport re-renders the message list into the viewport.
func (m *Model) refreshViewport(followTail bool) {
	m.msgList.SetMessages(m.conv.Snapshot())
	m.viewport.SetContent(m.msgList.View())
	if followTail {
		m.viewport.GotoBottom()
	}
}

// syncStatusBar pushes the current model state into the status bar before
// rendering.
func (m *Model) syncStatusBar() {
	switch m.state {
	case StateSending:
		m.statusBar.Status = components.StatusSending
	case StateStreaming:
		m.statusBar.Status = components.StatusStreaming
	default:
		m.statusBar.Status = components.StatusReady
	}
	m.statusBar.MessageCount = m.conv.MessageCount()
	m.statusBar.ToolCallCount = m.tools.Len()
}
