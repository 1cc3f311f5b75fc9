// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/scout-tui/internal/ui/styles"
	"github.com/jeranaias/scout-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status shown in the bar.
type Status int

const (
	StatusReady Status = iota
	StatusSending
	StatusStreaming
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusSending:
		return "Sending..."
	case StatusStreaming:
		return "Streaming..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status.
// ACCESSIBILITY: Distinct shapes alongside colors for colorblind users.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusSending:
		return styles.StatusIndicators.Pending
	case StatusStreaming:
		return "~"
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// StatusBar is the bottom status bar: agent URL, request state, message
// count, and key hints.
type StatusBar struct {
	AgentURL      string
	Status        Status
	MessageCount  int
	ToolCallCount int
	Width         int
	ShowShortcuts bool
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth sets the available width.
func (b *StatusBar) SetWidth(width int) {
	b.Width = width
}

// View renders the status bar.
func (b *StatusBar) View() string {
	var statusStyle lipgloss.Style
	switch b.Status {
	case StatusReady:
		statusStyle = b.theme.StatusReady
	case StatusError:
		statusStyle = b.theme.StatusError
	default:
		statusStyle = b.theme.StatusBusy
	}
	status := statusStyle.Render(b.Status.Icon() + " " + b.Status.String())

	parts := []string{status}

	if b.AgentURL != "" {
		parts = append(parts, b.theme.ShortcutDesc.Render(util.TruncateWidth(b.AgentURL, 32)))
	}

	parts = append(parts, b.theme.ShortcutDesc.Render(
		strconv.Itoa(b.MessageCount)+" msgs | "+strconv.Itoa(b.ToolCallCount)+" tools"))

	left := strings.Join(parts, "  ")

	right := ""
	if b.ShowShortcuts {
		right = b.renderShortcuts()
	}

	gap := b.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return b.theme.StatusBar.Width(b.Width).Render(
		left + strings.Repeat(" ", gap) + right)
}

func (b *StatusBar) renderShortcuts() string {
	pairs := []struct{ key, desc string }{
		{"enter", "send"},
		{"/help", "commands"},
		{"esc", "quit"},
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, b.theme.ShortcutKey.Render(p.key)+" "+b.theme.ShortcutDesc.Render(p.desc))
	}
	return strings.Join(parts, "  ")
}
