// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/scout-tui/internal/toollog"
	"github.com/jeranaias/scout-tui/internal/ui/styles"
	"github.com/jeranaias/scout-tui/internal/util"
)

// =============================================================================
// TOOL PANEL COMPONENT
// =============================================================================

// ToolPanel renders the sidebar showing the most recent tool calls the agent
// made. Only the recent window is shown here; /log prints the full history.
type ToolPanel struct {
	Width int
	log   *toollog.Log
	theme *styles.Theme
}

// NewToolPanel creates a new ToolPanel reading from the given log.
func NewToolPanel(log *toollog.Log, theme *styles.Theme) *ToolPanel {
	return &ToolPanel{
		Width: 32,
		log:   log,
		theme: theme,
	}
}

// SetWidth sets the panel width.
func (p *ToolPanel) SetWidth(width int) {
	p.Width = width
}

// View renders the panel.
func (p *ToolPanel) View() string {
	title := p.theme.ToolPanelTitle.Render("Tool Calls")

	var body string
	calls := p.log.Recent(toollog.RecentWindow)
	if len(calls) == 0 {
		body = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Render("none yet")
	} else {
		lines := make([]string, 0, len(calls))
		for _, call := range calls {
			lines = append(lines, p.renderCall(call))
		}
		body = strings.Join(lines, "\n")
	}

	total := p.log.Len()
	if total > toollog.RecentWindow {
		body += "\n" + p.theme.ShortcutDesc.Render(
			fmt.Sprintf("+%d more (/log)", total-toollog.RecentWindow))
	}

	return p.theme.ToolPanel.Width(p.Width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, body))
}

// renderCall renders one entry: status indicator, server/tool, latency.
func (p *ToolPanel) renderCall(call toollog.ToolCall) string {
	var status string
	if call.Success {
		status = p.theme.ToolCallOK.Render(styles.StatusIndicators.Success)
	} else {
		status = p.theme.ToolCallFailed.Render(styles.StatusIndicators.Error)
	}

	name := call.Server + "/" + call.Tool
	nameWidth := p.Width - 14
	if nameWidth < 8 {
		nameWidth = 8
	}
	name = util.TruncateWidth(name, nameWidth)

	latency := p.theme.ToolCallLatency.Render(formatToolLatency(call.Latency))

	return status + " " + name + " " + latency
}

func formatToolLatency(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
