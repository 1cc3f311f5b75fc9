// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/scout-tui/internal/toollog"
	"github.com/jeranaias/scout-tui/internal/ui/styles"
	"github.com/jeranaias/scout-tui/internal/util"
)

const (
	// toolPanelWidth is the fixed width of the side panel in wide layouts.
	toolPanelWidth = 32

	// chromeHeight is the vertical space taken by everything that is not
	// the viewport: header, spinner line, input box, status bar.
	chromeHeight = 8
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat screen.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.overlay != overlayNone {
		return m.renderOverlay()
	}

	if m.conv.IsEmpty() && !m.Streaming() {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.welcome.View(),
			m.renderInput(),
			m.renderStatusBar(),
		)
	}

	body := m.viewport.View()
	if m.theme.GetLayoutMode() == styles.LayoutWide {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			body,
			" ",
			m.toolPanel.View(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderActivityLine(),
		m.renderInput(),
		m.renderStatusBar(),
	)
}

// =============================================================================
// SECTIONS
// =============================================================================

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("scout")
	subtitle := m.theme.HeaderSubtitle.Render("paper research agent")
	return m.theme.Header.Width(m.width).Render(title + "  " + subtitle)
}

// renderActivityLine shows the spinner while waiting on the agent, or a
// transient flash notice. A single reserved line keeps the layout stable.
func (m Model) renderActivityLine() string {
	if m.flash != "" {
		if m.flashErr {
			return " " + m.theme.ErrorStyle.Render(m.flash)
		}
		return " " + m.theme.SuccessStyle.Render(m.flash)
	}
	if m.spinner.IsActive() {
		return " " + m.spinner.View()
	}
	return ""
}

func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())
}

func (m Model) renderStatusBar() string {
	m.syncStatusBar()
	return m.statusBar.View()
}

// =============================================================================
// OVERLAYS
// =============================================================================

func (m Model) renderOverlay() string {
	var content string
	switch m.overlay {
	case overlayHelp:
		content = m.renderHelp()
	case overlayToolLog:
		content = m.renderToolLog()
	case overlayStatus:
		content = m.renderStatus()
	}

	box := m.theme.OverlayBox.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.theme.OverlayTitle.Render("Commands"))
	b.WriteString("\n\n")

	byCategory := m.registry.ByCategory()
	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		b.WriteString(m.theme.ShortcutDesc.Render(cat))
		b.WriteString("\n")
		for _, cmd := range byCategory[cat] {
			usage := cmd.Name
			if cmd.Usage != "" {
				usage = cmd.Usage
			}
			b.WriteString("  ")
			b.WriteString(m.theme.ShortcutKey.Render(util.PadRight(usage, 24)))
			b.WriteString(cmd.Description)
			if len(cmd.Aliases) > 0 {
				b.WriteString(m.theme.Timestamp.Render("  (" + strings.Join(cmd.Aliases, ", ") + ")"))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Timestamp.Render("press any key to close"))
	return b.String()
}

func (m Model) renderToolLog() string {
	var b strings.Builder
	b.WriteString(m.theme.OverlayTitle.Render("Tool Calls"))
	b.WriteString("\n\n")

	if len(m.overlayCalls) == 0 {
		b.WriteString(m.theme.Timestamp.Render("No tool calls recorded."))
		return b.String()
	}

	for _, call := range m.overlayCalls {
		b.WriteString(m.renderToolCallLine(call))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Timestamp.Render(strconv.Itoa(len(m.overlayCalls)) + " total"))
	return b.String()
}

func (m Model) renderToolCallLine(call toollog.ToolCall) string {
	indicator := m.theme.ToolCallOK.Render(styles.StatusIndicators.Success)
	if !call.Success {
		indicator = m.theme.ToolCallFailed.Render(styles.StatusIndicators.Error)
	}
	name := util.TruncateWidth(call.Server+"/"+call.Tool, 40)
	latency := m.theme.ToolCallLatency.Render(formatCallLatency(call))
	return indicator + " " + util.PadRight(name, 42) + latency
}

func (m Model) renderStatus() string {
	var b strings.Builder
	b.WriteString(m.theme.OverlayTitle.Render("Status"))
	b.WriteString("\n\n")

	m.syncStatusBar()
	rows := []struct{ label, value string }{
		{"Agent", m.cfg.Agent.URL},
		{"State", m.statusBar.Status.String()},
		{"Messages", strconv.Itoa(m.conv.MessageCount())},
		{"Tool calls", strconv.Itoa(m.tools.Len())},
		{"Version", m.version},
	}
	if !m.conv.IsEmpty() {
		rows = append(rows, struct{ label, value string }{
			"Updated", m.conv.UpdatedAt().Format("3:04:05 PM"),
		})
	}
	for _, row := range rows {
		b.WriteString(m.theme.ShortcutKey.Render(util.PadRight(row.label, 12)))
		b.WriteString(row.value)
		b.WriteString("\n")
	}
	return b.String()
}

func formatCallLatency(call toollog.ToolCall) string {
	ms := call.Latency.Milliseconds()
	if ms < 1000 {
		return strconv.FormatInt(ms, 10) + "ms"
	}
	return strconv.FormatFloat(float64(ms)/1000, 'f', 1, 64) + "s"
}
