// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/scout-tui/internal/model"
	"github.com/jeranaias/scout-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders conversation snapshots. It works on value snapshots so
// rendering never races the stream writer.
type MessageList struct {
	Messages       []model.MessageSnapshot
	Width          int
	ShowTimestamps bool
	theme          *styles.Theme
}

// NewMessageList creates a new MessageList.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		Width:          80,
		ShowTimestamps: true,
		theme:          theme,
	}
}

// SetMessages sets the messages to display.
func (ml *MessageList) SetMessages(messages []model.MessageSnapshot) {
	ml.Messages = messages
}

// SetWidth sets the list width.
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
}

// View renders all messages.
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(ml.Width).
			Align(lipgloss.Center).
			Padding(2, 0)
		return emptyStyle.Render("No messages yet. Ask about a paper to get started.")
	}

	rendered := make([]string, 0, len(ml.Messages))
	for _, msg := range ml.Messages {
		rendered = append(rendered, ml.renderMessage(msg))
	}
	return strings.Join(rendered, "\n\n")
}

// renderMessage renders one message: a label line, then the body behind a
// colored left border.
func (ml *MessageList) renderMessage(msg model.MessageSnapshot) string {
	var labelStyle, bodyStyle lipgloss.Style

	switch {
	case msg.Role == model.RoleUser:
		labelStyle = ml.theme.UserLabel
		bodyStyle = ml.theme.UserBody
	case msg.Failed:
		labelStyle = ml.theme.AssistantLabel
		bodyStyle = ml.theme.FailedBody
	default:
		labelStyle = ml.theme.AssistantLabel
		bodyStyle = ml.theme.AssistantBody
	}

	label := labelStyle.Render(msg.Role.DisplayName())
	if ml.ShowTimestamps && !msg.CreatedAt.IsZero() {
		label += " " + ml.theme.Timestamp.Render(formatMessageTime(msg.CreatedAt))
	}

	content := msg.Content
	if msg.Streaming {
		// Cursor marks the in-flight reply; an empty reply shows as just
		// the cursor while the first delta is in transit.
		content += ml.theme.StreamCursor.Render("_")
	}
	if content == "" {
		content = "..."
	}

	bodyWidth := ml.Width - 4
	if bodyWidth < 20 {
		bodyWidth = 20
	}
	body := bodyStyle.Render(wordWrap(content, bodyWidth))

	return lipgloss.JoinVertical(lipgloss.Left, label, body)
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// wordWrap wraps text to fit within the specified display width. Width is
// measured in terminal columns so CJK text wraps correctly.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for lineIdx, line := range strings.Split(text, "\n") {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if runewidth.StringWidth(currentLine)+1+runewidth.StringWidth(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}
		result.WriteString(currentLine)
	}

	return result.String()
}

// formatMessageTime formats a timestamp as "3:04 PM", with the date prefixed
// when the message is from another day.
func formatMessageTime(ts time.Time) string {
	now := time.Now()
	if ts.Year() == now.Year() && ts.YearDay() == now.YearDay() {
		return ts.Format("3:04 PM")
	}
	return ts.Format("Jan 2, 3:04 PM")
}
