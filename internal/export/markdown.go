// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/jeranaias/scout-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders transcripts to Markdown.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export converts a transcript to Markdown.
func (e *MarkdownExporter) Export(t *Transcript) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("transcript is nil")
	}
	if len(t.Messages) == 0 {
		return nil, fmt.Errorf("transcript has no messages")
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(t.Title())))

	sb.WriteString("## Session Information\n\n")
	if t.AgentURL != "" {
		sb.WriteString(fmt.Sprintf("- **Agent**: %s\n", t.AgentURL))
	}
	sb.WriteString(fmt.Sprintf("- **Messages**: %d\n", len(t.Messages)))
	sb.WriteString(fmt.Sprintf("- **Tool Calls**: %d\n", len(t.ToolCalls)))
	sb.WriteString(fmt.Sprintf("- **Exported**: %s\n", formatTimestamp(t.ExportedAt)))
	sb.WriteString("\n---\n\n")

	sb.WriteString("## Conversation\n\n")
	for i, msg := range t.Messages {
		sb.WriteString(fmt.Sprintf("### [%s] <sub>%s</sub>\n\n",
			msg.Role.DisplayName(),
			msg.CreatedAt.Format("15:04:05")))

		sb.WriteString(strings.TrimSpace(msg.Content))
		sb.WriteString("\n\n")

		if msg.Role == model.RoleAssistant && msg.TTFT > 0 {
			sb.WriteString(fmt.Sprintf("<sub>First token after %s</sub>\n\n", formatLatency(msg.TTFT)))
		}

		if i < len(t.Messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	if len(t.ToolCalls) > 0 {
		sb.WriteString("\n## Tool Calls\n\n")
		sb.WriteString("| Server | Tool | Latency | Status |\n")
		sb.WriteString("|--------|------|---------|--------|\n")
		for _, call := range t.ToolCalls {
			status := "ok"
			if !call.Success {
				status = "failed"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				call.Server, call.Tool, formatLatency(call.Latency), status))
		}
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from scout on %s*\n",
		t.ExportedAt.Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes characters that would break formatting in headings.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}
