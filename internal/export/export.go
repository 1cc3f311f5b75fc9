// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/scout-tui/internal/model"
	"github.com/jeranaias/scout-tui/internal/toollog"
	"github.com/jeranaias/scout-tui/internal/util"
)

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the exportable view of a session: the settled conversation
// plus every tool call the agent made while producing it.
type Transcript struct {
	Messages   []model.MessageSnapshot `json:"messages"`
	ToolCalls  []toollog.ToolCall      `json:"tool_calls"`
	AgentURL   string                  `json:"agent_url,omitempty"`
	ExportedAt time.Time               `json:"exported_at"`
}

// Title derives a transcript title from the first user message.
func (t *Transcript) Title() string {
	for _, msg := range t.Messages {
		if msg.Role == model.RoleUser {
			return util.TruncateRunes(util.FirstLine(msg.Content), 50)
		}
	}
	return "conversation"
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for transcript exporters.
type Exporter interface {
	// Export renders a transcript to the target format.
	Export(t *Transcript) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".md").
	FileExtension() string
}

// ForFormat returns the exporter for a format name ("md" or "json").
func ForFormat(format string) (Exporter, error) {
	switch format {
	case "md", "markdown", "":
		return NewMarkdownExporter(), nil
	case "json":
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want md or json)", format)
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile renders the transcript and writes it to path. An empty path
// selects a timestamped filename in the current directory. The write is
// atomic so a crash never leaves a truncated transcript.
func ExportToFile(t *Transcript, exporter Exporter, path string) (string, error) {
	if len(t.Messages) == 0 {
		return "", fmt.Errorf("nothing to export")
	}
	if t.ExportedAt.IsZero() {
		t.ExportedAt = time.Now()
	}

	content, err := exporter.Export(t)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if path == "" {
		path = defaultFilename(t, exporter.FileExtension())
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return path, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func defaultFilename(t *Transcript, ext string) string {
	timestamp := t.ExportedAt.Format("20060102_150405")
	return fmt.Sprintf("scout_%s_%s%s", sanitizeFilename(t.Title()), timestamp, ext)
}

// sanitizeFilename removes or replaces characters that are invalid in
// filenames on Windows or Unix.
func sanitizeFilename(s string) string {
	s = util.TruncateRunes(s, 50)

	replacer := map[rune]rune{
		'/':  '-',
		'\\': '-',
		':':  '-',
		'*':  '-',
		'?':  '-',
		'"':  '-',
		'<':  '-',
		'>':  '-',
		'|':  '-',
		' ':  '_',
		'\t': '_',
		'\n': '_',
		'\r': '_',
	}

	result := make([]rune, 0, len(s))
	for _, r := range s {
		if replacement, found := replacer[r]; found {
			result = append(result, replacement)
		} else if r < 32 || r == 127 {
			result = append(result, '-')
		} else {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return "conversation"
	}
	return string(result)
}

func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func formatLatency(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
