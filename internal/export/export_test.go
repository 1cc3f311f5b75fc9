// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/scout-tui/internal/model"
	"github.com/jeranaias/scout-tui/internal/toollog"
)

func sampleTranscript() *Transcript {
	now := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	return &Transcript{
		Messages: []model.MessageSnapshot{
			{ID: "msg_1", Role: model.RoleUser, Content: "find papers on attention", CreatedAt: now},
			{ID: "msg_2", Role: model.RoleAssistant, Content: "I found 5 papers.", CreatedAt: now.Add(time.Second), TTFT: 420 * time.Millisecond},
		},
		ToolCalls: []toollog.ToolCall{
			{Server: "paper_search", Tool: "search_papers", Latency: 412 * time.Millisecond, Success: true, RecordedAt: now},
		},
		AgentURL:   "http://127.0.0.1:8000",
		ExportedAt: now.Add(time.Minute),
	}
}

func TestMarkdownExport_IncludesMessagesAndToolCalls(t *testing.T) {
	content, err := NewMarkdownExporter().Export(sampleTranscript())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	out := string(content)
	for _, want := range []string{
		"find papers on attention",
		"I found 5 papers.",
		"[You]",
		"[Scout]",
		"paper_search",
		"search_papers",
		"412ms",
		"http://127.0.0.1:8000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown export missing %q", want)
		}
	}
}

func TestMarkdownExport_EmptyTranscript(t *testing.T) {
	if _, err := NewMarkdownExporter().Export(&Transcript{}); err == nil {
		t.Error("expected error for empty transcript")
	}
	if _, err := NewMarkdownExporter().Export(nil); err == nil {
		t.Error("expected error for nil transcript")
	}
}

func TestJSONExport_RoundTrips(t *testing.T) {
	content, err := NewJSONExporter().Export(sampleTranscript())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var decoded Transcript
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded.Messages) != 2 {
		t.Errorf("got %d messages, want 2", len(decoded.Messages))
	}
	if len(decoded.ToolCalls) != 1 {
		t.Errorf("got %d tool calls, want 1", len(decoded.ToolCalls))
	}
	if decoded.Messages[1].TTFT != 420*time.Millisecond {
		t.Errorf("TTFT = %v, want 420ms", decoded.Messages[1].TTFT)
	}
}

func TestExportToFile_WritesToGivenPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "session.md")

	got, err := ExportToFile(sampleTranscript(), NewMarkdownExporter(), path)
	if err != nil {
		t.Fatalf("ExportToFile: %v", err)
	}
	if got != path {
		t.Errorf("returned path %q, want %q", got, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "find papers on attention") {
		t.Error("written file missing conversation content")
	}
}

func TestExportToFile_DefaultFilename(t *testing.T) {
	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(orig)

	path, err := ExportToFile(sampleTranscript(), NewJSONExporter(), "")
	if err != nil {
		t.Fatalf("ExportToFile: %v", err)
	}
	if !strings.HasPrefix(path, "scout_") || !strings.HasSuffix(path, ".json") {
		t.Errorf("default filename %q lacks scout_ prefix or .json suffix", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file not found: %v", err)
	}
}

func TestExportToFile_EmptyTranscript(t *testing.T) {
	if _, err := ExportToFile(&Transcript{}, NewMarkdownExporter(), ""); err == nil {
		t.Error("expected error exporting empty transcript")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"simple", "simple"},
		{"has spaces", "has_spaces"},
		{"a/b\\c:d", "a-b-c-d"},
		{"", "conversation"},
		{"tabs\tand\nnewlines", "tabs_and_newlines"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
