// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package toollog records the tool invocations the agent backend reports
// while answering.
package toollog

import (
	"strconv"
	"testing"
	"time"
)

func TestLog_RecentWindow(t *testing.T) {
	tests := []struct {
		name     string
		recorded int
		ask      int
		want     int
	}{
		{name: "empty log", recorded: 0, ask: 5, want: 0},
		{name: "fewer than window", recorded: 3, ask: 5, want: 3},
		{name: "exactly window", recorded: 5, ask: 5, want: 5},
		{name: "more than window", recorded: 42, ask: 5, want: 5},
		{name: "many entries", recorded: 100, ask: 5, want: 5},
		{name: "zero ask", recorded: 10, ask: 0, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log := NewLog()
			for i := 0; i < tc.recorded; i++ {
				log.Record(ToolCall{
					Server:  "paper_search",
					Tool:    "search_papers_" + strconv.Itoa(i),
					Latency: time.Duration(i) * time.Millisecond,
					Success: true,
				})
			}

			recent := log.Recent(tc.ask)
			if len(recent) != tc.want {
				t.Fatalf("Recent(%d) returned %d entries, want %d", tc.ask, len(recent), tc.want)
			}

			// Entries must be the most recent ones, in arrival order.
			for i, call := range recent {
				wantTool := "search_papers_" + strconv.Itoa(tc.recorded-tc.want+i)
				if call.Tool != wantTool {
					t.Errorf("Recent(%d)[%d].Tool = %q, want %q", tc.ask, i, call.Tool, wantTool)
				}
			}
		})
	}
}

func TestLog_RecordFillsTimestamp(t *testing.T) {
	log := NewLog()
	log.Record(ToolCall{Server: "pdf_summarize", Tool: "summarize_pdf"})

	recent := log.Recent(1)
	if len(recent) != 1 {
		t.Fatalf("expected one entry, got %d", len(recent))
	}
	if recent[0].RecordedAt.IsZero() {
		t.Error("RecordedAt should be filled in when unset")
	}
}

func TestLog_RecentReturnsCopy(t *testing.T) {
	log := NewLog()
	log.Record(ToolCall{Server: "paper_search", Tool: "search_papers", Success: true})

	recent := log.Recent(5)
	recent[0].Tool = "mutated"

	if log.Recent(5)[0].Tool != "search_papers" {
		t.Error("mutating a Recent result must not affect the log")
	}
}

func TestLog_Clear(t *testing.T) {
	log := NewLog()
	for i := 0; i < 7; i++ {
		log.Record(ToolCall{Server: "paper_search", Tool: "search_papers"})
	}

	log.Clear()
	if log.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", log.Len())
	}
	if got := log.Recent(5); len(got) != 0 {
		t.Errorf("Recent after Clear returned %d entries, want 0", len(got))
	}
}
