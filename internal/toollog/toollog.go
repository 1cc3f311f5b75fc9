// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package toollog records the tool invocations the agent backend reports
// while answering.
package toollog

import (
	"sync"
	"time"
)

// RecentWindow is the number of entries the presentation layer shows.
const RecentWindow = 5

// =============================================================================
// TOOL CALL ENTRY
// =============================================================================

// ToolCall is one tool invocation reported by the backend.
// Entries are immutable once recorded.
type ToolCall struct {
	Server     string        `json:"server"`
	Tool       string        `json:"tool"`
	Latency    time.Duration `json:"latency_ns"`
	Success    bool          `json:"success"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// =============================================================================
// LOG
// =============================================================================

// Log is an append-only record of tool calls.
//
// Storage is unbounded; only the view is windowed. The decode loop is the
// only writer, the UI reads concurrently through Recent.
type Log struct {
	mu      sync.RWMutex
	entries []ToolCall
}

// NewLog creates an empty tool-call log.
func NewLog() *Log {
	return &Log{entries: make([]ToolCall, 0, RecentWindow)}
}

// Record appends an entry. The recorded-at timestamp is filled in if unset.
func (l *Log) Record(call ToolCall) {
	if call.RecordedAt.IsZero() {
		call.RecordedAt = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, call)
}

// Recent returns the last n recorded entries in arrival order (oldest of the
// window first). When fewer than n entries exist, all of them are returned.
// The returned slice is owned by the caller.
func (l *Log) Recent(n int) []ToolCall {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 {
		return nil
	}
	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]ToolCall, len(l.entries)-start)
	copy(out, l.entries[start:])
	return out
}

// Len returns the total number of recorded entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear removes all entries.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
}
