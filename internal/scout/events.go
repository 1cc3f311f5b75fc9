// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scout implements the HTTP client for the Paper Scout agent backend.
package scout

import "time"

// =============================================================================
// TYPED EVENTS
// =============================================================================

// Event is a typed unit decoded from one stream frame.
type Event interface {
	isEvent()
}

// ContentDelta is a fragment of the assistant reply, appended in arrival
// order.
type ContentDelta struct {
	Text string
}

func (ContentDelta) isEvent() {}

// ToolCallEvent reports one tool invocation the backend performed while
// answering. The client displays these; it never executes tools itself.
type ToolCallEvent struct {
	Server  string
	Tool    string
	Latency time.Duration
	Success bool
}

func (ToolCallEvent) isEvent() {}

// =============================================================================
// WIRE FORMAT
// =============================================================================

// wireEvent is the JSON envelope carried by a "data: " frame.
// Latency is reported by the backend in milliseconds.
type wireEvent struct {
	Type    string  `json:"type"`
	Content string  `json:"content"`
	Server  string  `json:"server"`
	Tool    string  `json:"tool"`
	Latency float64 `json:"latency"`
	Success bool    `json:"success"`
}

// Wire event type values.
const (
	wireTypeContent  = "content"
	wireTypeToolCall = "tool_call"
)
