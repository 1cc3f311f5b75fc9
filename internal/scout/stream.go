// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scout implements the HTTP client for the Paper Scout agent backend.
package scout

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// FRAME DECODER
// =============================================================================

// framePrefix marks frames that carry an event payload.
const framePrefix = "data: "

// FrameDecoder splits a raw byte stream into newline-delimited frames.
//
// Chunks may split a frame anywhere, including inside a multi-byte UTF-8
// character. The carry is kept as raw bytes and only converted to a string
// once a complete frame is assembled, so split characters are reassembled
// correctly. No frame is ever emitted twice or truncated at a chunk
// boundary.
//
// The zero value is ready to use.
type FrameDecoder struct {
	carry []byte
}

// Decode consumes one chunk and returns all frames it completed.
// The trailing unterminated fragment is carried into the next call.
func (d *FrameDecoder) Decode(chunk []byte) []string {
	if len(chunk) == 0 {
		return nil
	}

	d.carry = append(d.carry, chunk...)

	var frames []string
	start := 0
	for i, b := range d.carry {
		if b == '\n' {
			frames = append(frames, trimFrame(d.carry[start:i]))
			start = i + 1
		}
	}
	if start > 0 {
		d.carry = append(d.carry[:0], d.carry[start:]...)
	}
	return frames
}

// Flush returns the unterminated trailing frame, if any. Called once at
// end-of-stream so a final frame without a newline is not lost.
func (d *FrameDecoder) Flush() (string, bool) {
	if len(d.carry) == 0 {
		return "", false
	}
	frame := trimFrame(d.carry)
	d.carry = nil
	return frame, true
}

// trimFrame converts a raw frame to a string, dropping a trailing CR so
// CRLF streams parse the same as LF streams.
func trimFrame(raw []byte) string {
	if n := len(raw); n > 0 && raw[n-1] == '\r' {
		raw = raw[:n-1]
	}
	return string(raw)
}

// =============================================================================
// EVENT PARSER
// =============================================================================

// FrameError reports a frame whose payload could not be decoded. It is a
// local diagnostic: the caller drops the frame and continues the stream.
type FrameError struct {
	Frame string
	Err   error
}

// Error implements the error interface.
func (e *FrameError) Error() string {
	return fmt.Sprintf("malformed frame %q: %v", e.Frame, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *FrameError) Unwrap() error {
	return e.Err
}

// ParseFrame parses one frame into a typed event.
//
// Frames without the "data: " marker are not events and yield (nil, nil).
// Frames with an unknown event type are dropped the same way, so new event
// types added by the backend do not break older clients. A frame whose
// payload fails to decode yields a *FrameError; the stream is never aborted
// for it.
func ParseFrame(frame string) (Event, error) {
	if !strings.HasPrefix(frame, framePrefix) {
		return nil, nil
	}
	payload := frame[len(framePrefix):]

	var wire wireEvent
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, &FrameError{Frame: frame, Err: err}
	}

	switch wire.Type {
	case wireTypeContent:
		return ContentDelta{Text: wire.Content}, nil
	case wireTypeToolCall:
		return ToolCallEvent{
			Server:  wire.Server,
			Tool:    wire.Tool,
			Latency: time.Duration(wire.Latency * float64(time.Millisecond)),
			Success: wire.Success,
		}, nil
	default:
		// Forward compatible: unknown types are ignored without error.
		return nil, nil
	}
}
