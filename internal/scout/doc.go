// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scout implements the HTTP client for the Paper Scout agent
// backend.
//
// The backend answers one POST /chat request with a newline-delimited
// stream of frames. Frames carrying payload start with "data: " followed by
// a JSON event: a content delta for the growing reply, or a tool_call record
// describing a tool the agent invoked while answering.
//
// The package is organized around three pieces:
//
//   - FrameDecoder turns arbitrary byte chunks into complete frames,
//     carrying unterminated fragments across chunk boundaries.
//   - ParseFrame turns one frame into a typed event, dropping frames that
//     are not events and reporting (not raising) malformed payloads.
//   - Client drives one request/response cycle and folds the events into
//     the conversation and the tool log. One request may be in flight at
//     a time.
package scout
