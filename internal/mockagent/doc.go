// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mockagent implements a development stand-in for the Paper Scout
// agent backend.
//
// It speaks the real wire format - newline-delimited "data: " frames with
// content and tool_call events - and emits canned research-assistant
// responses, pacing tokens with a rate limiter so streaming behavior is
// observable. Run it with "scout serve" when no real backend is available.
package mockagent
