// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversation transcripts to disk.
//
// Two formats are supported: Markdown for reading and sharing, and JSON for
// re-processing. Both include the tool call log alongside the messages, so a
// transcript shows not just what the agent said but what it did to get there.
// Files are written atomically.
package export
