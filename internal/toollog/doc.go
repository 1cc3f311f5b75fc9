// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package toollog records the tool invocations the agent backend reports
// while answering.
//
// The log is independent of the conversation: entries are immutable, stored
// in arrival order without eviction, and read through a bounded
// most-recent-N window (the UI shows the last 5).
package toollog
