// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// A Conversation is an append-only sequence of Messages with at most one
// in-flight (streaming) assistant message at any time. All mutation goes
// through explicit operations scoped to the in-flight message:
//
//	Begin(userText)      append user message + streaming placeholder
//	AppendToInFlight(s)  append a content delta to the placeholder
//	SettleInFlight()     freeze the placeholder (terminal)
//	FailInFlight()       freeze the placeholder as failed (terminal)
//
// Readers never see Conversation internals; Snapshot returns value copies so
// a concurrent reader cannot observe a half-applied mutation.
package model
