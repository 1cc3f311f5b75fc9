// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"sync"
	"time"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds an append-only chat history with a single designated
// in-flight assistant message.
//
// The in-flight message is tracked by an explicit index handle rather than
// last-element lookup, so appends from the decode loop can never alias a
// message that has already settled.
//
// The decode loop is the only writer; the presentation layer reads through
// Snapshot, which copies. A mutex covers the window where both overlap.
type Conversation struct {
	mu sync.RWMutex

	messages []*Message

	// inFlight indexes the streaming assistant message, -1 when none.
	inFlight int

	createdAt time.Time
	updatedAt time.Time
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		messages:  make([]*Message, 0),
		inFlight:  -1,
		createdAt: now,
		updatedAt: now,
	}
}

// =============================================================================
// STATE MACHINE OPERATIONS
// =============================================================================

// Begin starts a new exchange: it appends the user message followed by a
// streaming assistant placeholder, and designates the placeholder as the
// in-flight message.
//
// Begin is a no-op returning false while a previous exchange is still
// in flight.
func (c *Conversation) Begin(userText string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight >= 0 {
		return false
	}

	c.messages = append(c.messages, NewUserMessage(userText))
	c.messages = append(c.messages, NewAssistantPlaceholder())
	c.inFlight = len(c.messages) - 1
	c.updatedAt = time.Now()
	return true
}

// AppendToInFlight appends a content delta to the in-flight message.
// Deltas arriving while no message is in flight are dropped.
func (c *Conversation) AppendToInFlight(delta string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight < 0 {
		return
	}
	c.messages[c.inFlight].appendDelta(delta)
	c.updatedAt = time.Now()
}

// SettleInFlight freezes the in-flight message and releases the handle.
// The message content is immutable afterwards.
func (c *Conversation) SettleInFlight() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight < 0 {
		return
	}
	c.messages[c.inFlight].settle()
	c.inFlight = -1
	c.updatedAt = time.Now()
}

// FailInFlight converts the in-flight placeholder into a failed message with
// the fixed error text and releases the handle. Any partially streamed
// content is discarded.
//
// If no message is in flight (the failure happened before Begin completed a
// placeholder, which cannot normally occur) FailInFlight appends a failed
// assistant message so the error is still visible.
func (c *Conversation) FailInFlight() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight < 0 {
		msg := NewAssistantPlaceholder()
		msg.fail()
		c.messages = append(c.messages, msg)
		c.updatedAt = time.Now()
		return
	}
	c.messages[c.inFlight].fail()
	c.inFlight = -1
	c.updatedAt = time.Now()
}

// =============================================================================
// READ API
// =============================================================================

// Snapshot returns value copies of all messages in arrival order.
// The returned slice is owned by the caller.
func (c *Conversation) Snapshot() []MessageSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]MessageSnapshot, len(c.messages))
	for i, msg := range c.messages {
		out[i] = msg.snapshot()
	}
	return out
}

// InFlight reports whether an assistant message is currently streaming.
func (c *Conversation) InFlight() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inFlight >= 0
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return c.MessageCount() == 0
}

// Clear removes all messages. A conversation with an in-flight message
// cannot be cleared.
func (c *Conversation) Clear() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight >= 0 {
		return false
	}
	c.messages = make([]*Message, 0)
	c.updatedAt = time.Now()
	return true
}

// UpdatedAt returns the time of the last mutation.
func (c *Conversation) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}
