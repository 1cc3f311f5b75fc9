// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Scout"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// FailedReplyText is the fixed user-visible content of a reply that could
// not be completed.
const FailedReplyText = "Sorry - something went wrong while answering. Please try again."

// Message represents a single message in a conversation.
//
// An assistant message starts as a streaming placeholder; content deltas are
// accumulated in a builder and merged into Content when the message settles
// or fails. Once Streaming flips to false the message is terminal.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`

	// Content
	Content string `json:"content"`

	// Lifecycle
	Streaming bool `json:"-"`
	Failed    bool `json:"failed,omitempty"`

	// TTFT is the delay between creation of the placeholder and the first
	// content delta. Zero until the first delta arrives.
	TTFT time.Duration `json:"-"`

	// PERFORMANCE: strings.Builder avoids quadratic allocations while streaming
	streamContent strings.Builder
}

// NewUserMessage creates a user message with a generated ID.
func NewUserMessage(content string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewAssistantPlaceholder creates an empty streaming assistant message.
func NewAssistantPlaceholder() *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleAssistant,
		CreatedAt: time.Now(),
		Streaming: true,
	}
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// appendDelta appends streamed content to a streaming message.
// Deltas arriving after the message settled or failed are ignored.
func (m *Message) appendDelta(delta string) {
	if !m.Streaming {
		return
	}
	if m.streamContent.Len() == 0 && delta != "" && m.TTFT == 0 {
		m.TTFT = time.Since(m.CreatedAt)
	}
	m.streamContent.WriteString(delta)
}

// settle freezes the message content and ends streaming.
func (m *Message) settle() {
	if !m.Streaming {
		return
	}
	m.Content = m.streamContent.String()
	m.streamContent.Reset()
	m.Streaming = false
}

// fail freezes the message with the fixed failure text.
func (m *Message) fail() {
	if !m.Streaming {
		return
	}
	m.streamContent.Reset()
	m.Content = FailedReplyText
	m.Streaming = false
	m.Failed = true
}

// DisplayContent returns the content to display (streamed-so-far or final).
func (m *Message) DisplayContent() string {
	if m.Streaming {
		return m.streamContent.String()
	}
	return m.Content
}

// IsEmpty returns true if the message has no content yet.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0 && m.streamContent.Len() == 0
}

// snapshot returns an immutable value copy for readers.
func (m *Message) snapshot() MessageSnapshot {
	return MessageSnapshot{
		ID:        m.ID,
		Role:      m.Role,
		Content:   m.DisplayContent(),
		CreatedAt: m.CreatedAt,
		Streaming: m.Streaming,
		Failed:    m.Failed,
		TTFT:      m.TTFT,
	}
}

// MessageSnapshot is a read-only value copy of a Message. The JSON shape is
// part of the transcript export format.
type MessageSnapshot struct {
	ID        string        `json:"id"`
	Role      Role          `json:"role"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	Streaming bool          `json:"streaming,omitempty"`
	Failed    bool          `json:"failed,omitempty"`
	TTFT      time.Duration `json:"ttft_ns,omitempty"`
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique message ID.
func generateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "msg_" + hex.EncodeToString(bytes)
}
