// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scout implements the HTTP client for the Paper Scout agent backend.
package scout

import (
	"errors"
	"fmt"
)

// Error variables for common client errors.
var (
	// ErrBusy indicates a request is already in flight.
	ErrBusy = errors.New("a request is already in flight")

	// ErrEmptyMessage indicates the input was empty or whitespace-only.
	ErrEmptyMessage = errors.New("empty message")
)

// AgentError represents a non-success response from the agent backend.
type AgentError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *AgentError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("agent error (HTTP %d): %s", e.Status, e.Body)
	}
	return fmt.Sprintf("agent error (HTTP %d)", e.Status)
}
