// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scout implements the HTTP client for the Paper Scout agent backend.
package scout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/scout-tui/internal/model"
	"github.com/jeranaias/scout-tui/internal/toollog"
)

// =============================================================================
// CLIENT STATUS
// =============================================================================

// Status is the request orchestrator state.
type Status int32

const (
	StatusReady     Status = iota // Accepting a new send
	StatusSending                 // Request issued, stream not yet acquired
	StatusStreaming               // Draining the response stream
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusSending:
		return "sending"
	case StatusStreaming:
		return "streaming"
	default:
		return "unknown"
	}
}

// =============================================================================
// HOOKS
// =============================================================================

// Hooks receives notifications as stream events are applied to the
// conversation and the tool log. Callbacks run on the decode goroutine and
// must return quickly.
type Hooks struct {
	OnDelta    func(text string)
	OnToolCall func(call toollog.ToolCall)
}

// chatRequest is the POST /chat request body.
type chatRequest struct {
	Message string `json:"message"`
}

// readBufSize is the size of the chunk buffer for the decode loop.
const readBufSize = 4096

// =============================================================================
// CLIENT
// =============================================================================

// Client drives one request/response cycle against the agent backend.
//
// At most one request is in flight at a time; Send returns ErrBusy while a
// previous send is still draining. Every exit path - completion, transport
// error, cancellation - finalizes the in-flight message and returns the
// client to StatusReady, so a failed stream never wedges the next send.
type Client struct {
	baseURL    string
	httpClient *http.Client
	conv       *model.Conversation
	tools      *toollog.Log
	log        *zap.Logger

	status atomic.Int32
}

// New creates a client for the agent at baseURL, folding stream events into
// the given conversation and tool log. A nil logger disables diagnostics.
func New(baseURL string, conv *model.Conversation, tools *toollog.Log, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		conv:       conv,
		tools:      tools,
		log:        logger,
	}
}

// Status returns the current orchestrator state.
func (c *Client) Status() Status {
	return Status(c.status.Load())
}

// Busy reports whether a request is currently in flight.
func (c *Client) Busy() bool {
	return c.Status() != StatusReady
}

// =============================================================================
// SEND
// =============================================================================

// Send issues one chat request and blocks until the response stream is fully
// drained or fails.
//
// Empty or whitespace-only input returns ErrEmptyMessage without appending a
// message or issuing a request. A send while one is in flight returns
// ErrBusy. Both are expected no-ops at call sites, not failures.
func (c *Client) Send(ctx context.Context, text string, hooks *Hooks) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	if !c.status.CompareAndSwap(int32(StatusReady), int32(StatusSending)) {
		return ErrBusy
	}
	// The ready state is restored on every exit path.
	defer c.status.Store(int32(StatusReady))

	log := c.log.With(zap.String("request_id", uuid.NewString()))
	log.Debug("sending chat request", zap.Int("message_len", len(text)))

	c.conv.Begin(text)

	body, err := json.Marshal(chatRequest{Message: text})
	if err != nil {
		c.conv.FailInFlight()
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		c.conv.FailInFlight()
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.conv.FailInFlight()
		log.Debug("request failed", zap.Error(err))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.conv.FailInFlight()
		agentErr := &AgentError{Status: resp.StatusCode, Body: strings.TrimSpace(string(detail))}
		log.Debug("agent rejected request", zap.Int("status", resp.StatusCode))
		return agentErr
	}

	c.status.Store(int32(StatusStreaming))

	if err := c.drain(ctx, resp.Body, hooks, log); err != nil {
		c.conv.FailInFlight()
		log.Debug("stream failed", zap.Error(err))
		return err
	}

	c.conv.SettleInFlight()
	log.Debug("stream complete")
	return nil
}

// =============================================================================
// DECODE LOOP
// =============================================================================

// drain pulls chunks from the response body until end-of-stream, running
// each through the frame decoder and dispatching the resulting events.
// Each Read is a suspension point; there are no parallel decode workers.
func (c *Client) drain(ctx context.Context, body io.Reader, hooks *Hooks, log *zap.Logger) error {
	var decoder FrameDecoder
	buf := make([]byte, readBufSize)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := body.Read(buf)
		if n > 0 {
			for _, frame := range decoder.Decode(buf[:n]) {
				c.dispatch(frame, hooks, log)
			}
		}
		if err == io.EOF {
			// A final frame without a trailing newline still counts.
			if frame, ok := decoder.Flush(); ok {
				c.dispatch(frame, hooks, log)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("stream read: %w", err)
		}
	}
}

// dispatch applies one frame to the conversation or the tool log.
// Malformed frames are logged and dropped; they never abort the stream.
func (c *Client) dispatch(frame string, hooks *Hooks, log *zap.Logger) {
	event, err := ParseFrame(frame)
	if err != nil {
		log.Debug("dropping malformed frame", zap.Error(err))
		return
	}

	switch ev := event.(type) {
	case ContentDelta:
		c.conv.AppendToInFlight(ev.Text)
		if hooks != nil && hooks.OnDelta != nil {
			hooks.OnDelta(ev.Text)
		}
	case ToolCallEvent:
		call := toollog.ToolCall{
			Server:  ev.Server,
			Tool:    ev.Tool,
			Latency: ev.Latency,
			Success: ev.Success,
		}
		c.tools.Record(call)
		if hooks != nil && hooks.OnToolCall != nil {
			hooks.OnToolCall(call)
		}
	}
}
