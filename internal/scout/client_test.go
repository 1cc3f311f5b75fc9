// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scout implements the HTTP client for the Paper Scout agent backend.
package scout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/scout-tui/internal/model"
	"github.com/jeranaias/scout-tui/internal/toollog"
)

// =============================================================================
// TEST HARNESS
// =============================================================================

type harness struct {
	conv   *model.Conversation
	tools  *toollog.Log
	client *Client
}

func newHarness(t *testing.T, handler http.HandlerFunc) (*harness, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	conv := model.NewConversation()
	tools := toollog.NewLog()
	return &harness{
		conv:   conv,
		tools:  tools,
		client: New(srv.URL, conv, tools, nil),
	}, srv
}

// streamFrames writes frames to the response one flush per frame, the way
// the agent backend streams them.
func streamFrames(w http.ResponseWriter, frames ...string) {
	flusher := w.(http.Flusher)
	w.Header().Set("Content-Type", "text/event-stream")
	for _, frame := range frames {
		fmt.Fprint(w, frame+"\n")
		flusher.Flush()
	}
}

func lastMessage(t *testing.T, conv *model.Conversation) model.MessageSnapshot {
	t.Helper()
	msgs := conv.Snapshot()
	require.NotEmpty(t, msgs)
	return msgs[len(msgs)-1]
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestClient_SendStreamsReply(t *testing.T) {
	h, _ := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)

		streamFrames(w,
			`data: {"type":"content","content":"Here are "}`,
			`data: {"type":"tool_call","server":"paper_search","tool":"search_papers","latency":412,"success":true}`,
			`: comment line, not an event`,
			`data: {"type":"heartbeat"}`,
			`data: {"type":"content","content":"3 papers."}`,
		)
	})

	var deltas []string
	err := h.client.Send(context.Background(), "find papers", &Hooks{
		OnDelta: func(text string) { deltas = append(deltas, text) },
	})
	require.NoError(t, err)

	// Conversation: user message + settled reply.
	msgs := h.conv.Snapshot()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	reply := msgs[1]
	assert.Equal(t, "Here are 3 papers.", reply.Content)
	assert.False(t, reply.Streaming)
	assert.False(t, reply.Failed)

	// Deltas observed in arrival order.
	assert.Equal(t, []string{"Here are ", "3 papers."}, deltas)

	// Tool log got exactly the tool_call event; content never leaked in.
	require.Equal(t, 1, h.tools.Len())
	call := h.tools.Recent(1)[0]
	assert.Equal(t, "paper_search", call.Server)
	assert.Equal(t, "search_papers", call.Tool)
	assert.Equal(t, 412*time.Millisecond, call.Latency)
	assert.True(t, call.Success)

	assert.Equal(t, StatusReady, h.client.Status())
}

func TestClient_EmptyInputIsNoOp(t *testing.T) {
	var hits atomic.Int32
	h, _ := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	for _, input := range []string{"", "   ", "\n\t "} {
		err := h.client.Send(context.Background(), input, nil)
		assert.ErrorIs(t, err, ErrEmptyMessage, "input %q", input)
	}

	assert.Equal(t, int32(0), hits.Load(), "no request may be issued")
	assert.Equal(t, 0, h.conv.MessageCount(), "no message may be appended")
}

func TestClient_RejectsConcurrentSend(t *testing.T) {
	release := make(chan struct{})
	h, _ := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		streamFrames(w, `data: {"type":"content","content":"thinking"}`)
		<-release
	})

	firstDone := make(chan error, 1)
	started := make(chan struct{})
	go func() {
		firstDone <- h.client.Send(context.Background(), "first", &Hooks{
			OnDelta: func(string) {
				select {
				case <-started:
				default:
					close(started)
				}
			},
		})
	}()

	<-started
	err := h.client.Send(context.Background(), "second", nil)
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-firstDone)

	// After completion the guard releases.
	assert.Equal(t, StatusReady, h.client.Status())
}

func TestClient_MalformedFrameDoesNotAbortStream(t *testing.T) {
	h, _ := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		streamFrames(w,
			`data: {"type":"content","content":"before"}`,
			`data: {"type":"content",`,
			`data: {"type":"content","content":" after"}`,
		)
	})

	err := h.client.Send(context.Background(), "q", nil)
	require.NoError(t, err)

	reply := lastMessage(t, h.conv)
	assert.Equal(t, "before after", reply.Content)
	assert.Equal(t, 0, h.tools.Len())
}

// =============================================================================
// FAILURE TESTS
// =============================================================================

func TestClient_NonSuccessStatus(t *testing.T) {
	h, _ := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "agent not initialized", http.StatusServiceUnavailable)
	})

	err := h.client.Send(context.Background(), "q", nil)

	var agentErr *AgentError
	require.ErrorAs(t, err, &agentErr)
	assert.Equal(t, http.StatusServiceUnavailable, agentErr.Status)

	// Exactly one failed message, with the fixed error text.
	failed := 0
	for _, m := range h.conv.Snapshot() {
		if m.Failed {
			failed++
			assert.Equal(t, model.FailedReplyText, m.Content)
			assert.False(t, m.Streaming)
		}
	}
	assert.Equal(t, 1, failed)
}

func TestClient_TransportErrorMidStream(t *testing.T) {
	h, _ := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		// Declare more content than is written; the client observes an
		// unexpected EOF mid-body.
		w.Header().Set("Content-Length", "4096")
		fmt.Fprint(w, "data: {\"type\":\"content\",\"content\":\"partial\"}\n")
	})

	err := h.client.Send(context.Background(), "q", nil)
	require.Error(t, err)

	reply := lastMessage(t, h.conv)
	assert.True(t, reply.Failed)
	assert.False(t, reply.Streaming)
	assert.Equal(t, model.FailedReplyText, reply.Content, "partial content is discarded")

	// The orchestrator accepts a new send immediately after a failure.
	assert.Equal(t, StatusReady, h.client.Status())
}

func TestClient_ConnectionRefused(t *testing.T) {
	conv := model.NewConversation()
	tools := toollog.NewLog()
	client := New("http://127.0.0.1:1", conv, tools, nil)

	err := client.Send(context.Background(), "q", nil)
	require.Error(t, err)
	assert.True(t, lastMessage(t, conv).Failed)
	assert.Equal(t, StatusReady, client.Status())
}

func TestClient_RecoverAfterFailure(t *testing.T) {
	var requests atomic.Int32
	h, _ := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		streamFrames(w, `data: {"type":"content","content":"recovered"}`)
	})

	require.Error(t, h.client.Send(context.Background(), "first", nil))
	require.NoError(t, h.client.Send(context.Background(), "second", nil))

	reply := lastMessage(t, h.conv)
	assert.Equal(t, "recovered", reply.Content)
	assert.False(t, reply.Failed)
}

func TestClient_ContextCancellation(t *testing.T) {
	h, _ := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		streamFrames(w, `data: {"type":"content","content":"thinking"}`)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- h.client.Send(ctx, "q", &Hooks{
			OnDelta: func(string) { cancel() },
		})
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled) || strings.Contains(err.Error(), "context canceled"),
			"error = %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("Send did not return after cancellation")
	}

	assert.True(t, lastMessage(t, h.conv).Failed)
	assert.Equal(t, StatusReady, h.client.Status())
}
