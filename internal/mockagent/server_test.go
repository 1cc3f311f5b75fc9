// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockagent

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/scout-tui/internal/model"
	"github.com/jeranaias/scout-tui/internal/scout"
	"github.com/jeranaias/scout-tui/internal/toollog"
)

func newTestClient(t *testing.T, pace float64) (*scout.Client, *model.Conversation, *toollog.Log) {
	t.Helper()
	srv := httptest.NewServer(New(pace, nil).Handler())
	t.Cleanup(srv.Close)

	conv := model.NewConversation()
	tools := toollog.NewLog()
	return scout.New(srv.URL, conv, tools, nil), conv, tools
}

func TestServer_SearchRequestStreamsToolCallAndContent(t *testing.T) {
	client, conv, tools := newTestClient(t, 100000)

	err := client.Send(context.Background(), "search for transformer papers", nil)
	require.NoError(t, err)

	msgs := conv.Snapshot()
	require.Len(t, msgs, 2)
	assert.False(t, msgs[1].Streaming)
	assert.False(t, msgs[1].Failed)
	assert.Contains(t, msgs[1].Content, "relevant papers")

	calls := tools.Recent(toollog.RecentWindow)
	require.Len(t, calls, 1)
	assert.Equal(t, "paper_search", calls[0].Server)
	assert.Equal(t, "search_papers", calls[0].Tool)
	assert.True(t, calls[0].Success)
}

func TestServer_PlainGreetingHasNoToolCall(t *testing.T) {
	client, conv, tools := newTestClient(t, 100000)

	err := client.Send(context.Background(), "hello", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, tools.Len())
	msgs := conv.Snapshot()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1].Content, "Paper Scout")
}

func TestServer_FailKeywordReportsFailedToolCall(t *testing.T) {
	client, _, tools := newTestClient(t, 100000)

	err := client.Send(context.Background(), "fail please", nil)
	require.NoError(t, err)

	calls := tools.Recent(toollog.RecentWindow)
	require.Len(t, calls, 1)
	assert.False(t, calls[0].Success)
}

func TestServer_HooksReceiveDeltasAndToolCalls(t *testing.T) {
	client, conv, _ := newTestClient(t, 100000)

	var deltas []string
	var calls []toollog.ToolCall
	hooks := &scout.Hooks{
		OnDelta:    func(text string) { deltas = append(deltas, text) },
		OnToolCall: func(call toollog.ToolCall) { calls = append(calls, call) },
	}

	err := client.Send(context.Background(), "search for diffusion papers", hooks)
	require.NoError(t, err)

	require.Len(t, calls, 1)
	assert.Equal(t, "paper_search", calls[0].Server)

	require.NotEmpty(t, deltas)
	msgs := conv.Snapshot()
	require.Len(t, msgs, 2)
	assert.Equal(t, msgs[1].Content, strings.Join(deltas, ""))
}

func TestServer_EmptyMessageRejected(t *testing.T) {
	srv := httptest.NewServer(New(0, nil).Handler())
	defer srv.Close()

	resp, err := srv.Client().Post(srv.URL+"/chat", "application/json", strings.NewReader(`{"message":"  "}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 400, resp.StatusCode)
}

func TestServer_GetChatNotAllowed(t *testing.T) {
	srv := httptest.NewServer(New(0, nil).Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/chat")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 405, resp.StatusCode)
}
