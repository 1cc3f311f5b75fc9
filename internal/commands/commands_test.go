// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"testing"
	"time"

	"github.com/jeranaias/scout-tui/internal/model"
	"github.com/jeranaias/scout-tui/internal/toollog"
)

func TestParser_PlainTextIsNotCommand(t *testing.T) {
	p := NewParser(NewRegistry())

	for _, input := range []string{"hello", "find papers on attention", "  spaced  ", ""} {
		result := p.Parse(input)
		if result.IsCommand {
			t.Errorf("Parse(%q).IsCommand = true, want false", input)
		}
	}
}

func TestParser_KnownCommands(t *testing.T) {
	p := NewParser(NewRegistry())

	tests := []struct {
		input    string
		wantName string
		wantArgs []string
	}{
		{"/help", "/help", nil},
		{"/h", "/h", nil},
		{"/quit", "/quit", nil},
		{"/log", "/log", nil},
		{"/clear", "/clear", nil},
		{"/export md", "/export", []string{"md"}},
		{"/export json notes.json", "/export", []string{"json", "notes.json"}},
		{`/export md "my notes.md"`, "/export", []string{"md", "my notes.md"}},
	}

	for _, tt := range tests {
		result := p.Parse(tt.input)
		if !result.IsCommand {
			t.Errorf("Parse(%q).IsCommand = false", tt.input)
			continue
		}
		if result.Command == nil {
			t.Errorf("Parse(%q).Command = nil, want match", tt.input)
			continue
		}
		if result.CommandName != tt.wantName {
			t.Errorf("Parse(%q).CommandName = %q, want %q", tt.input, result.CommandName, tt.wantName)
		}
		if len(result.Args) != len(tt.wantArgs) {
			t.Errorf("Parse(%q).Args = %v, want %v", tt.input, result.Args, tt.wantArgs)
			continue
		}
		for i := range tt.wantArgs {
			if result.Args[i] != tt.wantArgs[i] {
				t.Errorf("Parse(%q).Args[%d] = %q, want %q", tt.input, i, result.Args[i], tt.wantArgs[i])
			}
		}
	}
}

func TestParser_UnknownCommand(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse("/frobnicate")
	if !result.IsCommand {
		t.Fatal("expected IsCommand for /frobnicate")
	}
	if result.Command != nil {
		t.Errorf("expected nil Command for unknown name, got %q", result.Command.Name)
	}
}

func TestRegistry_AliasesResolve(t *testing.T) {
	r := NewRegistry()

	for alias, want := range map[string]string{
		"/h":     "/help",
		"/?":     "/help",
		"/q":     "/quit",
		"/exit":  "/quit",
		"/tools": "/log",
		"/c":     "/clear",
	} {
		cmd := r.Get(alias)
		if cmd == nil {
			t.Errorf("Get(%q) = nil", alias)
			continue
		}
		if cmd.Name != want {
			t.Errorf("Get(%q).Name = %q, want %q", alias, cmd.Name, want)
		}
	}
}

func TestValidateArgs_ExportFormat(t *testing.T) {
	r := NewRegistry()
	cmd := r.Get("/export")

	if err := ValidateArgs(cmd, []string{"md"}); err != nil {
		t.Errorf("ValidateArgs(md) = %v", err)
	}
	if err := ValidateArgs(cmd, []string{"JSON"}); err != nil {
		t.Errorf("ValidateArgs(JSON) = %v, case-insensitive match expected", err)
	}
	if err := ValidateArgs(cmd, nil); err != nil {
		t.Errorf("ValidateArgs(no args) = %v, format is optional", err)
	}
	if err := ValidateArgs(cmd, []string{"xml"}); err == nil {
		t.Error("ValidateArgs(xml) = nil, want error")
	}
}

func TestHandleClear_RefusedWhileStreaming(t *testing.T) {
	conv := model.NewConversation()
	tools := toollog.NewLog()
	tools.Record(toollog.ToolCall{Server: "paper_search", Tool: "search_papers", Latency: time.Millisecond})

	if !conv.Begin("find papers") {
		t.Fatal("Begin failed")
	}

	ctx := NewContext(nil, conv, tools)
	msg := HandleClear(ctx, nil)()

	if _, ok := msg.(ClearCompleteMsg); !ok {
		t.Fatalf("expected ClearCompleteMsg while streaming, got %T", msg)
	}
	if conv.MessageCount() != 2 {
		t.Errorf("conversation was cleared mid-stream, %d messages", conv.MessageCount())
	}
	if tools.Len() != 1 {
		t.Errorf("tool log was cleared mid-stream, %d entries", tools.Len())
	}
}

func TestHandleClear_ClearsSettledConversation(t *testing.T) {
	conv := model.NewConversation()
	tools := toollog.NewLog()
	tools.Record(toollog.ToolCall{Server: "paper_search", Tool: "search_papers", Latency: time.Millisecond})

	conv.Begin("find papers")
	conv.AppendToInFlight("done")
	conv.SettleInFlight()

	ctx := NewContext(nil, conv, tools)
	msg := HandleClear(ctx, nil)()

	if _, ok := msg.(ClearConversationMsg); !ok {
		t.Fatalf("expected ClearConversationMsg, got %T", msg)
	}
	if !conv.IsEmpty() {
		t.Error("conversation not empty after clear")
	}
	if tools.Len() != 0 {
		t.Error("tool log not empty after clear")
	}
}

func TestHandleLog_ReturnsAllCalls(t *testing.T) {
	tools := toollog.NewLog()
	for i := 0; i < 12; i++ {
		tools.Record(toollog.ToolCall{Server: "paper_search", Tool: "search_papers", Latency: time.Millisecond, Success: true})
	}

	msg := HandleLog(NewContext(nil, nil, tools), nil)()
	show, ok := msg.(ShowToolLogMsg)
	if !ok {
		t.Fatalf("expected ShowToolLogMsg, got %T", msg)
	}
	if len(show.Calls) != 12 {
		t.Errorf("got %d calls, want all 12", len(show.Calls))
	}
}

func TestHandleExport_DefaultsToMarkdown(t *testing.T) {
	msg := HandleExport(NewContext(nil, nil, nil), nil)()
	exp, ok := msg.(ExportConversationMsg)
	if !ok {
		t.Fatalf("expected ExportConversationMsg, got %T", msg)
	}
	if exp.Format != "md" {
		t.Errorf("default format = %q, want md", exp.Format)
	}

	msg = HandleExport(NewContext(nil, nil, nil), []string{"json", "out.json"})()
	exp = msg.(ExportConversationMsg)
	if exp.Format != "json" || exp.Path != "out.json" {
		t.Errorf("got %+v, want json/out.json", exp)
	}
}

func TestCompleter_CommandPrefix(t *testing.T) {
	c := NewCompleter(NewRegistry())

	completions := c.Complete("/e", len("/e"))
	found := false
	for _, comp := range completions {
		if comp.Value == "/export" {
			found = true
		}
	}
	if !found {
		t.Errorf("completions for /e missing /export: %v", completions)
	}

	if got := c.Complete("plain text", 10); got != nil {
		t.Errorf("expected no completions for non-command input, got %v", got)
	}
}

func TestCompleter_ExportFormatArg(t *testing.T) {
	c := NewCompleter(NewRegistry())

	completions := c.Complete("/export m", len("/export m"))
	if len(completions) != 1 || completions[0].Value != "md" {
		t.Errorf("completions for '/export m' = %v, want [md]", completions)
	}
}
