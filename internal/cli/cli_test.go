// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/jeranaias/scout-tui/internal/config"
)

// =============================================================================
// ARG PARSER
// =============================================================================

func TestArgParser_Flags(t *testing.T) {
	p := NewArgParser([]string{"--url", "http://localhost:9999", "--plain", "what", "is", "new"})

	if got := p.Flag("url"); got != "http://localhost:9999" {
		t.Errorf("Flag(url) = %q", got)
	}
	if !p.BoolFlag("plain") {
		t.Error("BoolFlag(plain) = false, want true")
	}
	if got := p.Question(); got != "what is new" {
		t.Errorf("Question() = %q", got)
	}
}

func TestArgParser_BoolFlagDoesNotSwallowQuestion(t *testing.T) {
	p := NewArgParser([]string{"--plain", "List recent diffusion papers"})

	if !p.BoolFlag("plain") {
		t.Error("BoolFlag(plain) = false, want true")
	}
	if got := p.Question(); got != "List recent diffusion papers" {
		t.Errorf("Question() = %q", got)
	}
}

func TestArgParser_EqualsForm(t *testing.T) {
	p := NewArgParser([]string{"--pace=12.5", "--plain=true", "--addr=:9000"})

	if got := p.FloatFlag(40, "pace"); got != 12.5 {
		t.Errorf("FloatFlag(pace) = %v", got)
	}
	if !p.BoolFlag("plain") {
		t.Error("explicit --plain=true not recognized")
	}
	if got := p.Flag("addr"); got != ":9000" {
		t.Errorf("Flag(addr) = %q", got)
	}
}

func TestArgParser_ShortFlagAliases(t *testing.T) {
	p := NewArgParser([]string{"-u", "http://agent:8000"})

	if got := p.Flag("url", "u"); got != "http://agent:8000" {
		t.Errorf("Flag(url, u) = %q", got)
	}
}

func TestArgParser_FloatFallback(t *testing.T) {
	p := NewArgParser([]string{"--pace", "fast"})

	if got := p.FloatFlag(40, "pace"); got != 40 {
		t.Errorf("unparseable pace should fall back, got %v", got)
	}
}

// =============================================================================
// COMMAND ROUTING
// =============================================================================

func TestParse_Routing(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"no args launches TUI", []string{"scout"}, CmdTUI},
		{"explicit tui", []string{"scout", "tui"}, CmdTUI},
		{"ask", []string{"scout", "ask", "what is attention"}, CmdAsk},
		{"chat", []string{"scout", "chat"}, CmdChat},
		{"serve", []string{"scout", "serve", "--addr", ":9000"}, CmdServe},
		{"config", []string{"scout", "config", "init"}, CmdConfig},
		{"version word", []string{"scout", "version"}, CmdVersion},
		{"version flag", []string{"scout", "--version"}, CmdVersion},
		{"help", []string{"scout", "help"}, CmdHelp},
		{"bare question falls through to ask", []string{"scout", "what papers cover RLHF?"}, CmdAsk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			os.Args = tt.argv
			defer func() { os.Args = oldArgs }()

			cmd, _ := Parse()
			if cmd != tt.want {
				t.Errorf("Parse() = %v, want %v", cmd, tt.want)
			}
		})
	}
}

// =============================================================================
// CONFIG COMMAND
// =============================================================================

func TestHandleConfig_InitWritesDefaultFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := HandleConfig(NewArgParser([]string{"init"})); err != nil {
		t.Fatalf("init: %v", err)
	}

	path, err := config.Path()
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written config: %v", err)
	}
	if !strings.Contains(string(data), "http://127.0.0.1:8000") {
		t.Error("written config missing default agent url")
	}

	// A second init refuses to clobber without --force.
	if err := HandleConfig(NewArgParser([]string{"init"})); err == nil {
		t.Error("expected error re-initializing existing config")
	}
	if err := HandleConfig(NewArgParser([]string{"init", "--force"})); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

// =============================================================================
// CHAT TTY GUARD
// =============================================================================

func TestHandleChat_RequiresTTY(t *testing.T) {
	// Test stdin is never a terminal, so the guard must trip first.
	if err := HandleChat(NewArgParser(nil)); err == nil {
		t.Error("expected an error when stdin is not a terminal")
	}
}

func TestParse_BareQuestionKeepsWords(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"scout", "what", "papers", "cover", "RLHF"}
	defer func() { os.Args = oldArgs }()

	cmd, args := Parse()
	if cmd != CmdAsk {
		t.Fatalf("Parse() = %v, want CmdAsk", cmd)
	}
	if got := args.Question(); got != "what papers cover RLHF" {
		t.Errorf("Question() = %q", got)
	}
}
