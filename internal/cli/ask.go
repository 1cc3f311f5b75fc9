// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for the scout CLI.
//
// USABILITY: Markdown rendering for better CLI experience
//
// Handles the "scout ask" command which sends one question to the agent and
// prints the reply to stdout.
//
// Examples:
//   scout ask "What does the attention paper claim?"
//   scout ask --plain "List recent diffusion papers" > notes.txt
//   scout ask --url http://10.0.0.5:8000 "Summarize 2304.01234"

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/scout-tui/internal/config"
	"github.com/jeranaias/scout-tui/internal/logging"
	"github.com/jeranaias/scout-tui/internal/model"
	"github.com/jeranaias/scout-tui/internal/scout"
	"github.com/jeranaias/scout-tui/internal/toollog"
	"github.com/jeranaias/scout-tui/internal/ui/styles"
)

// askTimeout bounds a single ask request end to end.
const askTimeout = 5 * time.Minute

// =============================================================================
// STYLES
// =============================================================================

var (
	askToolStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	askErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderMarkdown renders a reply for terminal display. Returns the original
// content unchanged when rendering is unavailable.
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(TerminalWidth()),
	)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// HandleAsk handles the "ask" command: one question, one streamed reply.
// Markdown rendering only happens when stdout is a TTY, so piped output
// stays clean.
func HandleAsk(args *ArgParser) error {
	question := args.Question()
	if question == "" {
		fmt.Fprintln(os.Stderr, "usage: scout ask \"question\"")
		os.Exit(ExitUsageError)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if u := args.Flag("url", "u"); u != "" {
		cfg.Agent.URL = u
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logPath, err := cfg.DebugLogPath()
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.New(cfg.Log.Debug, logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	conv := model.NewConversation()
	tools := toollog.NewLog()
	client := scout.New(cfg.Agent.URL, conv, tools, logger)

	useMarkdown := IsStdoutTTY() && !args.BoolFlag("plain")

	hooks := &scout.Hooks{
		OnToolCall: func(call toollog.ToolCall) {
			// Tool activity goes to stderr so stdout stays pure reply.
			indicator := styles.StatusIndicators.Success
			if !call.Success {
				indicator = styles.StatusIndicators.Error
			}
			fmt.Fprintln(os.Stderr, askToolStyle.Render(
				fmt.Sprintf("%s %s/%s (%dms)", indicator, call.Server, call.Tool, call.Latency.Milliseconds())))
		},
	}
	if !useMarkdown {
		// Plain mode streams tokens as they arrive.
		hooks.OnDelta = func(delta string) {
			fmt.Print(delta)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	if err := client.Send(ctx, question, hooks); err != nil {
		fmt.Fprintln(os.Stderr, askErrorStyle.Render("Error: "+err.Error()))
		os.Exit(ExitGeneralError)
	}

	if useMarkdown {
		fmt.Print(renderMarkdown(lastReply(conv)))
	} else {
		fmt.Println()
	}
	return nil
}

// lastReply returns the content of the final assistant message.
func lastReply(conv *model.Conversation) string {
	snapshot := conv.Snapshot()
	for i := len(snapshot) - 1; i >= 0; i-- {
		if snapshot[i].Role == model.RoleAssistant {
			return snapshot[i].Content
		}
	}
	return ""
}
