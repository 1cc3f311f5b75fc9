// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the scout CLI.
//
// USABILITY: Markdown rendering and history for better CLI experience
//
// Handles the "scout chat" command which provides a plain-terminal REPL
// against the agent, for environments where the full-screen TUI is
// unwanted (ssh sessions, screen readers, logs).
//
// Interactive commands:
//   /help, /h           Show available commands
//   /log                Show recorded tool calls
//   /clear, /c          Clear conversation history
//   /export [fmt] [path] Save the transcript
//   /quit, /q           Exit chat
//   Ctrl+C              Cancel current reply
//   Ctrl+D              Exit chat

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/scout-tui/internal/commands"
	"github.com/jeranaias/scout-tui/internal/config"
	"github.com/jeranaias/scout-tui/internal/export"
	"github.com/jeranaias/scout-tui/internal/logging"
	"github.com/jeranaias/scout-tui/internal/model"
	"github.com/jeranaias/scout-tui/internal/scout"
	"github.com/jeranaias/scout-tui/internal/toollog"
	"github.com/jeranaias/scout-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	chatPromptStyle = lipgloss.NewStyle().
			Foreground(styles.Teal).
			Bold(true)

	chatInfoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	chatCommandStyle = lipgloss.NewStyle().
				Foreground(styles.Emerald)

	chatWarnStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// historyFileName lives under the scout config directory.
const historyFileName = "chat_history"

// inputReader provides line editing and history for the REPL.
// USABILITY: Supports arrow keys for history navigation.
type inputReader struct {
	line        *liner.State
	historyFile string
}

func newInputReader() *inputReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.Dir()
	if err != nil {
		dir = os.TempDir()
	}

	r := &inputReader{
		line:        line,
		historyFile: filepath.Join(dir, historyFileName),
	}
	r.loadHistory()
	return r
}

func (r *inputReader) loadHistory() {
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads one line, appending non-empty input to history.
func (r *inputReader) ReadInput(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and releases the terminal.
func (r *inputReader) Close() {
	if err := os.MkdirAll(filepath.Dir(r.historyFile), 0700); err == nil {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// replSession holds the state for one interactive chat session.
type replSession struct {
	cfg    *config.Config
	conv   *model.Conversation
	tools  *toollog.Log
	client *scout.Client
	input  *inputReader

	startTime time.Time
	cancelCh  chan context.CancelFunc // 1-slot mailbox holding the active cancel
}

// HandleChat handles the "chat" command. The REPL needs an interactive
// stdin for line editing; piped input should go through `scout ask`.
func HandleChat(args *ArgParser) error {
	if !IsTTY() {
		return errors.New("chat requires an interactive terminal; use `scout ask` for piped input")
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

	s := &replSession{
		cfg:       cfg,
		conv:      conv,
		tools:     tools,
		client:    scout.New(cfg.Agent.URL, conv, tools, logger),
		input:     newInputReader(),
		startTime: time.Now(),
		cancelCh:  make(chan context.CancelFunc, 1),
	}
	defer s.input.Close()

	// Ctrl+C cancels the reply in flight instead of killing the session.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		for range sigChan {
			select {
			case cancel := <-s.cancelCh:
				cancel()
			default:
			}
		}
	}()

	s.printWelcome()
	return s.loop()
}

// =============================================================================
// REPL LOOP
// =============================================================================

func (s *replSession) loop() error {
	for {
		input, err := s.input.ReadInput(chatPromptStyle.Render("you> "))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			// io.EOF from Ctrl+D
			fmt.Println()
			s.printSummary()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if commands.IsCommand(input) {
			if quit := s.handleCommand(input); quit {
				s.printSummary()
				return nil
			}
			continue
		}

		s.sendMessage(input)
	}
}

// sendMessage streams one reply to stdout.
func (s *replSession) sendMessage(text string) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelCh <- cancel

	fmt.Print(chatInfoStyle.Render("scout> "))
	hooks := &scout.Hooks{
		OnDelta: func(delta string) {
			fmt.Print(delta)
		},
		OnToolCall: func(call toollog.ToolCall) {
			indicator := styles.StatusIndicators.Success
			if !call.Success {
				indicator = styles.StatusIndicators.Error
			}
			fmt.Println(chatInfoStyle.Render(
				fmt.Sprintf("%s %s/%s (%dms)", indicator, call.Server, call.Tool, call.Latency.Milliseconds())))
		},
	}

	err := s.client.Send(ctx, text, hooks)

	// Retire the cancel func if the signal handler didn't consume it.
	select {
	case <-s.cancelCh:
	default:
	}
	cancel()

	if err != nil {
		fmt.Println(chatWarnStyle.Render("\n" + model.FailedReplyText))
		return
	}
	fmt.Println()
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleCommand dispatches a slash command. Returns true to exit the REPL.
func (s *replSession) handleCommand(input string) bool {
	parts := strings.Fields(input)
	switch parts[0] {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h", "/?":
		s.printHelp()

	case "/clear", "/c":
		if !s.conv.Clear() {
			fmt.Println(chatWarnStyle.Render("Cannot clear while a reply is streaming."))
			return false
		}
		s.tools.Clear()
		fmt.Println(chatInfoStyle.Render("Conversation cleared."))

	case "/log", "/tools":
		s.printToolLog()

	case "/export":
		format := "md"
		path := ""
		if len(parts) > 1 {
			format = parts[1]
		}
		if len(parts) > 2 {
			path = parts[2]
		}
		s.exportTranscript(format, path)

	default:
		fmt.Println(chatWarnStyle.Render("Unknown command: " + parts[0] + " (try /help)"))
	}
	return false
}

func (s *replSession) exportTranscript(format, path string) {
	exporter, err := export.ForFormat(format)
	if err != nil {
		fmt.Println(chatWarnStyle.Render("Export failed: " + err.Error()))
		return
	}
	transcript := &export.Transcript{
		Messages:   s.conv.Snapshot(),
		ToolCalls:  s.tools.Recent(s.tools.Len()),
		AgentURL:   s.cfg.Agent.URL,
		ExportedAt: time.Now(),
	}
	written, err := export.ExportToFile(transcript, exporter, path)
	if err != nil {
		fmt.Println(chatWarnStyle.Render("Export failed: " + err.Error()))
		return
	}
	fmt.Println(chatInfoStyle.Render("Exported to " + written))
}

// =============================================================================
// OUTPUT
// =============================================================================

func (s *replSession) printWelcome() {
	fmt.Println(chatPromptStyle.Render("scout chat"))
	fmt.Println(chatInfoStyle.Render("agent: " + s.cfg.Agent.URL))
	fmt.Println(chatInfoStyle.Render("Type /help for commands, Ctrl+D to exit."))
	fmt.Println()
}

func (s *replSession) printHelp() {
	rows := []struct{ cmd, desc string }{
		{"/help", "Show this help"},
		{"/log", "Show recorded tool calls"},
		{"/clear", "Clear conversation history"},
		{"/export [md|json] [path]", "Save the transcript"},
		{"/quit", "Exit chat"},
	}
	for _, row := range rows {
		fmt.Printf("  %s %s\n",
			chatCommandStyle.Render(fmt.Sprintf("%-26s", row.cmd)),
			chatInfoStyle.Render(row.desc))
	}
}

func (s *replSession) printToolLog() {
	calls := s.tools.Recent(s.tools.Len())
	if len(calls) == 0 {
		fmt.Println(chatInfoStyle.Render("No tool calls recorded."))
		return
	}
	for _, call := range calls {
		indicator := styles.StatusIndicators.Success
		if !call.Success {
			indicator = styles.StatusIndicators.Error
		}
		fmt.Printf("  %s %s/%s (%dms)\n", indicator, call.Server, call.Tool, call.Latency.Milliseconds())
	}
}

func (s *replSession) printSummary() {
	fmt.Println(chatInfoStyle.Render(fmt.Sprintf(
		"%d messages, %d tool calls, %s elapsed.",
		s.conv.MessageCount(), s.tools.Len(),
		time.Since(s.startTime).Round(time.Second))))
}
