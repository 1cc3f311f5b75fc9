// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/scout-tui/internal/commands"
	"github.com/jeranaias/scout-tui/internal/config"
	"github.com/jeranaias/scout-tui/internal/model"
	"github.com/jeranaias/scout-tui/internal/scout"
	"github.com/jeranaias/scout-tui/internal/toollog"
	"github.com/jeranaias/scout-tui/internal/ui/components"
	"github.com/jeranaias/scout-tui/internal/ui/styles"
)

// =============================================================================
// STATE
// =============================================================================

// State is the request lifecycle as the UI sees it.
type State int

const (
	StateReady State = iota
	StateSending
	StateStreaming
)

// overlay selects which full-screen overlay is shown, if any.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayToolLog
	overlayStatus
)

// eventBufSize bounds the stream event channel. The pump drains one event
// per Update, the buffer absorbs bursts from fast backends.
const eventBufSize = 64

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	state State
	theme *styles.Theme

	cfg     *config.Config
	client  *scout.Client
	conv    *model.Conversation
	tools   *toollog.Log
	version string

	// Components
	viewport  viewport.Model
	input     textinput.Model
	spinner   components.Spinner
	msgList   *components.MessageList
	toolPanel *components.ToolPanel
	statusBar *components.StatusBar
	welcome   *components.Welcome

	// Commands
	registry  *commands.Registry
	parser    *commands.Parser
	completer *commands.Completer
	cmdCtx    *commands.Context

	// Stream pump. events carries hook callbacks into the update loop,
	// cancel aborts the in-flight request.
	events chan tea.Msg
	cancel context.CancelFunc

	// Overlay and transient status
	overlay      overlay
	overlayCalls []toollog.ToolCall
	flash        string
	flashErr     bool

	// Layout
	width  int
	height int
	ready  bool
}

// New creates the chat model.
func New(cfg *config.Config, client *scout.Client, conv *model.Conversation, tools *toollog.Log, version string) Model {
	theme := styles.NewTheme()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about papers..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	registry := commands.NewRegistry()

	m := Model{
		state:     StateReady,
		theme:     theme,
		cfg:       cfg,
		client:    client,
		conv:      conv,
		tools:     tools,
		version:   version,
		viewport:  vp,
		input:     ti,
		spinner:   components.NewThinkingSpinner(),
		msgList:   components.NewMessageList(theme),
		toolPanel: components.NewToolPanel(tools, theme),
		statusBar: components.NewStatusBar(theme),
		welcome:   components.NewWelcome(version, cfg.Agent.URL, theme),
		registry:  registry,
		parser:    commands.NewParser(registry),
		completer: commands.NewCompleter(registry),
		cmdCtx:    commands.NewContext(cfg, conv, tools),
		events:    make(chan tea.Msg, eventBufSize),
	}
	m.statusBar.AgentURL = cfg.Agent.URL
	m.statusBar.ShowShortcuts = true
	m.msgList.ShowTimestamps = cfg.UI.ShowTimestamps
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Streaming reports whether a request is in flight.
func (m Model) Streaming() bool {
	return m.state != StateReady
}
