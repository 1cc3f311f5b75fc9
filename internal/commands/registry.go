// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/scout-tui/internal/config"
	"github.com/jeranaias/scout-tui/internal/model"
	"github.com/jeranaias/scout-tui/internal/toollog"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a slash command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "/help")
	Name string

	// Aliases are alternative names (e.g., "/h", "/?")
	Aliases []string

	// Description is shown in help and completion
	Description string

	// Usage shows argument syntax (e.g., "/export [format]")
	Usage string

	// Args defines the expected arguments
	Args []ArgDef

	// Handler is the function that executes the command
	Handler func(ctx *Context, args []string) tea.Cmd

	// Hidden commands don't appear in help
	Hidden bool

	// Category for grouping in help display
	Category string
}

// ArgDef defines an argument for a command.
type ArgDef struct {
	// Name of the argument
	Name string

	// Required indicates if the argument must be provided
	Required bool

	// Type determines completion behavior
	Type ArgType

	// Description explains the argument
	Description string

	// Values for enum types
	Values []string
}

// ArgType indicates what kind of completion to provide.
type ArgType int

const (
	ArgTypeString ArgType = iota // Free-form string
	ArgTypeEnum                  // One of predefined values
	ArgTypeFile                  // File path
)

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	return cmds
}

// ByCategory returns visible commands grouped by category.
func (r *Registry) ByCategory() map[string][]*Command {
	result := make(map[string][]*Command)
	for _, cmd := range r.commands {
		if cmd.Hidden {
			continue
		}
		category := cmd.Category
		if category == "" {
			category = "General"
		}
		result[category] = append(result[category], cmd)
	}
	return result
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "Show help and available commands",
		Category:    "Navigation",
		Handler:     HandleHelp,
	})

	r.Register(&Command{
		Name:        "/quit",
		Aliases:     []string{"/q", "/exit"},
		Description: "Exit scout",
		Category:    "Navigation",
		Handler:     HandleQuit,
	})

	r.Register(&Command{
		Name:        "/log",
		Aliases:     []string{"/tools"},
		Description: "Show the full tool call log",
		Category:    "Conversation",
		Handler:     HandleLog,
	})

	r.Register(&Command{
		Name:        "/clear",
		Aliases:     []string{"/c"},
		Description: "Clear conversation history and tool log",
		Category:    "Conversation",
		Handler:     HandleClear,
	})

	r.Register(&Command{
		Name:        "/export",
		Description: "Export conversation to file",
		Usage:       "/export [format] [path]",
		Args: []ArgDef{
			{Name: "format", Required: false, Type: ArgTypeEnum, Values: []string{"md", "json"}, Description: "Export format"},
			{Name: "path", Required: false, Type: ArgTypeFile, Description: "Output file path"},
		},
		Category: "Conversation",
		Handler:  HandleExport,
	})

	r.Register(&Command{
		Name:        "/status",
		Description: "Show agent connection and conversation status",
		Category:    "Settings",
		Handler:     HandleStatus,
	})
}

// =============================================================================
// CONTEXT TYPE
// =============================================================================

// Context provides access to application state for command handlers.
// All fields are optional and may be nil - handlers check before use.
type Context struct {
	// Config provides access to application configuration
	Config *config.Config

	// Conversation is the live conversation state
	Conversation *model.Conversation

	// Tools is the tool call log
	Tools *toollog.Log
}

// NewContext creates a new command context with the given dependencies.
func NewContext(cfg *config.Config, conv *model.Conversation, tools *toollog.Log) *Context {
	return &Context{Config: cfg, Conversation: conv, Tools: tools}
}
