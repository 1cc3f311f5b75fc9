// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// =============================================================================
// COMPLETION TYPE
// =============================================================================

// Completion represents a completion suggestion.
type Completion struct {
	// Value to insert
	Value string

	// Display text (may include formatting)
	Display string

	// Description shown alongside
	Description string

	// Score for ranking (higher = better match)
	Score int
}

// =============================================================================
// COMPLETER
// =============================================================================

// Completer handles tab completion for commands and arguments.
type Completer struct {
	registry *Registry
}

// NewCompleter creates a new completer with the given registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns completions for the given input at the cursor position.
func (c *Completer) Complete(input string, cursorPos int) []Completion {
	if cursorPos < len(input) {
		input = input[:cursorPos]
	}

	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") {
		return nil
	}

	parts := splitCommandLine(trimmed)
	if len(parts) == 0 {
		return c.completeCommands("")
	}

	// Still typing the command name?
	if len(parts) == 1 && !strings.HasSuffix(input, " ") {
		return c.completeCommands(parts[0])
	}

	cmd := c.registry.Get(parts[0])
	if cmd == nil {
		return nil
	}

	argIndex := len(parts) - 2
	if strings.HasSuffix(input, " ") {
		argIndex++
	}

	partial := ""
	if !strings.HasSuffix(input, " ") && len(parts) > 1 {
		partial = parts[len(parts)-1]
	}

	return c.completeArg(cmd, argIndex, partial)
}

// =============================================================================
// COMMAND COMPLETION
// =============================================================================

func (c *Completer) completeCommands(partial string) []Completion {
	var completions []Completion

	partial = strings.ToLower(partial)

	for _, cmd := range c.registry.All() {
		if cmd.Hidden {
			continue
		}

		if strings.HasPrefix(strings.ToLower(cmd.Name), partial) {
			completions = append(completions, Completion{
				Value:       cmd.Name,
				Display:     cmd.Name,
				Description: cmd.Description,
				Score:       calculateScore(cmd.Name, partial),
			})
		}

		for _, alias := range cmd.Aliases {
			if strings.HasPrefix(strings.ToLower(alias), partial) {
				completions = append(completions, Completion{
					Value:       alias,
					Display:     alias + " -> " + cmd.Name,
					Description: cmd.Description,
					Score:       calculateScore(alias, partial) - 10,
				})
			}
		}
	}

	sortCompletions(completions)
	return completions
}

// =============================================================================
// ARGUMENT COMPLETION
// =============================================================================

func (c *Completer) completeArg(cmd *Command, argIndex int, partial string) []Completion {
	if argIndex < 0 || argIndex >= len(cmd.Args) {
		return nil
	}

	switch cmd.Args[argIndex].Type {
	case ArgTypeEnum:
		return c.completeFromList(cmd.Args[argIndex].Values, partial)
	case ArgTypeFile:
		return c.completeFiles(partial)
	default:
		return nil
	}
}

func (c *Completer) completeFromList(values []string, partial string) []Completion {
	var completions []Completion

	partial = strings.ToLower(partial)

	for _, value := range values {
		if strings.HasPrefix(strings.ToLower(value), partial) {
			completions = append(completions, Completion{
				Value:   value,
				Display: value,
				Score:   calculateScore(value, partial),
			})
		}
	}

	sortCompletions(completions)
	return completions
}

// completeFiles provides basic file path completion.
func (c *Completer) completeFiles(partial string) []Completion {
	var completions []Completion

	if partial == "" {
		partial = "."
	}

	dir := filepath.Dir(partial)
	prefix := filepath.Base(partial)
	if strings.HasSuffix(partial, string(os.PathSeparator)) {
		dir = partial
		prefix = ""
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	prefix = strings.ToLower(prefix)

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(strings.ToLower(name), prefix) {
			continue
		}
		// Skip hidden files unless the partial asks for them.
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}

		path := filepath.Join(dir, name)
		score := calculateScore(name, prefix)
		if entry.IsDir() {
			path += string(os.PathSeparator)
			score += 5
		}

		completions = append(completions, Completion{
			Value:   path,
			Display: name,
			Score:   score,
		})
	}

	sortCompletions(completions)

	if len(completions) > 20 {
		completions = completions[:20]
	}
	return completions
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// calculateScore calculates a match score for completion ranking.
// Higher score = better match.
func calculateScore(value, partial string) int {
	value = strings.ToLower(value)
	partial = strings.ToLower(partial)

	score := 100

	if value == partial {
		return score + 100
	}

	if strings.HasPrefix(value, partial) {
		score += 50
		score += 20 - len(value)
	}

	score -= len(value) / 2

	return score
}

func sortCompletions(completions []Completion) {
	sort.Slice(completions, func(i, j int) bool {
		if completions[i].Score != completions[j].Score {
			return completions[i].Score > completions[j].Score
		}
		return completions[i].Value < completions[j].Value
	})
}
