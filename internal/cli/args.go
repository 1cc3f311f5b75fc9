// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strconv"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// boolFlagNames are flags that never take a value. Without this set a bare
// boolean flag would swallow the following positional as its value
// (`scout ask --plain "question"` must keep the question intact).
var boolFlagNames = map[string]bool{
	"plain":   true,
	"debug":   true,
	"force":   true,
	"help":    true,
	"version": true,
}

// ArgParser provides unified argument parsing for CLI commands. It handles
// multiple flag formats consistently:
//   - Long flags: --flag value or --flag=value
//   - Short flags: -f value
//   - Boolean flags: --flag (no value needed)
//   - Positional arguments: arguments without flags
type ArgParser struct {
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
	raw        []string
}

// NewArgParser creates a new argument parser from raw arguments.
func NewArgParser(raw []string) *ArgParser {
	parser := &ArgParser{
		flags:      make(map[string]string),
		boolFlags:  make(map[string]bool),
		positional: make([]string, 0),
		raw:        raw,
	}

	i := 0
	for i < len(raw) {
		arg := raw[i]

		if !strings.HasPrefix(arg, "-") {
			parser.positional = append(parser.positional, arg)
			i++
			continue
		}

		// --flag=value form
		if strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			name := strings.TrimLeft(parts[0], "-")
			value := parts[1]
			if value == "true" || value == "false" {
				parser.boolFlags[name] = value == "true"
			} else {
				parser.flags[name] = value
			}
			i++
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if !boolFlagNames[name] && i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") {
			parser.flags[name] = raw[i+1]
			i += 2
		} else {
			parser.boolFlags[name] = true
			i++
		}
	}

	return parser
}

// Flag returns the value of a string flag, checking each given name in order.
func (p *ArgParser) Flag(names ...string) string {
	for _, name := range names {
		if v, ok := p.flags[name]; ok {
			return v
		}
	}
	return ""
}

// BoolFlag returns true if any of the given boolean flags was set.
func (p *ArgParser) BoolFlag(names ...string) bool {
	for _, name := range names {
		if p.boolFlags[name] {
			return true
		}
	}
	return false
}

// FloatFlag returns the value of a numeric flag, or fallback when the flag
// is absent or unparseable.
func (p *ArgParser) FloatFlag(fallback float64, names ...string) float64 {
	raw := p.Flag(names...)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

// Positional returns all positional arguments.
func (p *ArgParser) Positional() []string {
	return p.positional
}

// Question joins the positional arguments into a single prompt string.
func (p *ArgParser) Question() string {
	return strings.TrimSpace(strings.Join(p.positional, " "))
}
