// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/scout-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN
// =============================================================================

const logo = `
                  _
 ___ __ ___ _  _| |_
(_-</ _/ _ \ || |  _|
/__/\__\___/\_,_|\__|`

// Welcome is the empty-conversation screen.
type Welcome struct {
	Version  string
	AgentURL string
	Width    int
	Height   int
	theme    *styles.Theme
}

// NewWelcome creates the welcome screen component.
func NewWelcome(version, agentURL string, theme *styles.Theme) *Welcome {
	return &Welcome{
		Version:  version,
		AgentURL: agentURL,
		Width:    80,
		Height:   24,
		theme:    theme,
	}
}

// SetSize sets the available area.
func (w *Welcome) SetSize(width, height int) {
	w.Width = width
	w.Height = height
}

// View renders the welcome box centered in the available area.
func (w *Welcome) View() string {
	var sb strings.Builder

	sb.WriteString(w.theme.WelcomeLogo.Render(strings.TrimPrefix(logo, "\n")))
	sb.WriteString("\n")
	sb.WriteString(w.theme.WelcomeInfo.Render("paper scout terminal " + w.Version))
	sb.WriteString("\n\n")
	sb.WriteString(w.theme.WelcomeInfo.Render("Ask me to search the literature or summarize a PDF."))
	sb.WriteString("\n\n")
	sb.WriteString(w.theme.WelcomeKey.Render("enter") + w.theme.WelcomeInfo.Render(" send  "))
	sb.WriteString(w.theme.WelcomeKey.Render("/help") + w.theme.WelcomeInfo.Render(" commands  "))
	sb.WriteString(w.theme.WelcomeKey.Render("esc") + w.theme.WelcomeInfo.Render(" quit"))
	if w.AgentURL != "" {
		sb.WriteString("\n\n")
		sb.WriteString(w.theme.ShortcutDesc.Render("agent: " + w.AgentURL))
	}

	box := w.theme.WelcomeBox.Render(sb.String())

	return lipgloss.Place(w.Width, w.Height, lipgloss.Center, lipgloss.Center, box)
}
