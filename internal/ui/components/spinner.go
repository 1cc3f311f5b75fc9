// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/scout-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is a loading spinner with a message and an elapsed timer. Frames
// are ASCII for maximum terminal compatibility.
type Spinner struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	isActive  bool
	showTimer bool
}

// NewSpinner creates a new spinner with default ASCII-compatible settings.
func NewSpinner() Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	return Spinner{
		spinner:   s,
		message:   "Working",
		showTimer: true,
	}
}

// NewThinkingSpinner creates a spinner for the waiting-on-agent state.
func NewThinkingSpinner() Spinner {
	s := NewSpinner()
	s.message = "Scout is thinking"
	return s
}

// SetMessage sets the text displayed next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// Start activates the spinner and records the start time.
func (s *Spinner) Start() tea.Cmd {
	s.isActive = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive returns whether the spinner is currently running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// Update handles messages for the spinner.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}

	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner.
func (s Spinner) View() string {
	if !s.isActive {
		return ""
	}

	spinnerView := lipgloss.NewStyle().
		Foreground(styles.Violet).
		Render(s.spinner.View())

	messageView := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(s.message)

	dotsView := lipgloss.NewStyle().
		Foreground(styles.Violet).
		Render("...")

	result := spinnerView + " " + messageView + dotsView

	if s.showTimer && !s.startTime.IsZero() {
		timerView := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Render(" (" + formatElapsed(time.Since(s.startTime)) + ")")
		result += timerView
	}

	return result
}

// formatElapsed formats a duration for display.
func formatElapsed(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 60 {
		return strconv.Itoa(seconds) + "s"
	}
	return strconv.Itoa(seconds/60) + "m " + strconv.Itoa(seconds%60) + "s"
}
