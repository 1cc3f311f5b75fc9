// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewTheme_InitializesStyles(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// A zero-value style renders input unchanged; configured styles carry
	// at least some property. Spot-check a few that the views depend on.
	if !theme.UserLabel.GetBold() {
		t.Error("UserLabel should be bold")
	}
	if !theme.HeaderTitle.GetBold() {
		t.Error("HeaderTitle should be bold")
	}
	if !theme.AssistantBody.GetBorderLeft() {
		t.Error("AssistantBody should have a left border")
	}
}

func TestTheme_LayoutModes(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("GetLayoutMode() at width %d = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestStatusIndicators_AreASCII(t *testing.T) {
	for _, s := range []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
		StatusIndicators.Pending,
	} {
		for _, r := range s {
			if r > 127 {
				t.Errorf("indicator %q contains non-ASCII rune %q", s, r)
			}
		}
	}
}

func TestRenderStatus(t *testing.T) {
	ok := RenderStatus(true, "search_papers")
	if !strings.Contains(ok, "[OK]") || !strings.Contains(ok, "search_papers") {
		t.Errorf("RenderStatus(true) = %q", ok)
	}
	failed := RenderStatus(false, "summarize_pdf")
	if !strings.Contains(failed, "[X]") {
		t.Errorf("RenderStatus(false) = %q", failed)
	}
}
