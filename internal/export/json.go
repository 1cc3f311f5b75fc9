// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter renders transcripts to JSON.
// NOTE: JSON exports always include the complete transcript so the output is
// a faithful representation that can be re-processed by other tools.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a transcript to indented JSON.
func (e *JSONExporter) Export(t *Transcript) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("transcript is nil")
	}
	return json.MarshalIndent(t, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
