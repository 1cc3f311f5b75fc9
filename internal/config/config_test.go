// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for scout.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Agent.URL != Default().Agent.URL {
		t.Errorf("Agent.URL = %q, want default %q", cfg.Agent.URL, Default().Agent.URL)
	}
	if cfg.UI.ToolLogSize != 5 {
		t.Errorf("UI.ToolLogSize = %d, want 5", cfg.UI.ToolLogSize)
	}
}

func TestLoadFromPath_ParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[agent]
url = "http://10.0.0.7:9000"

[ui]
show_timestamps = false
tool_log_size = 10

[log]
debug = true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Agent.URL != "http://10.0.0.7:9000" {
		t.Errorf("Agent.URL = %q", cfg.Agent.URL)
	}
	if cfg.UI.ShowTimestamps {
		t.Error("ShowTimestamps should be false")
	}
	if cfg.UI.ToolLogSize != 10 {
		t.Errorf("ToolLogSize = %d, want 10", cfg.UI.ToolLogSize)
	}
	if !cfg.Log.Debug {
		t.Error("Log.Debug should be true")
	}
}

func TestLoadFromPath_EnvOverride(t *testing.T) {
	t.Setenv("SCOUT_AGENT_URL", "http://override:8123")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Agent.URL != "http://override:8123" {
		t.Errorf("Agent.URL = %q, want env override", cfg.Agent.URL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "valid http", url: "http://127.0.0.1:8000"},
		{name: "valid https", url: "https://scout.example.com"},
		{name: "bad scheme", url: "ftp://example.com", wantErr: true},
		{name: "missing host", url: "http://", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Agent.URL = tc.url
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Errorf("Validate(%q) should fail", tc.url)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Validate(%q): %v", tc.url, err)
			}
		})
	}
}

func TestLoadFromPath_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[agent\nurl = "), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Error("malformed TOML should fail to load")
	}
}
