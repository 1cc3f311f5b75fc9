// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for scout.
//
// Configuration is read from ~/.scout/config.toml with built-in defaults
// and a small set of environment overrides. Missing files are not an error;
// defaults apply.
package config
