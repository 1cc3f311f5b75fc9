// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// serve.go - Local mock agent command handler.
//
// Handles the "scout serve" command which runs a canned-reply agent backend
// for demos and offline development. Point the client at it with
// SCOUT_AGENT_URL=http://127.0.0.1:8701.

package cli

import (
	"fmt"

	"github.com/jeranaias/scout-tui/internal/config"
	"github.com/jeranaias/scout-tui/internal/logging"
	"github.com/jeranaias/scout-tui/internal/mockagent"
)

// defaultServeAddr is the default mock agent listen address.
const defaultServeAddr = ":8701"

// HandleServe handles the "serve" command.
func HandleServe(args *ArgParser) error {
	addr := args.Flag("addr", "a")
	if addr == "" {
		addr = defaultServeAddr
	}
	pace := args.FloatFlag(mockagent.DefaultTokensPerSec, "pace", "p")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logPath, err := cfg.DebugLogPath()
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.New(cfg.Log.Debug, logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	fmt.Printf("mock agent listening on %s (%.0f tokens/sec)\n", addr, pace)
	return mockagent.New(pace, logger).ListenAndServe(addr)
}
