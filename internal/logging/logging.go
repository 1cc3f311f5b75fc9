// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the structured debug logger for scout.
//
// The TUI owns the terminal, so diagnostics go to a JSON log file instead of
// stdout. Logging is off by default; New returns a no-op logger unless debug
// is enabled.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New opens the debug log at path and returns a logger writing to it.
// When debug is false a no-op logger is returned and no file is touched.
// The returned close function flushes buffered entries; it is safe to call
// on the no-op logger.
func New(debug bool, path string) (*zap.Logger, func(), error) {
	if !debug {
		return zap.NewNop(), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(f),
		zapcore.DebugLevel,
	)

	logger := zap.New(core)
	closeFn := func() {
		logger.Sync()
		f.Close()
	}
	return logger, closeFn, nil
}
