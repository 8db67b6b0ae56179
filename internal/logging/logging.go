// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the run-wide slog logger: a rotating file sink at
// the configured level plus a console sink at warn and above. The logger is
// constructed once at startup and closed at shutdown; nothing in this
// module touches slog's global default.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options carries the logging.* configuration keys.
type Options struct {
	Level       string // DEBUG, INFO, WARNING, or ERROR
	File        string
	MaxBytes    int
	BackupCount int
}

// Setup creates the logger. The parent directory of the log file is created
// if absent. The returned close func flushes and closes the file sink.
func Setup(opts Options) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	if dir := filepath.Dir(opts.File); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory %s: %w", dir, err)
		}
	}

	maxMB := opts.MaxBytes / (1024 * 1024)
	if maxMB < 1 {
		maxMB = 1
	}
	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    maxMB,
		MaxBackups: opts.BackupCount,
	}

	handler := fanout{
		slog.NewTextHandler(rotator, &slog.HandlerOptions{Level: level}),
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}
	return slog.New(handler), rotator.Close, nil
}

// ParseLevel maps a level name to a slog level. The Python-style WARNING
// spelling is accepted alongside WARN; an empty name means INFO.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARNING", "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// fanout dispatches each record to every handler enabled for its level.
// The sinks run at different levels, so enablement is checked per handler.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}
