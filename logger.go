// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards all records. Enabled returns
// false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for ggui and all its backends.
// By default nothing is logged. Pass nil to restore the silent default.
//
// SetLogger is safe for concurrent use.
//
// Log levels used by ggui:
//   - [slog.LevelDebug]: frame diagnostics (dirty regions, surface formats)
//   - [slog.LevelInfo]: lifecycle events (platform installed, adapter released)
//   - [slog.LevelWarn]: non-fatal host issues (failed release, dropped frame)
//
// Example:
//
//	ggui.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Backend packages call it to share the
// same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
