// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

package logging

import (
	"context"
	"log/slog"

	"github.com/tomtom215/exectime/internal/exectime"
)

// LevelTrace is the slog level used for trace messages.
// slog has no trace level; -8 sits one step below slog.LevelDebug.
const LevelTrace = slog.Level(-8)

// SlogSink writes interceptor messages to a *slog.Logger.
// This lets applications that standardise on log/slog use the interceptor
// without going through zerolog.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a sink backed by logger. A nil logger uses slog.Default().
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

func (s *SlogSink) log(level slog.Level, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// Trace writes msg at LevelTrace.
func (s *SlogSink) Trace(msg string) { s.log(LevelTrace, msg) }

// Debug writes msg at slog.LevelDebug.
func (s *SlogSink) Debug(msg string) { s.log(slog.LevelDebug, msg) }

// Info writes msg at slog.LevelInfo.
func (s *SlogSink) Info(msg string) { s.log(slog.LevelInfo, msg) }

// Warn writes msg at slog.LevelWarn.
func (s *SlogSink) Warn(msg string) { s.log(slog.LevelWarn, msg) }

// Error writes msg at slog.LevelError.
func (s *SlogSink) Error(msg string) { s.log(slog.LevelError, msg) }

// WarnErr writes msg at slog.LevelWarn with an "error" attribute.
func (s *SlogSink) WarnErr(msg string, err error) {
	s.log(slog.LevelWarn, msg, slog.Any("error", err))
}

var _ exectime.ErrWarner = (*SlogSink)(nil)
