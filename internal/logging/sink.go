// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

package logging

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/exectime/internal/exectime"
)

// ZerologSink writes interceptor messages to a zerolog.Logger.
//
// Usage:
//
//	ic := exectime.New(logging.NewSink(logger), reg)
type ZerologSink struct {
	logger zerolog.Logger
}

// NewSink creates a sink backed by the given logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSink(logger zerolog.Logger) *ZerologSink {
	return &ZerologSink{logger: logger}
}

// Trace writes msg at trace level.
func (s *ZerologSink) Trace(msg string) { s.logger.Trace().Msg(msg) }

// Debug writes msg at debug level.
func (s *ZerologSink) Debug(msg string) { s.logger.Debug().Msg(msg) }

// Info writes msg at info level.
func (s *ZerologSink) Info(msg string) { s.logger.Info().Msg(msg) }

// Warn writes msg at warn level.
func (s *ZerologSink) Warn(msg string) { s.logger.Warn().Msg(msg) }

// Error writes msg at error level.
func (s *ZerologSink) Error(msg string) { s.logger.Error().Msg(msg) }

// WarnErr writes msg at warn level with err in the error field.
func (s *ZerologSink) WarnErr(msg string, err error) {
	s.logger.Warn().Err(err).Msg(msg)
}

// globalSink resolves the global logger on every write so that
// SetLogger and Init take effect for interceptors built earlier.
type globalSink struct{}

// GlobalSink returns a sink that writes through the package-level logger.
func GlobalSink() exectime.Sink {
	return globalSink{}
}

func (globalSink) Trace(msg string) { Trace().Msg(msg) }
func (globalSink) Debug(msg string) { Debug().Msg(msg) }
func (globalSink) Info(msg string)  { Info().Msg(msg) }
func (globalSink) Warn(msg string)  { Warn().Msg(msg) }
func (globalSink) Error(msg string) { Error().Msg(msg) }

func (globalSink) WarnErr(msg string, err error) {
	Warn().Err(err).Msg(msg)
}

// ZerologLevel maps an interceptor severity to the zerolog level it is
// written at. Unset resolves to info; unknown values map to NoLevel.
func ZerologLevel(level exectime.Level) zerolog.Level {
	switch level {
	case exectime.LevelTrace:
		return zerolog.TraceLevel
	case exectime.LevelDebug:
		return zerolog.DebugLevel
	case 0, exectime.LevelInfo:
		return zerolog.InfoLevel
	case exectime.LevelWarn:
		return zerolog.WarnLevel
	case exectime.LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.NoLevel
	}
}

var (
	_ exectime.Sink      = (*ZerologSink)(nil)
	_ exectime.ErrWarner = (*ZerologSink)(nil)
	_ exectime.ErrWarner = globalSink{}
)
