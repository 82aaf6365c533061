// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

package exectime

import "fmt"

// Sink is the external logging facility. Each operation writes one formatted
// text message at its severity; destinations and encoding are the sink's concern.
type Sink interface {
	Trace(msg string)
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// ErrWarner is implemented by sinks that can attach an error to a warning
// natively. Sinks without it receive the message, a space and the error
// text through Warn.
type ErrWarner interface {
	WarnErr(msg string, err error)
}

// SinkFuncs adapts plain functions to Sink. Nil fields discard the message.
type SinkFuncs struct {
	TraceFunc func(msg string)
	DebugFunc func(msg string)
	InfoFunc  func(msg string)
	WarnFunc  func(msg string)
	ErrorFunc func(msg string)
}

func (s SinkFuncs) Trace(msg string) { call(s.TraceFunc, msg) }
func (s SinkFuncs) Debug(msg string) { call(s.DebugFunc, msg) }
func (s SinkFuncs) Info(msg string)  { call(s.InfoFunc, msg) }
func (s SinkFuncs) Warn(msg string)  { call(s.WarnFunc, msg) }
func (s SinkFuncs) Error(msg string) { call(s.ErrorFunc, msg) }

func call(fn func(string), msg string) {
	if fn != nil {
		fn(msg)
	}
}

// logFunc writes one message at a fixed severity.
type logFunc func(msg string)

// routingTable maps each severity to its sink operation. It is built once
// per Interceptor and never modified afterwards.
type routingTable map[Level]logFunc

func newRoutingTable(s Sink) routingTable {
	return routingTable{
		LevelTrace: s.Trace,
		LevelDebug: s.Debug,
		LevelInfo:  s.Info,
		LevelWarn:  s.Warn,
		LevelError: s.Error,
	}
}

// lookup returns the sink operation for lvl.
func (rt routingTable) lookup(lvl Level) (logFunc, error) {
	fn, ok := rt[lvl]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnmappedLevel, lvl)
	}
	return fn, nil
}

// discardSink drops every message. It backs Interceptors created without a sink.
type discardSink struct{}

func (discardSink) Trace(string) {}
func (discardSink) Debug(string) {}
func (discardSink) Info(string)  {}
func (discardSink) Warn(string)  {}
func (discardSink) Error(string) {}
