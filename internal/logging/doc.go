// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

// Package logging provides the zerolog-based logging layer and the sinks the
// execution-time interceptor writes to.
//
// # Overview
//
// The package provides:
//   - A global zerolog logger with JSON output for production
//   - Console output for development
//   - Sinks that route interceptor messages to zerolog or log/slog
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "debug",
//	    Format: "json",
//	})
//
//	reg := exectime.NewRegistry("github.com/acme/")
//	ic := exectime.New(logging.GlobalSink(), reg)
//
// # Configuration
//
// Environment variables are read by the config package:
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// # Sinks
//
// NewSink binds a sink to one zerolog.Logger. GlobalSink looks up the global
// logger on every write, so Init and SetLogger apply to interceptors that were
// created before them. NewSlogSink writes to a *slog.Logger; trace messages
// use LevelTrace.
//
// The level an interceptor message is written at is the marker's level; the
// global zerolog level still filters it. A marker at debug produces no output
// while the logger is at info.
//
// # Testing
//
//	var buf bytes.Buffer
//	sink := logging.NewSink(logging.NewTestLogger(&buf))
package logging
