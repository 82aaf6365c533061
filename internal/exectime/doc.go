// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

// Package exectime logs method entry, exit and execution time for marked
// call sites without the marked code calling a logging API.
//
// # Overview
//
// A Marker carries one option, the Level. Markers are attached by explicit
// registration in a Registry, either to a whole type or to a single method.
// An Interceptor wraps functions whose call site resolves to a marker:
//
//	Entering method - Total of Invoice
//	Entering method - Total of Invoice: Total time taken - 42 MILLISECONDS
//
// Both lines are written at the marker's level through the Sink.
//
// # Quick Start
//
//	reg := exectime.NewRegistry("github.com/acme/")
//	_ = exectime.MarkType[billing.Invoice](reg, exectime.Marker{})                      // INFO
//	_ = exectime.MarkMethod[billing.Invoice](reg, "Void", exectime.Marker{Level: exectime.LevelWarn})
//
//	ic := exectime.New(logging.GlobalSink(), reg)
//
//	total := exectime.Decorate(ic, inv.Total)
//	sum, err := total()
//
// # Matching
//
// Each call site resolves to at most one marker, once, when it is wrapped:
//
//  1. A method-level marker for the exact type and method wins.
//  2. Otherwise a type-level marker applies if the qualified type name lies
//     under one of the registry's namespace prefixes (any namespace when no
//     prefix is configured).
//
// Unmatched call sites are returned unwrapped.
//
// # Failure Policy
//
// Failures of the logging scaffolding (an unresolvable signature, a level
// outside the routing table) are logged as a warning beginning with
// WarningMessage. The call then runs untimed and its results reach the
// caller. Errors returned by the wrapped call are propagated unchanged and no
// exit line is written; panics propagate after the stopwatch is stopped.
//
// WithSuppressErrors(true) selects the legacy policy: any failure, including
// the wrapped call's own error or panic, is logged as a warning and the caller
// receives zero values and a nil error. A scaffolding failure then skips the
// wrapped call entirely.
//
// # Thread Safety
//
// The severity routing table is built in New and never modified. Each call
// owns its stopwatch. Registry guards its markers with a sync.RWMutex.
package exectime
