// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

package exectime

import "errors"

var (
	// ErrUnresolvableSignature is returned when the method name or declaring
	// type of a call site cannot be determined.
	ErrUnresolvableSignature = errors.New("unresolvable method signature")

	// ErrUnmappedLevel is returned when a marker's level has no entry in the
	// severity routing table.
	ErrUnmappedLevel = errors.New("level has no sink mapping")

	// ErrUnknownLevel is returned when a level name cannot be parsed.
	ErrUnknownLevel = errors.New("unknown level")

	// ErrInvalidTarget is returned when a registration target is malformed.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrNilFunc is returned when a nil function is wrapped.
	ErrNilFunc = errors.New("function is nil")
)

// ErrPanic wraps a value recovered from a panicking wrapped call when errors
// are suppressed.
var ErrPanic = errors.New("wrapped call panicked")
