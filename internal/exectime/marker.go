// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

package exectime

import (
	"fmt"
	"strings"
)

// Marker requests execution-time logging for a type or a method.
// The zero Marker logs at DefaultLevel.
type Marker struct {
	Level Level
}

// EffectiveLevel returns the marker level, or DefaultLevel when unset.
func (m Marker) EffectiveLevel() Level {
	return m.Level.orDefault()
}

// Target is one explicit registration: a marker attached to a type, or to a
// single method of that type when Method is set.
type Target struct {
	// Type is the fully-qualified declaring type, e.g.
	// "github.com/acme/billing.Invoice", or an import path to cover the
	// package-level functions of that package.
	Type string

	// Method restricts the marker to one method. Empty marks the whole type.
	Method string

	// Level is the marker level. Unset means DefaultLevel.
	Level Level
}

// Validate checks that the target names a type and carries a routable level.
func (t Target) Validate() error {
	if strings.TrimSpace(t.Type) == "" {
		return fmt.Errorf("%w: type is required", ErrInvalidTarget)
	}
	if lvl := t.Level.orDefault(); !lvl.Valid() {
		return fmt.Errorf("%w: %s has level %s", ErrInvalidTarget, t, lvl)
	}
	return nil
}

// String returns "Type" or "Type.Method".
func (t Target) String() string {
	if t.Method == "" {
		return t.Type
	}
	return t.Type + "." + t.Method
}
