// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

package exectime

import (
	"fmt"
	"strings"
)

// Level is the severity at which a marked call logs its entry and exit lines.
// The zero value is unset and resolves to LevelInfo.
type Level uint8

const (
	levelUnset Level = iota

	// LevelTrace routes to the sink's Trace operation.
	LevelTrace

	// LevelDebug routes to the sink's Debug operation.
	LevelDebug

	// LevelInfo routes to the sink's Info operation. It is the default.
	LevelInfo

	// LevelWarn routes to the sink's Warn operation.
	LevelWarn

	// LevelError routes to the sink's Error operation.
	LevelError
)

// DefaultLevel is applied when a marker does not name a level.
const DefaultLevel = LevelInfo

// Levels lists the five routable severities.
func Levels() []Level {
	return []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}
}

// String returns the upper-case name of the level.
func (l Level) String() string {
	switch l {
	case levelUnset:
		return "UNSET"
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", uint8(l))
	}
}

// Valid reports whether l is one of the five routable severities.
func (l Level) Valid() bool {
	return l >= LevelTrace && l <= LevelError
}

// orDefault resolves an unset level to DefaultLevel. Unknown values are kept
// so the routing lookup can report them.
func (l Level) orDefault() Level {
	if l == levelUnset {
		return DefaultLevel
	}
	return l
}

// ParseLevel converts a level name to a Level. Matching is case-insensitive
// and "warning" is accepted for LevelWarn. An empty string yields DefaultLevel.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultLevel, nil
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return levelUnset, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, l)
	}
	return []byte(strings.ToLower(l.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
