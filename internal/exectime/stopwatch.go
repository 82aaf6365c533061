// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

package exectime

import "time"

// stopwatch measures one intercepted call. It is owned by that call and never
// shared, so it needs no locking.
type stopwatch struct {
	now     func() time.Time
	start   time.Time
	elapsed time.Duration
	running bool
}

func startStopwatch(now func() time.Time) *stopwatch {
	return &stopwatch{now: now, start: now(), running: true}
}

// Elapsed returns the time measured so far. It may be read while running.
func (sw *stopwatch) Elapsed() time.Duration {
	if sw.running {
		return sw.now().Sub(sw.start)
	}
	return sw.elapsed
}

// Stop freezes the measurement. Stopping a stopped stopwatch is a no-op.
func (sw *stopwatch) Stop() {
	if !sw.running {
		return
	}
	sw.elapsed = sw.now().Sub(sw.start)
	sw.running = false
}

// IsRunning reports whether Stop has not been called yet.
func (sw *stopwatch) IsRunning() bool {
	return sw.running
}
