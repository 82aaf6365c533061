// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

package exectime

import (
	"fmt"
	"time"
)

const (
	// EntryFormat renders the entry line from the method and declaring type names.
	EntryFormat = "Entering method - %s of %s"

	// ExitFormat renders the exit line from the entry line, the elapsed
	// milliseconds and the unit label.
	ExitFormat = "%s: Total time taken - %d %s"

	// UnitLabel names the unit of the elapsed time in exit lines.
	UnitLabel = "MILLISECONDS"

	// WarningMessage precedes the cause of every interception failure.
	WarningMessage = "Exception occured while reading the message signature.."
)

// EntryMessage returns the entry line for sig.
func EntryMessage(sig Signature) string {
	return fmt.Sprintf(EntryFormat, sig.Method, sig.DeclaringType())
}

// ExitMessage returns the exit line for an entry line and an elapsed time,
// truncated to whole milliseconds.
func ExitMessage(entry string, elapsed time.Duration) string {
	ms := elapsed.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf(ExitFormat, entry, ms, UnitLabel)
}

// Interceptor wraps marked calls with entry/exit logging and timing.
//
// By default a failure in the logging scaffolding is reported as a warning and
// the call still runs untimed, while errors and panics from the wrapped call
// reach the caller unchanged. WithSuppressErrors(true) restores the legacy
// policy in which every failure is logged as a warning and the caller gets
// zero values and a nil error.
//
// An Interceptor is immutable after New and safe for concurrent use.
type Interceptor struct {
	sink           Sink
	routes         routingTable
	registry       *Registry
	suppressErrors bool
	now            func() time.Time
}

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithSuppressErrors selects the legacy failure policy: failures are logged
// as warnings and swallowed, and the caller receives zero values.
func WithSuppressErrors(suppress bool) Option {
	return func(ic *Interceptor) {
		ic.suppressErrors = suppress
	}
}

// WithClock sets the clock used by the per-call stopwatch.
func WithClock(now func() time.Time) Option {
	return func(ic *Interceptor) {
		ic.now = now
	}
}

// New creates an Interceptor writing to sink and matching call sites against
// reg. A nil sink discards all output; a nil registry matches nothing.
func New(sink Sink, reg *Registry, opts ...Option) *Interceptor {
	if sink == nil {
		sink = discardSink{}
	}
	if reg == nil {
		reg = NewRegistry()
	}

	ic := &Interceptor{
		sink:     sink,
		routes:   newRoutingTable(sink),
		registry: reg,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(ic)
	}
	if ic.now == nil {
		ic.now = time.Now
	}
	return ic
}

// Registry returns the registry used for matching.
func (ic *Interceptor) Registry() *Registry {
	return ic.registry
}

// SuppressErrors reports whether the legacy failure policy is active.
func (ic *Interceptor) SuppressErrors() bool {
	return ic.suppressErrors
}

// Matches returns the marker that applies to sig, if any.
func (ic *Interceptor) Matches(sig Signature) (Marker, bool) {
	if ic == nil {
		return Marker{}, false
	}
	return ic.registry.Resolve(sig)
}

// Intercept runs proceed as a call of sig marked with m.
//
// keep reports whether values produced by proceed may be returned to the
// caller. It is false only under the legacy policy after a failure, in which
// case the caller must return zero values. err is the error to return.
func (ic *Interceptor) Intercept(sig Signature, m Marker, proceed func() error) (keep bool, err error) {
	return ic.run(ic.prepare(sig, nil, m), proceed)
}

// callSite is resolved once per wrapped function and reused by every call.
type callSite struct {
	sig   Signature
	log   logFunc
	entry string
	err   error
}

// site resolves the marker for sig. It reports false when the call site is
// not marked and must not be wrapped. A signature that could not be resolved
// is still wrapped so every call reports the failure.
func (ic *Interceptor) site(sig Signature, sigErr error) (*callSite, bool) {
	if ic == nil {
		return nil, false
	}
	if sigErr != nil {
		return ic.prepare(sig, sigErr, Marker{}), true
	}
	m, ok := ic.registry.Resolve(sig)
	if !ok {
		return nil, false
	}
	return ic.prepare(sig, nil, m), true
}

// prepare validates the signature, looks up the sink operation and renders
// the entry line. Any failure is kept on the call site and reported per call.
func (ic *Interceptor) prepare(sig Signature, sigErr error, m Marker) *callSite {
	cs := &callSite{sig: sig, err: sigErr}
	if cs.err != nil {
		return cs
	}
	if cs.err = sig.Validate(); cs.err != nil {
		return cs
	}

	cs.log, cs.err = ic.routes.lookup(m.EffectiveLevel())
	if cs.err != nil {
		return cs
	}
	cs.entry = EntryMessage(sig)
	return cs
}

// run executes one intercepted call:
// entered -> running -> stopped -> exited, with the stopwatch stopped on
// every path out.
func (ic *Interceptor) run(cs *callSite, proceed func() error) (keep bool, err error) {
	if cs.err != nil {
		ic.warn(cs.err)
		if ic.suppressErrors {
			return false, nil
		}
		return true, proceed()
	}

	cs.log(cs.entry)
	sw := startStopwatch(ic.now)
	defer sw.Stop()

	if ic.suppressErrors {
		defer func() {
			if r := recover(); r != nil {
				ic.warn(fmt.Errorf("%w: %v", ErrPanic, r))
				keep, err = false, nil
			}
		}()
	}

	if perr := proceed(); perr != nil {
		if ic.suppressErrors {
			ic.warn(perr)
			return false, nil
		}
		return true, perr
	}

	cs.log(ExitMessage(cs.entry, sw.Elapsed()))
	return true, nil
}

// warn reports an interception failure at warning level.
func (ic *Interceptor) warn(err error) {
	if w, ok := ic.sink.(ErrWarner); ok {
		w.WarnErr(WarningMessage, err)
		return
	}
	ic.sink.Warn(WarningMessage + " " + err.Error())
}
