// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

package exectime

import "context"

// The wrappers below resolve the marker for sig once, when the wrapper is
// built. Unmarked call sites get fn back unchanged, so a call is never
// intercepted twice by the same wrapper.

// Wrap intercepts a function with no arguments.
//
//	total := exectime.Wrap(ic, exectime.SignatureFor[Invoice]("Total"), inv.Total)
//	sum, err := total()
func Wrap[R any](ic *Interceptor, sig Signature, fn func() (R, error)) func() (R, error) {
	cs, ok := ic.site(sig, nil)
	if !ok || fn == nil {
		return fn
	}
	return func() (R, error) {
		var out R
		keep, err := ic.run(cs, func() error {
			var err error
			out, err = fn()
			return err
		})
		if !keep {
			var zero R
			return zero, err
		}
		return out, err
	}
}

// Wrap1 intercepts a function of one argument.
func Wrap1[A, R any](ic *Interceptor, sig Signature, fn func(A) (R, error)) func(A) (R, error) {
	cs, ok := ic.site(sig, nil)
	if !ok || fn == nil {
		return fn
	}
	return func(a A) (R, error) {
		var out R
		keep, err := ic.run(cs, func() error {
			var err error
			out, err = fn(a)
			return err
		})
		if !keep {
			var zero R
			return zero, err
		}
		return out, err
	}
}

// Wrap2 intercepts a function of two arguments.
func Wrap2[A, B, R any](ic *Interceptor, sig Signature, fn func(A, B) (R, error)) func(A, B) (R, error) {
	cs, ok := ic.site(sig, nil)
	if !ok || fn == nil {
		return fn
	}
	return func(a A, b B) (R, error) {
		var out R
		keep, err := ic.run(cs, func() error {
			var err error
			out, err = fn(a, b)
			return err
		})
		if !keep {
			var zero R
			return zero, err
		}
		return out, err
	}
}

// WrapCtx intercepts a context-aware function of one argument. The context
// is passed through untouched; the interceptor itself never blocks on it.
func WrapCtx[A, R any](ic *Interceptor, sig Signature, fn func(context.Context, A) (R, error)) func(context.Context, A) (R, error) {
	cs, ok := ic.site(sig, nil)
	if !ok || fn == nil {
		return fn
	}
	return func(ctx context.Context, a A) (R, error) {
		var out R
		keep, err := ic.run(cs, func() error {
			var err error
			out, err = fn(ctx, a)
			return err
		})
		if !keep {
			var zero R
			return zero, err
		}
		return out, err
	}
}

// Run intercepts a function that only reports an error.
func Run(ic *Interceptor, sig Signature, fn func() error) func() error {
	cs, ok := ic.site(sig, nil)
	if !ok || fn == nil {
		return fn
	}
	return func() error {
		_, err := ic.run(cs, fn)
		return err
	}
}

// Do intercepts a single call, resolving the marker on every invocation.
// It suits method bodies that time themselves:
//
//	func (inv *Invoice) Total() (int64, error) {
//	    return exectime.Do(ic, exectime.SignatureFor[Invoice]("Total"), inv.total)
//	}
func Do[R any](ic *Interceptor, sig Signature, fn func() (R, error)) (R, error) {
	return Wrap(ic, sig, fn)()
}
