// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

package exectime

import "reflect"

var errorType = reflect.TypeFor[error]()

// Decorate wraps any function value, resolving its signature from the
// runtime symbol table. If the last result is an error, a non-nil value is
// treated as failure of the wrapped call.
//
//	inv.Total = exectime.Decorate(ic, inv.Total)
//
// When the signature cannot be resolved (an anonymous closure, for example)
// the returned function reports the failure on every call.
func Decorate[F any](ic *Interceptor, fn F) F {
	sig, err := SignatureOf(fn)
	return decorate(ic, sig, err, fn)
}

// DecorateAs wraps fn as a call of sig, skipping signature resolution.
func DecorateAs[F any](ic *Interceptor, sig Signature, fn F) F {
	return decorate(ic, sig, nil, fn)
}

func decorate[F any](ic *Interceptor, sig Signature, sigErr error, fn F) F {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return fn
	}

	cs, ok := ic.site(sig, sigErr)
	if !ok {
		return fn
	}

	t := v.Type()
	errIdx := -1
	if n := t.NumOut(); n > 0 && t.Out(n-1) == errorType {
		errIdx = n - 1
	}

	wrapped := reflect.MakeFunc(t, func(args []reflect.Value) []reflect.Value {
		var out []reflect.Value
		keep, _ := ic.run(cs, func() error {
			if t.IsVariadic() {
				out = v.CallSlice(args)
			} else {
				out = v.Call(args)
			}
			if errIdx >= 0 && !out[errIdx].IsNil() {
				return out[errIdx].Interface().(error)
			}
			return nil
		})
		if !keep {
			return zeroResults(t)
		}
		return out
	})
	return wrapped.Interface().(F)
}

func zeroResults(t reflect.Type) []reflect.Value {
	out := make([]reflect.Value, t.NumOut())
	for i := range out {
		out[i] = reflect.Zero(t.Out(i))
	}
	return out
}
