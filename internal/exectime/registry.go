// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

package exectime

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// methodKey identifies a method-level marker.
type methodKey struct {
	typ    string
	method string
}

// Registry holds the markers attached to types and methods and decides which
// single marker, if any, applies to a call site.
//
// A method-level marker always wins. A type-level marker applies to every
// method of the type, but only when the qualified type lies under one of the
// registry's namespace prefixes. An empty namespace list places no
// restriction on type-level markers.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	namespaces []string
	types      map[string]Marker
	methods    map[methodKey]Marker
}

// NewRegistry creates a registry whose type-level markers are limited to the
// given namespace prefixes, e.g. "github.com/acme/".
func NewRegistry(namespaces ...string) *Registry {
	ns := make([]string, 0, len(namespaces))
	for _, n := range namespaces {
		if n = strings.TrimSpace(n); n != "" {
			ns = append(ns, n)
		}
	}
	return &Registry{
		namespaces: ns,
		types:      make(map[string]Marker),
		methods:    make(map[methodKey]Marker),
	}
}

// Namespaces returns a copy of the namespace prefixes.
func (r *Registry) Namespaces() []string {
	out := make([]string, len(r.namespaces))
	copy(out, r.namespaces)
	return out
}

// MarkType attaches m to every method of the qualified type.
func (r *Registry) MarkType(qualifiedType string, m Marker) error {
	return r.Register(Target{Type: qualifiedType, Level: m.Level})
}

// MarkMethod attaches m to a single method of the qualified type.
func (r *Registry) MarkMethod(qualifiedType, method string, m Marker) error {
	if method == "" {
		return fmt.Errorf("%w: method is required for %s", ErrInvalidTarget, qualifiedType)
	}
	return r.Register(Target{Type: qualifiedType, Method: method, Level: m.Level})
}

// Register records each target. Targets are validated first; nothing is
// recorded if any target is invalid. A later registration of the same target
// replaces the earlier one.
func (r *Registry) Register(targets ...Target) error {
	for _, t := range targets {
		if err := t.Validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range targets {
		typ := strings.TrimSpace(t.Type)
		m := Marker{Level: t.Level}
		if t.Method == "" {
			r.types[typ] = m
			continue
		}
		r.methods[methodKey{typ: typ, method: t.Method}] = m
	}
	return nil
}

// Resolve returns the single marker that applies to sig.
func (r *Registry) Resolve(sig Signature) (Marker, bool) {
	if r == nil {
		return Marker{}, false
	}

	qualified := sig.QualifiedType()

	r.mu.RLock()
	defer r.mu.RUnlock()

	if m, ok := r.methods[methodKey{typ: qualified, method: sig.Method}]; ok {
		return m, true
	}
	if m, ok := r.types[qualified]; ok && r.inNamespace(qualified) {
		return m, true
	}
	return Marker{}, false
}

// Len returns the number of registered markers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types) + len(r.methods)
}

// inNamespace reports whether qualified lies under a namespace prefix.
// A prefix matches on whole path or name segments, so "github.com/acme"
// covers "github.com/acme/billing.Invoice" but not "github.com/acmecorp.X".
func (r *Registry) inNamespace(qualified string) bool {
	if len(r.namespaces) == 0 {
		return true
	}
	for _, ns := range r.namespaces {
		if !strings.HasPrefix(qualified, ns) {
			continue
		}
		if len(qualified) == len(ns) || strings.HasSuffix(ns, "/") || strings.HasSuffix(ns, ".") {
			return true
		}
		if next := qualified[len(ns)]; next == '/' || next == '.' {
			return true
		}
	}
	return false
}

// MarkType attaches m to every method of T.
//
//	exectime.MarkType[billing.Invoice](reg, exectime.Marker{Level: exectime.LevelDebug})
func MarkType[T any](r *Registry, m Marker) error {
	pkg, name, err := qualifiedTypeOf(reflect.TypeFor[T]())
	if err != nil {
		return err
	}
	return r.MarkType(pkg+"."+name, m)
}

// MarkMethod attaches m to one method of T.
func MarkMethod[T any](r *Registry, method string, m Marker) error {
	pkg, name, err := qualifiedTypeOf(reflect.TypeFor[T]())
	if err != nil {
		return err
	}
	return r.MarkMethod(pkg+"."+name, method, m)
}
