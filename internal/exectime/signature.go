// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

package exectime

import (
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"
)

// Signature identifies an intercepted call site.
//
// Type is empty for package-level functions; the package then acts as the
// declaring type, so a type-level marker on the import path covers every
// function in that package.
type Signature struct {
	// Package is the import path, e.g. "github.com/acme/billing".
	Package string

	// Type is the simple name of the receiver type, e.g. "Invoice".
	Type string

	// Method is the simple name of the method or function.
	Method string
}

// SignatureFor returns the signature of method on type T.
//
//	sig := exectime.SignatureFor[billing.Invoice]("Total")
func SignatureFor[T any](method string) Signature {
	pkg, name, err := qualifiedTypeOf(reflect.TypeFor[T]())
	if err != nil {
		return Signature{Method: method}
	}
	return Signature{Package: pkg, Type: name, Method: method}
}

// SignatureOf resolves the signature of a function value from the runtime
// symbol table. Method values (inv.Total), method expressions
// ((*Invoice).Total) and package-level functions resolve; anonymous closures
// do not, since they have no declaring type or method name.
func SignatureOf(fn any) (Signature, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return Signature{}, fmt.Errorf("%w: %T is not a function", ErrUnresolvableSignature, fn)
	}
	if v.IsNil() {
		return Signature{}, fmt.Errorf("%w: %w", ErrUnresolvableSignature, ErrNilFunc)
	}

	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return Signature{}, fmt.Errorf("%w: no symbol for %T", ErrUnresolvableSignature, fn)
	}
	return parseFuncName(rf.Name())
}

// parseFuncName splits a runtime symbol such as
// "github.com/acme/billing.(*Invoice).Total-fm" into its parts.
func parseFuncName(name string) (Signature, error) {
	clean := strings.ReplaceAll(name, "[...]", "")

	slash := strings.LastIndex(clean, "/")
	dot := strings.Index(clean[slash+1:], ".")
	if dot < 0 {
		return Signature{}, fmt.Errorf("%w: malformed symbol %q", ErrUnresolvableSignature, name)
	}
	dot += slash + 1

	// The runtime escapes dots in the last path element (gopkg.in/yaml%2ev3).
	pkg := strings.ReplaceAll(clean[:dot], "%2e", ".")
	rest := strings.TrimSuffix(clean[dot+1:], "-fm")

	parts := strings.Split(rest, ".")
	switch len(parts) {
	case 1:
		if isClosureName(parts[0]) {
			break
		}
		return Signature{Package: pkg, Method: parts[0]}, nil
	case 2:
		typ := strings.TrimSuffix(strings.TrimPrefix(parts[0], "(*"), ")")
		if typ == "" || isClosureName(parts[1]) {
			break
		}
		return Signature{Package: pkg, Type: typ, Method: parts[1]}, nil
	}

	return Signature{}, fmt.Errorf("%w: anonymous function %q", ErrUnresolvableSignature, name)
}

// isClosureName reports whether s is a compiler-generated closure name (func1, func12).
func isClosureName(s string) bool {
	digits := strings.TrimPrefix(s, "func")
	if digits == s || digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Validate reports ErrUnresolvableSignature when the method name or the
// declaring type is missing.
func (s Signature) Validate() error {
	if s.Method == "" {
		return fmt.Errorf("%w: missing method name", ErrUnresolvableSignature)
	}
	if s.Package == "" && s.Type == "" {
		return fmt.Errorf("%w: missing declaring type of %s", ErrUnresolvableSignature, s.Method)
	}
	return nil
}

// DeclaringType returns the simple name of the declaring type, or the
// package name for package-level functions.
//
// The package name is derived from the import path: major version elements
// ("/v2", ".v3") are skipped. Packages whose name differs from their
// directory in other ways (go-json declaring package json) keep the
// directory name.
func (s Signature) DeclaringType() string {
	if s.Type != "" {
		return s.Type
	}
	return packageName(s.Package)
}

// packageName guesses the package name of an import path:
// "github.com/knadh/koanf/v2" is koanf and "gopkg.in/yaml.v3" is yaml.
func packageName(importPath string) string {
	name := path.Base(importPath)
	if isMajorVersion(name) {
		if dir := path.Dir(importPath); dir != "." && dir != "/" {
			name = path.Base(dir)
		}
	}
	if i := strings.LastIndex(name, "."); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[:i]
	}
	return name
}

// isMajorVersion reports whether s has the form vN.
func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// QualifiedType returns the fully-qualified declaring type used for
// registry lookups and namespace filtering, e.g. "github.com/acme/billing.Invoice".
// Package-level functions qualify to the import path alone.
func (s Signature) QualifiedType() string {
	switch {
	case s.Type == "":
		return s.Package
	case s.Package == "":
		return s.Type
	default:
		return s.Package + "." + s.Type
	}
}

// String returns the qualified method name.
func (s Signature) String() string {
	return s.QualifiedType() + "." + s.Method
}

// qualifiedTypeOf returns the import path and simple name of a named type,
// dereferencing pointers and dropping generic instantiation arguments.
func qualifiedTypeOf(t reflect.Type) (pkg, name string, err error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" || t.PkgPath() == "" {
		return "", "", fmt.Errorf("%w: %v is not a named type", ErrInvalidTarget, t)
	}

	name = t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return t.PkgPath(), name, nil
}
