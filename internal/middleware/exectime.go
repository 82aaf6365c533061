// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/exectime/internal/cache"
	"github.com/tomtom215/exectime/internal/exectime"
)

// routeCacheSize bounds the number of resolved routes kept per middleware.
// Without a chi router every distinct URL path is its own route.
const routeCacheSize = 1024

// ExecTime returns middleware that times each request as a call of method
// "<HTTP method> <route>" on typeName, e.g. "GET /users/{id}" on
// "github.com/acme/api.Users".
//
// The route is chi's route pattern when the request is served by a chi
// router, otherwise the URL path. Requests whose route is not marked in the
// interceptor's registry are passed through untouched. The marker for each
// route is resolved on its first request and reused while the route stays in
// a bounded LRU cache.
//
// Handler panics propagate after the stopwatch stops. Under the legacy
// failure policy the panic is logged instead and a 500 is written if the
// handler had not written a status yet.
func ExecTime(ic *exectime.Interceptor, typeName string) func(http.Handler) http.Handler {
	pkg, typ := splitTypeName(typeName)
	sites := cache.NewLRU[routeSite](routeCacheSize)

	return func(next http.Handler) http.Handler {
		if ic == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sig := exectime.Signature{Package: pkg, Type: typ, Method: r.Method + " " + routePattern(r)}

			rs := sites.GetOrAdd(sig.Method, func() routeSite {
				m, matched := ic.Matches(sig)
				return routeSite{marker: m, matched: matched}
			})
			if !rs.matched {
				next.ServeHTTP(w, r)
				return
			}

			wrapper := &responseWriter{ResponseWriter: w}

			keep, _ := ic.Intercept(sig, rs.marker, func() error {
				next.ServeHTTP(wrapper, r)
				return nil
			})
			if !keep && !wrapper.wroteHeader {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		})
	}
}

type routeSite struct {
	marker  exectime.Marker
	matched bool
}

// routePattern returns the chi route pattern for r, falling back to the URL
// path when r is not routed by chi or no route matches.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	// Inside a mounted subrouter the pattern so far is only the mount
	// prefix ("/api/*") until the subrouter has routed the request.
	if pattern := rctx.RoutePattern(); pattern != "" && !strings.HasSuffix(pattern, "/*") {
		return pattern
	}
	// Middleware runs before its router has routed; ask the root router,
	// which resolves through every mount.
	if rctx.Routes != nil {
		if pattern := rctx.Routes.Find(chi.NewRouteContext(), r.Method, r.URL.Path); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// splitTypeName splits "github.com/acme/api.Users" into its import path and
// type name. A name without a type part is treated as a package path.
func splitTypeName(typeName string) (pkg, typ string) {
	slash := strings.LastIndex(typeName, "/")
	dot := strings.LastIndex(typeName, ".")
	if dot <= slash {
		return typeName, ""
	}
	return typeName[:dot], typeName[dot+1:]
}

// responseWriter wraps http.ResponseWriter to record whether the handler
// has started the response.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
