// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

/*
Package middleware provides HTTP middleware that applies execution-time
logging to handlers.

Each request is treated as a call of a method named after the route,
"<HTTP method> <route pattern>", on a type chosen when the middleware is
built. Markers are looked up in the interceptor's registry, so a type-level
marker times every route and a method-level marker times one route:

	reg := exectime.NewRegistry("github.com/acme/")
	_ = reg.MarkType("github.com/acme/api.Users", exectime.Marker{Level: exectime.LevelDebug})
	_ = reg.MarkMethod("github.com/acme/api.Users", "POST /users", exectime.Marker{Level: exectime.LevelWarn})
	ic := exectime.New(logging.GlobalSink(), reg)

	r := chi.NewRouter()
	r.Use(middleware.ExecTime(ic, "github.com/acme/api.Users"))
	r.Get("/users/{id}", getUser)
	r.Post("/users", createUser)

A request to GET /users/42 then logs at debug:

	Entering method - GET /users/{id} of Users
	Entering method - GET /users/{id} of Users: Total time taken - 3 MILLISECONDS

Inside a mounted subrouter the route is the full pattern seen from the root
router, e.g. "GET /api/users/{id}". Outside a chi router the URL path is used
as the route, so routes with path parameters produce one method name per
distinct path.
*/
package middleware
