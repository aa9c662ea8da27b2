// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Request Logging

WithLogging logs request start/completion with method, path, client IP and
duration via slog.

# Authentication

RequireAuth validates the Authorization header's bearer token and places
the user id in the request context:

	mux.HandleFunc("GET /polls",
		middleware.WithLogging(middleware.RequireAuth(secret, h.ListPolls)))

Handlers read it back with middleware.UserID(r).

# JSON Helpers

JSONResponse writes a JSON body with a status code. Error writes the
standard error envelope for a taxonomy sentinel (status and wire code are
derived from the sentinel). Internal is the catch-all 500 that keeps
database details out of responses. ParseJSONBody decodes a request body.

# CORS

CORS reflects the request origin and handles preflight, which is all the
browser frontend needs.
*/
package middleware
