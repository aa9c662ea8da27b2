// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"votiz/apperr"
	"votiz/auth"
)

type contextKey string

const userIDKey contextKey = "user_id"

// RequireAuth validates the Authorization bearer token and stores the
// caller's user id in the request context. Requests without a valid token
// never reach the wrapped handler.
func RequireAuth(tokenSecret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			Error(w, apperr.ErrUnauthenticated, "Missing bearer token")
			return
		}

		userID, err := auth.ValidateToken(token, tokenSecret)
		if err != nil {
			Error(w, apperr.ErrUnauthenticated, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// UserID returns the authenticated user id set by RequireAuth. Zero means
// the handler was reached without the middleware, which is a routing bug.
func UserID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64)
	return id
}
