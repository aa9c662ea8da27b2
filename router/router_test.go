// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"votiz/testutil"
)

func TestRoutes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	_, token := testutil.CreateTestUser(t, db, "alice@example.com")

	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		expectedStatus int
	}{
		{"health check", "GET", "/health", "", http.StatusOK},
		{"root", "GET", "/", "", http.StatusOK},
		{"polls without token", "GET", "/polls", "", http.StatusUnauthorized},
		{"polls with token", "GET", "/polls", token, http.StatusOK},
		{"me without token", "GET", "/users/me", "", http.StatusUnauthorized},
		{"me with token", "GET", "/users/me", token, http.StatusOK},
		{"vote without token", "POST", "/vote", "", http.StatusUnauthorized},
		{"join without token", "POST", "/join", "", http.StatusUnauthorized},
		{"method not allowed on health", "POST", "/health", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var headers map[string]string
			if tt.token != "" {
				headers = testutil.AuthHeader(tt.token)
			}
			req := testutil.MakeRequest(tt.method, tt.path, nil, headers)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}
