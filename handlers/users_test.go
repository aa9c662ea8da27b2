// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"votiz/auth"
	"votiz/middleware"
	"votiz/models"
	"votiz/testutil"
)

func TestRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserHandler(db, cfg)

	tests := []struct {
		name           string
		request        models.RegisterRequest
		expectedStatus int
	}{
		{
			name:           "valid registration",
			request:        models.RegisterRequest{Email: "alice@example.com", Password: "Sup3rSecret!"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "email case folded before uniqueness",
			request:        models.RegisterRequest{Email: "ALICE@example.com", Password: "Sup3rSecret!"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid email",
			request:        models.RegisterRequest{Email: "not-an-email", Password: "Sup3rSecret!"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing domain dot",
			request:        models.RegisterRequest{Email: "alice@localhost", Password: "Sup3rSecret!"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "weak password",
			request:        models.RegisterRequest{Email: "bob@example.com", Password: "password"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/register", tt.request, nil)
			w := httptest.NewRecorder()
			handler.Register(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.RegisterResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.UserID == 0 {
					t.Error("Expected non-zero user_id")
				}

				var email string
				err := db.QueryRow(`SELECT email FROM users WHERE id = $1`, resp.UserID).Scan(&email)
				if err != nil {
					t.Fatalf("Failed to query user: %v", err)
				}
				if email != "alice@example.com" {
					t.Errorf("Expected stored email lowercased, got %q", email)
				}
			}
		})
	}
}

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserHandler(db, cfg)

	// Register through the handler so the stored hash is real
	req := testutil.MakeRequest("POST", "/register",
		models.RegisterRequest{Email: "alice@example.com", Password: "Sup3rSecret!"}, nil)
	w := httptest.NewRecorder()
	handler.Register(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	t.Run("valid credentials", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/token",
			models.LoginRequest{Email: "Alice@Example.com", Password: "Sup3rSecret!"}, nil)
		w := httptest.NewRecorder()
		handler.Login(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.TokenResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.TokenType != "bearer" {
			t.Errorf("Expected token_type bearer, got %q", resp.TokenType)
		}
		if _, err := auth.ValidateToken(resp.AccessToken, cfg.TokenSecret); err != nil {
			t.Errorf("Expected a valid token, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/token",
			models.LoginRequest{Email: "alice@example.com", Password: "WrongPass1!"}, nil)
		w := httptest.NewRecorder()
		handler.Login(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/token",
			models.LoginRequest{Email: "nobody@example.com", Password: "Sup3rSecret!"}, nil)
		w := httptest.NewRecorder()
		handler.Login(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserHandler(db, cfg)

	userID, token := testutil.CreateTestUser(t, db, "alice@example.com")

	req := testutil.MakeRequest("GET", "/users/me", nil, testutil.AuthHeader(token))
	w := httptest.NewRecorder()
	middleware.RequireAuth(cfg.TokenSecret, handler.Me)(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.User
	testutil.AssertJSON(t, w, &resp)
	if resp.ID != userID || resp.Email != "alice@example.com" {
		t.Errorf("Unexpected user response: %+v", resp)
	}
}
