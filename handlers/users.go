// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"votiz/apperr"
	"votiz/auth"
	"votiz/cliparse"
	"votiz/middleware"
	"votiz/models"
)

type UserHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

// Register handles POST /register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Error(w, apperr.ErrValidation, "Invalid JSON")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validEmail(email) {
		middleware.Error(w, apperr.ErrValidation, "Enter a valid email address")
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		middleware.Error(w, apperr.ErrValidation, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.Internal(w)
		return
	}

	var userID int64
	err = h.db.QueryRow(`
		INSERT INTO users (email, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, email, hash, time.Now().UTC()).Scan(&userID)

	if err != nil {
		if isUniqueViolation(err) {
			middleware.Error(w, apperr.ErrValidation, "This email is already taken")
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.Internal(w)
		return
	}

	slog.Info("user registered", "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{UserID: userID})
}

// Login handles POST /token
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Error(w, apperr.ErrValidation, "Invalid JSON")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var userID int64
	var hash string
	err := h.db.QueryRow(`
		SELECT id, password_hash FROM users WHERE email = $1
	`, email).Scan(&userID, &hash)

	if err == sql.ErrNoRows {
		middleware.Error(w, apperr.ErrUnauthenticated, "Wrong email or password")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.Internal(w)
		return
	}

	if err := auth.CheckPassword(hash, req.Password); err != nil {
		middleware.Error(w, apperr.ErrUnauthenticated, "Wrong email or password")
		return
	}

	token, err := auth.GenerateToken(userID, email, h.cfg.TokenSecret, h.cfg.TokenTTL)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		middleware.Internal(w)
		return
	}

	slog.Info("user logged in", "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me handles GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var email string
	err := h.db.QueryRow(`SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
	if err == sql.ErrNoRows {
		middleware.Error(w, apperr.ErrUnauthenticated, "Account no longer exists")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.Internal(w)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.User{ID: userID, Email: email})
}

// validEmail is a sanity check, not RFC validation. Anything with one @
// and a dot in the domain is accepted; the address is only an identity
// string here, never a delivery target.
func validEmail(email string) bool {
	if len(email) < 3 || len(email) > 254 {
		return false
	}
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".")
}
