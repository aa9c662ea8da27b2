// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"votiz/cliparse"
	"votiz/handlers"
	"votiz/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(db, cfg)
	pollHandler := handlers.NewPollHandler(db, cfg)
	membershipHandler := handlers.NewMembershipHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)

	secret := cfg.TokenSecret
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(secret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /register", middleware.WithLogging(userHandler.Register))
	mux.HandleFunc("POST /token", middleware.WithLogging(userHandler.Login))
	mux.HandleFunc("GET /users/me", authed(userHandler.Me))

	// Polls
	mux.HandleFunc("POST /polls", authed(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls", authed(pollHandler.ListPolls))
	mux.HandleFunc("PATCH /polls/{id}/end", authed(pollHandler.EndPoll))
	mux.HandleFunc("DELETE /polls/{id}", authed(pollHandler.DeletePoll))

	// Membership and voting
	mux.HandleFunc("POST /join", authed(membershipHandler.Join))
	mux.HandleFunc("DELETE /polls/{id}/leave", authed(membershipHandler.Leave))
	mux.HandleFunc("POST /vote", authed(voteHandler.Vote))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("votiz API v1"))
	})

	return mux
}
