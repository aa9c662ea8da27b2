// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Input limits for poll creation
const (
	TitleMaxLen  = 150
	OptionMaxLen = 100
	MinOptions   = 2
	MaxOptions   = 10
)

// Request types

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreatePollRequest struct {
	Title              string    `json:"title"`
	Options            []string  `json:"options"`
	ExpiresAt          time.Time `json:"expires_at"`
	ResultsVisibleLive bool      `json:"results_visible_live"`
}

type JoinRequest struct {
	InviteCode string `json:"invite_code"`
}

type VoteRequest struct {
	PollID   int64 `json:"poll_id"`
	OptionID int64 `json:"option_id"`
}

// Response types

type RegisterResponse struct {
	UserID int64 `json:"user_id"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type JoinResponse struct {
	PollID int64 `json:"poll_id"`
}

type VoteResponse struct {
	Message string `json:"message"`
}

type EndPollResponse struct {
	EndedAt time.Time `json:"ended_at"`
}

// Domain types

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Poll is a poll as seen by one viewer. IsActive is derived on every read
// (never stored), UserVoted and the option tallies are resolved per viewer.
type Poll struct {
	ID                 int64      `json:"id"`
	Title              string     `json:"title"`
	OwnerID            int64      `json:"owner_id"`
	ExpiresAt          time.Time  `json:"expires_at"`
	ResultsVisibleLive bool       `json:"results_visible_live"`
	EndedAt            *time.Time `json:"ended_at,omitempty"`
	InviteCode         string     `json:"invite_code"`
	Options            []Option   `json:"options"`
	UserVoted          bool       `json:"user_voted"`
	IsActive           bool       `json:"is_active"`
}

type Option struct {
	ID        int64  `json:"id"`
	PollID    int64  `json:"poll_id"`
	Text      string `json:"text"`
	VoteCount Tally  `json:"vote_count"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
