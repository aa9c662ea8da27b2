// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest, LoginRequest: email, password
  - CreatePollRequest: title, options, expires_at, results_visible_live
  - JoinRequest: invite_code
  - VoteRequest: poll_id, option_id

# Response Types

Types for JSON responses:

  - RegisterResponse: user_id
  - TokenResponse: access_token, token_type
  - JoinResponse: poll_id
  - VoteResponse: message
  - EndPollResponse: ended_at
  - ErrorResponse: error, code, message

# Domain Types

  - User: account identity
  - Poll: poll metadata plus the per-viewer resolved fields (is_active,
    user_voted, option tallies)
  - Option: one choice within a poll, carrying a Tally
  - Tally: a visible count or a hidden marker

# Tallies

A Tally is a tagged value, not a magic number. Build one with

	models.VisibleTally(3)
	models.HiddenTally()

and query it with Count or Hidden. On the wire a hidden tally is -1, which
is what the frontend expects; inside the server and client the hidden state
never participates in sums.

# Limits

	TitleMaxLen  = 150
	OptionMaxLen = 100
	MinOptions   = 2
	MaxOptions   = 10
*/
package models
