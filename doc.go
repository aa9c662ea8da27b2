// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Votiz API server.

Votiz is an invite-only polling service: timed multiple-choice polls shared
via a short code, one vote per user per poll, results revealed to a viewer
once they have voted or the poll has ended.

# Starting the Server

The server reads environment variables (a local .env file works too) or
CLI flags:

	TOKEN_SECRET=... go run main.go

Or with flags:

	go run main.go -p 8000 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - TOKEN_SECRET (--token-secret): bearer token signing secret

Optional settings:

  - PORT (-p): server port (default: 8000)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): postgres DSN or sqlite path (default: votiz.db)
  - TOKEN_TTL (--token-ttl): bearer token lifetime (default: 24h)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (users, polls, membership, voting)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, bearer auth, JSON helpers
  - models: request/response and domain types
  - apperr: error taxonomy shared with the client
  - lifecycle: poll state derivation (active/ended)
  - visibility: per-viewer tally resolution
  - invite: invite code generation
  - auth: token signing and password hashing
  - db: schema creation and driver selection
  - cliparse: configuration parsing
  - client: polling client with the synchronization loop

See package documentation for each component.
*/
package main
