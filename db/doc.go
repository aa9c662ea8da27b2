// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

Two backends are supported, selected by DATABASE_TYPE:

  - postgres (lib/pq) for production
  - sqlite (modernc.org/sqlite, pure Go) for development and tests

Handlers write one set of queries for both: placeholders are $1..$n in
strictly increasing order (sqlite binds them positionally too), inserts use
RETURNING for new ids, and time comparisons happen in Go after scanning, so
no dialect branching leaks past this package.

# Tables

  - users: id, email (unique), password_hash
  - polls: id, title, owner_id, expires_at, results_visible_live,
    ended_at (NULL until a manual end), invite_code (unique)
  - options: id, poll_id, text, position (insertion order)
  - memberships: (user_id, poll_id) primary key; owners have no row
  - votes: (user_id, poll_id) primary key - one vote per user per poll

All child tables cascade on poll deletion, which is what makes Delete a
single-statement atomic operation.
*/
package db
