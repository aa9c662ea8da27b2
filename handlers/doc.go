// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP request handlers.

Handlers are grouped by concern, each a struct with the database and config
injected:

  - UserHandler: register, login, current user
  - PollHandler: create, list, manual end, delete
  - MembershipHandler: join by invite code, leave
  - VoteHandler: cast a vote

Every poll leaving this package is resolved for the requesting viewer
first: is_active derived via the lifecycle package, user_voted looked up,
and tallies filtered through the visibility rule. Clients never see raw
counts they are not entitled to.

Failure conditions are apperr sentinels written through middleware.Error;
unexpected database errors are logged and become a bare 500.
*/
package handlers
