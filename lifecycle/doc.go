// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package lifecycle decides whether a poll accepts votes.

A poll has two states, Active and Ended, and Ended is terminal. There is no
stored is_active flag: state is derived from expires_at plus the optional
manual-end timestamp on every read, so a poll can never be stale-active.

	state := lifecycle.PollState(p.ExpiresAt, p.EndedAt, time.Now())

Two paths lead out of Active:

  - expiry: the deadline passes; detected by whoever reads the poll next
  - manual end: the owner records ended_at; End validates the transition

Votes are only accepted while Active; CheckVotable returns ErrPollClosed
otherwise. Ending a poll has no side effects beyond the derived visibility
change; no votes are deleted or altered.
*/
package lifecycle
