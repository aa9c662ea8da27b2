// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apperr defines the error taxonomy shared by server and client.

Every user-visible failure is one of a small set of sentinels:

	ErrUnauthenticated  token missing or rejected; client falls back to login
	ErrNotFound         unknown invite code or deleted poll
	ErrAlreadyMember    join repeated; recoverable, informational
	ErrAlreadyVoted     second vote on the same poll
	ErrPollClosed       vote or join attempted on an ended poll
	ErrForbidden        action reserved for members or the owner
	ErrValidation       malformed input, rejected before any state changes
	ErrConflict         concurrent end/delete detected during an action
	ErrTransient        network noise on a background refresh; never surfaced

Handlers wrap sentinels with context:

	return fmt.Errorf("%w: poll %d", apperr.ErrPollClosed, id)

and the HTTP layer turns them into an ErrorResponse via HTTPStatus and
Code. The client reverses the mapping with FromWire, so errors.Is works
on both sides of the wire.
*/
package apperr
