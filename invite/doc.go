// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package invite generates and normalizes poll invite codes.

A code is six uppercase hex characters drawn from a v4 UUID:

	code := invite.NewCode() // e.g. "AB12CD"

Generate wraps NewCode with a bounded retry loop against a caller-supplied
existence check, so a collision among live polls is resolved at creation
time rather than surfacing as a constraint error later. User input goes
through Normalize before lookup, so pasted codes with stray whitespace or
lowercase still resolve.
*/
package invite
