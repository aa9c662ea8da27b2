// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client implements the Votiz polling client: an HTTP store and the
synchronization loop that keeps a local view of the viewer's polls current.

# Synchronization

The Loop owns the snapshot. Every RefreshInterval (5s by default) it pulls
the full poll list and replaces the snapshot wholesale, sorted newest
first; there is no diffing or merging, the server's answer is the truth.
Every CountdownInterval (1s) it recomputes each poll's remaining time. The
moment a countdown reaches zero the poll is flipped inactive locally and
one extra reconcile is triggered, so revealed tallies show up immediately
instead of up to five seconds later. That extra pull fires at most once
per expiry; seeing the poll active again re-arms it.

Background refresh failures are logged and the stale snapshot kept.
Failures of user actions (voting, joining, ending) are returned to the
caller.

# Usage

	api := client.NewAPI("http://localhost:8000")
	if err := api.Login(ctx, email, password); err != nil { ... }

	loop := client.NewLoop(api, client.Options{
		Listener: client.Listener{OnPolls: render},
	})
	go loop.Run(ctx)

	err := loop.Vote(ctx, pollID, optionID)

All loop state lives in the Run goroutine; the action methods are safe to
call from anywhere and return ErrStopped once the loop has shut down.
*/
package client
