// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"time"

	"github.com/dustin/go-humanize"

	"votiz/models"
)

// Remaining is the time left until a poll's deadline, clamped at zero. A
// manually ended poll has nothing left regardless of its deadline.
func Remaining(p models.Poll, now time.Time) time.Duration {
	if p.EndedAt != nil {
		return 0
	}
	d := p.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// CountdownLabel renders the time left for display, "ended" once nothing
// remains.
func CountdownLabel(p models.Poll, now time.Time) string {
	if Remaining(p, now) <= 0 {
		return "ended"
	}
	return humanize.RelTime(p.ExpiresAt, now, "", "left")
}

// expiryTracker remembers which polls have already had their deadline
// reconcile fired, so a poll sitting past its deadline triggers one server
// round-trip instead of one per countdown tick. Observing the poll active
// again (deadline extended server-side) re-arms it.
type expiryTracker struct {
	fired map[int64]bool
}

func newExpiryTracker() *expiryTracker {
	return &expiryTracker{fired: make(map[int64]bool)}
}

// fire reports whether the expiry transition for pollID should be acted on
// now, and marks it so subsequent calls say no.
func (t *expiryTracker) fire(pollID int64) bool {
	if t.fired[pollID] {
		return false
	}
	t.fired[pollID] = true
	return true
}

// observeActive re-arms the tracker for a poll seen with time remaining.
func (t *expiryTracker) observeActive(pollID int64) {
	delete(t.fired, pollID)
}

// prune drops state for polls no longer present.
func (t *expiryTracker) prune(present map[int64]bool) {
	for id := range t.fired {
		if !present[id] {
			delete(t.fired, id)
		}
	}
}
