// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"fmt"
	"time"

	"votiz/apperr"
)

// State of a poll. Ended is terminal: no transition leaves it.
type State int

const (
	StateActive State = iota
	StateEnded
)

func (s State) String() string {
	if s == StateEnded {
		return "ended"
	}
	return "active"
}

// PollState derives the state from stored fields. A poll is Ended when the
// owner recorded a manual end (endedAt set) or the deadline has passed.
// Expiry is a fact re-derived on every read, not an event fired server-side.
func PollState(expiresAt time.Time, endedAt *time.Time, now time.Time) State {
	if endedAt != nil {
		return StateEnded
	}
	if !now.Before(expiresAt) {
		return StateEnded
	}
	return StateActive
}

// IsActive reports whether the poll still accepts votes.
func IsActive(expiresAt time.Time, endedAt *time.Time, now time.Time) bool {
	return PollState(expiresAt, endedAt, now) == StateActive
}

// CheckVotable returns ErrPollClosed when the poll no longer accepts votes.
func CheckVotable(expiresAt time.Time, endedAt *time.Time, now time.Time) error {
	if !IsActive(expiresAt, endedAt, now) {
		return fmt.Errorf("%w: voting has ended", apperr.ErrPollClosed)
	}
	return nil
}

// End validates a manual end at the given instant and returns the timestamp
// to record. Ending an already-ended poll is a conflict, by either path:
// the transition out of Active happens at most once.
func End(expiresAt time.Time, endedAt *time.Time, now time.Time) (time.Time, error) {
	if !IsActive(expiresAt, endedAt, now) {
		return time.Time{}, fmt.Errorf("%w: poll already ended", apperr.ErrConflict)
	}
	return now, nil
}
