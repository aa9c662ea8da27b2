// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"errors"
	"testing"
	"time"

	"votiz/apperr"
)

func TestPollState(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		expiresAt time.Time
		endedAt   *time.Time
		expected  State
	}{
		{"before deadline", future, nil, StateActive},
		{"past deadline", past, nil, StateEnded},
		{"exactly at deadline", now, nil, StateEnded},
		{"manually ended before deadline", future, &past, StateEnded},
		{"manually ended and expired", past, &past, StateEnded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PollState(tt.expiresAt, tt.endedAt, now); got != tt.expected {
				t.Errorf("PollState() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCheckVotable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := CheckVotable(now.Add(time.Hour), nil, now); err != nil {
		t.Errorf("Expected active poll to be votable, got %v", err)
	}

	err := CheckVotable(now.Add(-time.Hour), nil, now)
	if !errors.Is(err, apperr.ErrPollClosed) {
		t.Errorf("Expected ErrPollClosed for expired poll, got %v", err)
	}

	endedAt := now.Add(-time.Minute)
	err = CheckVotable(now.Add(time.Hour), &endedAt, now)
	if !errors.Is(err, apperr.ErrPollClosed) {
		t.Errorf("Expected ErrPollClosed for manually ended poll, got %v", err)
	}
}

func TestEnd(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	endTime, err := End(now.Add(time.Hour), nil, now)
	if err != nil {
		t.Fatalf("Expected active poll to end cleanly, got %v", err)
	}
	if !endTime.Equal(now) {
		t.Errorf("Expected end timestamp %v, got %v", now, endTime)
	}

	// Ending twice is a conflict
	_, err = End(now.Add(time.Hour), &endTime, now)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("Expected ErrConflict for already-ended poll, got %v", err)
	}

	// So is ending a poll that expired on its own
	_, err = End(now.Add(-time.Hour), nil, now)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("Expected ErrConflict for expired poll, got %v", err)
	}
}

func TestStateString(t *testing.T) {
	if StateActive.String() != "active" {
		t.Errorf("Expected \"active\", got %q", StateActive.String())
	}
	if StateEnded.String() != "ended" {
		t.Errorf("Expected \"ended\", got %q", StateEnded.String())
	}
}
