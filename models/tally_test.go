// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"testing"
)

func TestTallyMarshal(t *testing.T) {
	tests := []struct {
		name     string
		tally    Tally
		expected string
	}{
		{"visible count", VisibleTally(7), "7"},
		{"zero count", VisibleTally(0), "0"},
		{"hidden", HiddenTally(), "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.tally)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(b) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, b)
			}
		})
	}
}

func TestTallyUnmarshal(t *testing.T) {
	var tally Tally
	if err := json.Unmarshal([]byte("12"), &tally); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	count, ok := tally.Count()
	if !ok || count != 12 {
		t.Errorf("Expected visible 12, got %v", tally)
	}

	if err := json.Unmarshal([]byte("-1"), &tally); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !tally.Hidden() {
		t.Errorf("Expected -1 to decode as hidden, got %v", tally)
	}

	if err := json.Unmarshal([]byte(`"nope"`), &tally); err == nil {
		t.Error("Expected error for non-numeric tally")
	}
}

func TestTallyInsideOption(t *testing.T) {
	opt := Option{ID: 1, PollID: 2, Text: "Tea", VoteCount: HiddenTally()}
	b, err := json.Marshal(opt)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Option
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !decoded.VoteCount.Hidden() {
		t.Errorf("Expected hidden tally to survive a round trip, got %v", decoded.VoteCount)
	}
}
