// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"testing"
	"time"

	"votiz/models"
	"votiz/testutil"
)

func TestClaimCodeRetriesLostRace(t *testing.T) {
	uniqueErr := errors.New("UNIQUE constraint failed: polls.invite_code")

	t.Run("clean insert", func(t *testing.T) {
		generated := 0
		id, code, err := claimCode(
			func() (string, error) { generated++; return "AAAAAA", nil },
			func(string) (int64, error) { return 7, nil },
		)
		if err != nil || id != 7 || code != "AAAAAA" {
			t.Fatalf("Expected (7, AAAAAA), got (%d, %q, %v)", id, code, err)
		}
		if generated != 1 {
			t.Errorf("Expected one generation, got %d", generated)
		}
	})

	t.Run("code taken in the race window", func(t *testing.T) {
		codes := []string{"AAAAAA", "BBBBBB"}
		generated := 0
		inserts := 0
		id, code, err := claimCode(
			func() (string, error) { c := codes[generated]; generated++; return c, nil },
			func(c string) (int64, error) {
				inserts++
				if c == "AAAAAA" {
					return 0, uniqueErr
				}
				return 9, nil
			},
		)
		if err != nil || id != 9 || code != "BBBBBB" {
			t.Fatalf("Expected the fresh code to win, got (%d, %q, %v)", id, code, err)
		}
		if generated != 2 || inserts != 2 {
			t.Errorf("Expected one retry, got %d generations and %d inserts", generated, inserts)
		}
	})

	t.Run("losing twice gives up", func(t *testing.T) {
		_, _, err := claimCode(
			func() (string, error) { return "AAAAAA", nil },
			func(string) (int64, error) { return 0, uniqueErr },
		)
		if !errors.Is(err, uniqueErr) {
			t.Fatalf("Expected the violation surfaced after the retry, got %v", err)
		}
	})

	t.Run("unrelated insert error is not retried", func(t *testing.T) {
		boom := errors.New("disk full")
		inserts := 0
		_, _, err := claimCode(
			func() (string, error) { return "AAAAAA", nil },
			func(string) (int64, error) { inserts++; return 0, boom },
		)
		if !errors.Is(err, boom) {
			t.Fatalf("Expected insert error propagated, got %v", err)
		}
		if inserts != 1 {
			t.Errorf("Expected no retry for a non-unique error, got %d inserts", inserts)
		}
	})
}

func TestInsertPollDuplicateCodeIsUniqueViolation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	ownerID, _ := testutil.CreateTestUser(t, db, "owner@example.com")
	_, code := testutil.CreateTestPoll(t, db, ownerID, "First poll", time.Now().UTC().Add(time.Hour))

	req := models.CreatePollRequest{
		Title:     "Second poll",
		Options:   []string{"Yes", "No"},
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	_, err := handler.insertPoll(req, ownerID, code, time.Now().UTC())
	if err == nil {
		t.Fatal("Expected the duplicate code to be rejected")
	}
	if !isUniqueViolation(err) {
		t.Fatalf("Expected a unique violation, got %v", err)
	}

	// The failed transaction left no partial rows behind
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM polls WHERE title = 'Second poll'`).Scan(&n); err != nil {
		t.Fatalf("Failed to count polls: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected rollback, found %d rows", n)
	}
}
