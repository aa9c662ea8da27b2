// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"votiz/apperr"
	"votiz/middleware"
	"votiz/models"
	"votiz/testutil"
)

func TestJoin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewMembershipHandler(db, cfg)

	ownerID, ownerToken := testutil.CreateTestUser(t, db, "owner@example.com")
	_, memberToken := testutil.CreateTestUser(t, db, "member@example.com")

	future := time.Now().UTC().Add(time.Hour)
	pollID, code := testutil.CreateTestPoll(t, db, ownerID, "Joinable poll", future)

	endedID, endedCode := testutil.CreateTestPoll(t, db, ownerID, "Ended poll", future)
	testutil.EndTestPoll(t, db, endedID)
	_, expiredCode := testutil.CreateTestPoll(t, db, ownerID, "Expired poll", time.Now().UTC().Add(-time.Minute))

	join := func(token, inviteCode string) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.MakeRequest("POST", "/join",
			models.JoinRequest{InviteCode: inviteCode}, testutil.AuthHeader(token))
		w := httptest.NewRecorder()
		middleware.RequireAuth(cfg.TokenSecret, handler.Join)(w, req)
		return w
	}

	t.Run("join with messy but valid code", func(t *testing.T) {
		w := join(memberToken, "  "+strings.ToLower(code)+"  ")
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.JoinResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.PollID != pollID {
			t.Errorf("Expected poll id %d, got %d", pollID, resp.PollID)
		}

		var exists bool
		err := db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM memberships WHERE user_id = (SELECT id FROM users WHERE email = 'member@example.com') AND poll_id = $1)
		`, pollID).Scan(&exists)
		if err != nil {
			t.Fatalf("Failed to check membership: %v", err)
		}
		if !exists {
			t.Error("Membership row was not created")
		}
	})

	t.Run("joining twice conflicts", func(t *testing.T) {
		w := join(memberToken, code)
		testutil.AssertStatus(t, w, http.StatusConflict)
		testutil.AssertErrorCode(t, w, apperr.CodeAlreadyMember)
	})

	t.Run("owner joining own poll conflicts", func(t *testing.T) {
		w := join(ownerToken, code)
		testutil.AssertStatus(t, w, http.StatusConflict)
		testutil.AssertErrorCode(t, w, apperr.CodeAlreadyMember)
	})

	t.Run("unknown code", func(t *testing.T) {
		w := join(memberToken, "ZZZZZZ")
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("empty code", func(t *testing.T) {
		w := join(memberToken, "   ")
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("manually ended poll", func(t *testing.T) {
		w := join(memberToken, endedCode)
		testutil.AssertStatus(t, w, http.StatusConflict)
		testutil.AssertErrorCode(t, w, apperr.CodePollClosed)
	})

	t.Run("expired poll", func(t *testing.T) {
		w := join(memberToken, expiredCode)
		testutil.AssertStatus(t, w, http.StatusConflict)
		testutil.AssertErrorCode(t, w, apperr.CodePollClosed)
	})
}

func TestLeave(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewMembershipHandler(db, cfg)

	ownerID, ownerToken := testutil.CreateTestUser(t, db, "owner@example.com")
	memberID, memberToken := testutil.CreateTestUser(t, db, "member@example.com")

	future := time.Now().UTC().Add(time.Hour)
	pollID, _ := testutil.CreateTestPoll(t, db, ownerID, "Leavable poll", future)
	optID := testutil.AddTestOption(t, db, pollID, "Yes", 0)
	testutil.AddTestOption(t, db, pollID, "No", 1)
	testutil.AddTestMember(t, db, memberID, pollID)
	testutil.CastTestVote(t, db, memberID, pollID, optID)

	leave := func(token string, id int64) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.MakeRequest("DELETE", "/polls/"+strconv.FormatInt(id, 10)+"/leave", nil, testutil.AuthHeader(token))
		req.SetPathValue("id", strconv.FormatInt(id, 10))
		w := httptest.NewRecorder()
		middleware.RequireAuth(cfg.TokenSecret, handler.Leave)(w, req)
		return w
	}

	t.Run("owner cannot leave", func(t *testing.T) {
		w := leave(ownerToken, pollID)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("member leaves, vote stays", func(t *testing.T) {
		w := leave(memberToken, pollID)
		testutil.AssertStatus(t, w, http.StatusNoContent)

		var isMember bool
		err := db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM memberships WHERE user_id = $1 AND poll_id = $2)
		`, memberID, pollID).Scan(&isMember)
		if err != nil {
			t.Fatalf("Failed to check membership: %v", err)
		}
		if isMember {
			t.Error("Expected membership row removed")
		}

		// The cast vote is history, not membership state
		var votes int
		err = db.QueryRow(`SELECT COUNT(*) FROM votes WHERE poll_id = $1`, pollID).Scan(&votes)
		if err != nil {
			t.Fatalf("Failed to count votes: %v", err)
		}
		if votes != 1 {
			t.Errorf("Expected the vote to survive leaving, got %d votes", votes)
		}
	})

	t.Run("leaving twice is not found", func(t *testing.T) {
		w := leave(memberToken, pollID)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("missing poll", func(t *testing.T) {
		w := leave(memberToken, 99999)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
