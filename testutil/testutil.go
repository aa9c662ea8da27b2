// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"votiz/auth"
	"votiz/cliparse"
	"votiz/db"
	"votiz/invite"
	"votiz/models"
)

// TestTokenSecret signs bearer tokens in tests
const TestTokenSecret = "test-token-secret"

// SetupTestDB opens a fresh sqlite database in a per-test temp directory
// and applies the full schema. The file is removed with the temp dir.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "votiz-test.db")
	conn, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: "sqlite",
		TokenSecret:  TestTokenSecret,
		TokenTTL:     time.Hour,
	}
}

// CreateTestUser inserts a user and returns its ID and a valid bearer token
func CreateTestUser(t *testing.T, conn *sql.DB, email string) (int64, string) {
	t.Helper()

	hash, err := auth.HashPassword("Sup3rSecret!")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	var userID int64
	err = conn.QueryRow(`
		INSERT INTO users (email, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, email, hash, time.Now().UTC()).Scan(&userID)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	token, err := auth.GenerateToken(userID, email, TestTokenSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}

	return userID, token
}

// CreateTestPoll inserts a poll owned by ownerID and returns its ID and
// invite code. expiresAt controls whether the poll reads as active;
// passing a past time makes an expired poll.
func CreateTestPoll(t *testing.T, conn *sql.DB, ownerID int64, title string, expiresAt time.Time) (int64, string) {
	t.Helper()

	code := invite.NewCode()
	var pollID int64
	err := conn.QueryRow(`
		INSERT INTO polls (title, owner_id, expires_at, results_visible_live, invite_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, title, ownerID, expiresAt.UTC(), false, code, time.Now().UTC()).Scan(&pollID)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID, code
}

// EndTestPoll marks a poll as manually ended
func EndTestPoll(t *testing.T, conn *sql.DB, pollID int64) {
	t.Helper()
	_, err := conn.Exec(`UPDATE polls SET ended_at = $1 WHERE id = $2`, time.Now().UTC(), pollID)
	if err != nil {
		t.Fatalf("Failed to end test poll: %v", err)
	}
}

// AddTestOption adds an option to a poll and returns the option ID
func AddTestOption(t *testing.T, conn *sql.DB, pollID int64, text string, position int) int64 {
	t.Helper()

	var optionID int64
	err := conn.QueryRow(`
		INSERT INTO options (poll_id, text, position)
		VALUES ($1, $2, $3)
		RETURNING id
	`, pollID, text, position).Scan(&optionID)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// AddTestMember records userID as a member of pollID
func AddTestMember(t *testing.T, conn *sql.DB, userID, pollID int64) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO memberships (user_id, poll_id, joined_at)
		VALUES ($1, $2, $3)
	`, userID, pollID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test membership: %v", err)
	}
}

// CastTestVote records a vote by userID for optionID on pollID
func CastTestVote(t *testing.T, conn *sql.DB, userID, pollID, optionID int64) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO votes (user_id, poll_id, option_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, userID, pollID, optionID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AuthHeader builds the header map for a bearer token
func AuthHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertErrorCode checks the error envelope's machine-readable code
func AssertErrorCode(t *testing.T, w *httptest.ResponseRecorder, expected string) {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Code != expected {
		t.Errorf("Expected error code %q, got %q. Body: %s", expected, resp.Code, w.Body.String())
	}
}
