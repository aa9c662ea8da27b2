// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"votiz/lifecycle"
	"votiz/models"
	"votiz/visibility"
)

// isUniqueViolation detects a UNIQUE constraint failure on either backend.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation detects a missing parent row, which on this schema
// means the poll was deleted between lookup and insert.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// claimCode generates an invite code and runs insert to claim it. The code
// is checked for uniqueness at generation time, but two concurrent creations
// can pick the same code in the window before the insert; the UNIQUE column
// catches the loser, which retries once with a fresh code.
func claimCode(generate func() (string, error), insert func(code string) (int64, error)) (int64, string, error) {
	for attempt := 0; ; attempt++ {
		code, err := generate()
		if err != nil {
			return 0, "", err
		}
		id, err := insert(code)
		if err == nil {
			return id, code, nil
		}
		if !isUniqueViolation(err) || attempt > 0 {
			return 0, "", err
		}
	}
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// pollRow is a polls table row before per-viewer resolution.
type pollRow struct {
	ID                 int64
	Title              string
	OwnerID            int64
	ExpiresAt          time.Time
	ResultsVisibleLive bool
	EndedAt            *time.Time
	InviteCode         string
}

// resolvePoll turns a stored poll into the view one viewer may see:
// derived activity, whether the viewer voted, and tallies filtered through
// the visibility rule.
func resolvePoll(db *sql.DB, p pollRow, viewerID int64, now time.Time) (models.Poll, error) {
	rows, err := db.Query(`
		SELECT id, text FROM options WHERE poll_id = $1 ORDER BY position, id
	`, p.ID)
	if err != nil {
		return models.Poll{}, err
	}
	defer rows.Close()

	type optionRow struct {
		ID   int64
		Text string
	}
	var opts []optionRow
	for rows.Next() {
		var o optionRow
		if err := rows.Scan(&o.ID, &o.Text); err != nil {
			return models.Poll{}, err
		}
		opts = append(opts, o)
	}
	if err := rows.Err(); err != nil {
		return models.Poll{}, err
	}

	countRows, err := db.Query(`
		SELECT option_id, COUNT(*) FROM votes WHERE poll_id = $1 GROUP BY option_id
	`, p.ID)
	if err != nil {
		return models.Poll{}, err
	}
	defer countRows.Close()

	countByOption := make(map[int64]int)
	for countRows.Next() {
		var optionID int64
		var n int
		if err := countRows.Scan(&optionID, &n); err != nil {
			return models.Poll{}, err
		}
		countByOption[optionID] = n
	}
	if err := countRows.Err(); err != nil {
		return models.Poll{}, err
	}

	var hasVoted bool
	err = db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM votes WHERE poll_id = $1 AND user_id = $2)
	`, p.ID, viewerID).Scan(&hasVoted)
	if err != nil {
		return models.Poll{}, err
	}

	isActive := lifecycle.IsActive(p.ExpiresAt, p.EndedAt, now)

	counts := make([]int, len(opts))
	for i, o := range opts {
		counts[i] = countByOption[o.ID]
	}
	tallies, _ := visibility.Resolve(counts, hasVoted, isActive)

	options := make([]models.Option, len(opts))
	for i, o := range opts {
		options[i] = models.Option{
			ID:        o.ID,
			PollID:    p.ID,
			Text:      o.Text,
			VoteCount: tallies[i],
		}
	}

	return models.Poll{
		ID:                 p.ID,
		Title:              p.Title,
		OwnerID:            p.OwnerID,
		ExpiresAt:          p.ExpiresAt,
		ResultsVisibleLive: p.ResultsVisibleLive,
		EndedAt:            p.EndedAt,
		InviteCode:         p.InviteCode,
		Options:            options,
		UserVoted:          hasVoted,
		IsActive:           isActive,
	}, nil
}
