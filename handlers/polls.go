// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"votiz/apperr"
	"votiz/cliparse"
	"votiz/invite"
	"votiz/lifecycle"
	"votiz/middleware"
	"votiz/models"
)

type PollHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPollHandler(db *sql.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{db: db, cfg: cfg}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Error(w, apperr.ErrValidation, "Invalid JSON")
		return
	}

	now := time.Now().UTC()
	if err := req.Validate(now); err != nil {
		middleware.Error(w, apperr.ErrValidation, err.Error())
		return
	}

	generate := func() (string, error) {
		return invite.Generate(func(code string) (bool, error) {
			var exists bool
			err := h.db.QueryRow(`
				SELECT EXISTS(SELECT 1 FROM polls WHERE invite_code = $1)
			`, code).Scan(&exists)
			return exists, err
		})
	}

	pollID, code, err := claimCode(generate, func(code string) (int64, error) {
		return h.insertPoll(req, userID, code, now)
	})
	if err != nil {
		slog.Error("failed to create poll", "error", err)
		middleware.Internal(w)
		return
	}

	slog.Info("poll created", "poll_id", pollID, "owner_id", userID, "invite_code", code)

	poll, err := resolvePoll(h.db, pollRow{
		ID:                 pollID,
		Title:              req.Title,
		OwnerID:            userID,
		ExpiresAt:          req.ExpiresAt.UTC(),
		ResultsVisibleLive: req.ResultsVisibleLive,
		InviteCode:         code,
	}, userID, now)
	if err != nil {
		slog.Error("failed to resolve poll", "error", err, "poll_id", pollID)
		middleware.Internal(w)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// insertPoll writes the poll row and its options in one transaction and
// returns the new poll id.
func (h *PollHandler) insertPoll(req models.CreatePollRequest, userID int64, code string, now time.Time) (int64, error) {
	tx, err := h.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var pollID int64
	err = tx.QueryRow(`
		INSERT INTO polls (title, owner_id, expires_at, results_visible_live, invite_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, req.Title, userID, req.ExpiresAt.UTC(), req.ResultsVisibleLive, code, now).Scan(&pollID)
	if err != nil {
		return 0, err
	}

	for i, text := range req.Options {
		_, err = tx.Exec(`
			INSERT INTO options (poll_id, text, position)
			VALUES ($1, $2, $3)
		`, pollID, text, i)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return pollID, nil
}

// ListPolls handles GET /polls
// Returns every poll the viewer owns or joined, each resolved for that
// viewer: derived is_active, user_voted, and visibility-filtered tallies.
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	now := time.Now().UTC()

	rows, err := h.db.Query(`
		SELECT p.id, p.title, p.owner_id, p.expires_at, p.results_visible_live, p.ended_at, p.invite_code
		FROM polls p
		WHERE p.owner_id = $1
		   OR EXISTS (SELECT 1 FROM memberships m WHERE m.poll_id = p.id AND m.user_id = $2)
		ORDER BY p.id DESC
	`, userID, userID)
	if err != nil {
		slog.Error("failed to query polls", "error", err)
		middleware.Internal(w)
		return
	}
	defer rows.Close()

	var stored []pollRow
	for rows.Next() {
		var p pollRow
		if err := rows.Scan(&p.ID, &p.Title, &p.OwnerID, &p.ExpiresAt,
			&p.ResultsVisibleLive, &p.EndedAt, &p.InviteCode); err != nil {
			slog.Error("failed to scan poll", "error", err)
			middleware.Internal(w)
			return
		}
		stored = append(stored, p)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate polls", "error", err)
		middleware.Internal(w)
		return
	}

	polls := []models.Poll{}
	for _, p := range stored {
		poll, err := resolvePoll(h.db, p, userID, now)
		if err != nil {
			slog.Error("failed to resolve poll", "error", err, "poll_id", p.ID)
			middleware.Internal(w)
			return
		}
		polls = append(polls, poll)
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// EndPoll handles PATCH /polls/{id}/end
// Owner-only manual end: records ended_at, which reveals all tallies and
// blocks further voting. Irrevocable.
func (h *PollHandler) EndPoll(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	pollID, err := pathID(r)
	if err != nil {
		middleware.Error(w, apperr.ErrValidation, "Invalid poll id")
		return
	}

	var ownerID int64
	var expiresAt time.Time
	var endedAt *time.Time
	err = h.db.QueryRow(`
		SELECT owner_id, expires_at, ended_at FROM polls WHERE id = $1
	`, pollID).Scan(&ownerID, &expiresAt, &endedAt)

	if err == sql.ErrNoRows {
		middleware.Error(w, apperr.ErrNotFound, "Poll does not exist")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.Internal(w)
		return
	}

	if ownerID != userID {
		middleware.Error(w, apperr.ErrForbidden, "Only the owner can end the poll")
		return
	}

	now := time.Now().UTC()
	endTime, err := lifecycle.End(expiresAt, endedAt, now)
	if err != nil {
		middleware.Error(w, err, "This poll has already ended")
		return
	}

	// Guard against a concurrent manual end
	res, err := h.db.Exec(`
		UPDATE polls SET ended_at = $1 WHERE id = $2 AND ended_at IS NULL
	`, endTime, pollID)
	if err != nil {
		slog.Error("failed to end poll", "error", err)
		middleware.Internal(w)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.Error(w, apperr.ErrConflict, "This poll has already ended")
		return
	}

	slog.Info("poll ended", "poll_id", pollID, "owner_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.EndPollResponse{EndedAt: endTime})
}

// DeletePoll handles DELETE /polls/{id}
// Owner-only. Options, votes, and memberships go with the poll in one
// statement; foreign keys cascade, so no partial state is ever visible.
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	pollID, err := pathID(r)
	if err != nil {
		middleware.Error(w, apperr.ErrValidation, "Invalid poll id")
		return
	}

	var ownerID int64
	err = h.db.QueryRow(`SELECT owner_id FROM polls WHERE id = $1`, pollID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		middleware.Error(w, apperr.ErrNotFound, "Poll does not exist")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.Internal(w)
		return
	}

	if ownerID != userID {
		middleware.Error(w, apperr.ErrForbidden, "You cannot delete someone else's poll")
		return
	}

	if _, err := h.db.Exec(`DELETE FROM polls WHERE id = $1`, pollID); err != nil {
		slog.Error("failed to delete poll", "error", err)
		middleware.Internal(w)
		return
	}

	slog.Info("poll deleted", "poll_id", pollID, "owner_id", userID)

	w.WriteHeader(http.StatusNoContent)
}
