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
	"votiz/lifecycle"
	"votiz/middleware"
	"votiz/models"
)

type VoteHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{db: db, cfg: cfg}
}

// Vote handles POST /vote
// One vote per user per poll, members and the owner only, active polls
// only. The (user_id, poll_id) primary key is the authority on duplicates;
// two simultaneous votes by one user race to the constraint, not to a
// read-then-write check.
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Error(w, apperr.ErrValidation, "Invalid JSON")
		return
	}

	var ownerID int64
	var expiresAt time.Time
	var endedAt *time.Time
	err := h.db.QueryRow(`
		SELECT owner_id, expires_at, ended_at FROM polls WHERE id = $1
	`, req.PollID).Scan(&ownerID, &expiresAt, &endedAt)

	if err == sql.ErrNoRows {
		middleware.Error(w, apperr.ErrNotFound, "Poll does not exist")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.Internal(w)
		return
	}

	if err := lifecycle.CheckVotable(expiresAt, endedAt, time.Now().UTC()); err != nil {
		middleware.Error(w, err, "Voting has ended")
		return
	}

	if ownerID != userID {
		var isMember bool
		err = h.db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM memberships WHERE user_id = $1 AND poll_id = $2)
		`, userID, req.PollID).Scan(&isMember)
		if err != nil {
			slog.Error("failed to query membership", "error", err)
			middleware.Internal(w)
			return
		}
		if !isMember {
			middleware.Error(w, apperr.ErrForbidden, "You do not have access to this poll")
			return
		}
	}

	var validOption bool
	err = h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM options WHERE id = $1 AND poll_id = $2)
	`, req.OptionID, req.PollID).Scan(&validOption)
	if err != nil {
		slog.Error("failed to query option", "error", err)
		middleware.Internal(w)
		return
	}
	if !validOption {
		middleware.Error(w, apperr.ErrValidation, "Option does not belong to this poll")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO votes (user_id, poll_id, option_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, userID, req.PollID, req.OptionID, time.Now().UTC())

	if err != nil {
		if isUniqueViolation(err) {
			middleware.Error(w, apperr.ErrAlreadyVoted, "You have already voted in this poll")
			return
		}
		if isForeignKeyViolation(err) {
			middleware.Error(w, apperr.ErrConflict, "This poll was just deleted")
			return
		}
		slog.Error("failed to insert vote", "error", err)
		middleware.Internal(w)
		return
	}

	slog.Info("vote cast", "poll_id", req.PollID, "option_id", req.OptionID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{Message: "Vote recorded"})
}
