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

type MembershipHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewMembershipHandler(db *sql.DB, cfg cliparse.Config) *MembershipHandler {
	return &MembershipHandler{db: db, cfg: cfg}
}

// Join handles POST /join
// Resolves an invite code to its poll and records a membership. Joining a
// poll you already belong to - the owner included - is AlreadyMember, a
// user-facing condition rather than a failure.
func (h *MembershipHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var req models.JoinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Error(w, apperr.ErrValidation, "Invalid JSON")
		return
	}

	code := invite.Normalize(req.InviteCode)
	if code == "" {
		middleware.Error(w, apperr.ErrValidation, "Invite code is required")
		return
	}

	var pollID, ownerID int64
	var expiresAt time.Time
	var endedAt *time.Time
	err := h.db.QueryRow(`
		SELECT id, owner_id, expires_at, ended_at FROM polls WHERE invite_code = $1
	`, code).Scan(&pollID, &ownerID, &expiresAt, &endedAt)

	if err == sql.ErrNoRows {
		middleware.Error(w, apperr.ErrNotFound, "No poll with that code")
		return
	}
	if err != nil {
		slog.Error("failed to query poll by invite code", "error", err)
		middleware.Internal(w)
		return
	}

	if !lifecycle.IsActive(expiresAt, endedAt, time.Now().UTC()) {
		middleware.Error(w, apperr.ErrPollClosed, "This poll has already ended")
		return
	}

	// Ownership is implicit membership; there is no row to create
	if ownerID == userID {
		middleware.Error(w, apperr.ErrAlreadyMember, "You already belong to this poll")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO memberships (user_id, poll_id, joined_at)
		VALUES ($1, $2, $3)
	`, userID, pollID, time.Now().UTC())

	if err != nil {
		if isUniqueViolation(err) {
			middleware.Error(w, apperr.ErrAlreadyMember, "You already belong to this poll")
			return
		}
		if isForeignKeyViolation(err) {
			// Poll deleted between lookup and insert
			middleware.Error(w, apperr.ErrConflict, "This poll was just deleted")
			return
		}
		slog.Error("failed to insert membership", "error", err)
		middleware.Internal(w)
		return
	}

	slog.Info("user joined poll", "poll_id", pollID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.JoinResponse{PollID: pollID})
}

// Leave handles DELETE /polls/{id}/leave
// Members may walk away; owners must delete instead. Votes already cast
// stay: tallies are immutable history, not membership state.
func (h *MembershipHandler) Leave(w http.ResponseWriter, r *http.Request) {
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

	if ownerID == userID {
		middleware.Error(w, apperr.ErrValidation, "The owner cannot leave their own poll")
		return
	}

	res, err := h.db.Exec(`
		DELETE FROM memberships WHERE user_id = $1 AND poll_id = $2
	`, userID, pollID)
	if err != nil {
		slog.Error("failed to delete membership", "error", err)
		middleware.Internal(w)
		return
	}
	// Leaving twice is rejected, not silently repeated
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.Error(w, apperr.ErrNotFound, "You are not a member of this poll")
		return
	}

	slog.Info("user left poll", "poll_id", pollID, "user_id", userID)

	w.WriteHeader(http.StatusNoContent)
}
