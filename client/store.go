// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"

	"votiz/models"
)

// Store is the poll storage collaborator: everything the synchronization
// loop needs from the server, with tallies already resolved for the
// authenticated viewer. API is the HTTP implementation; tests substitute
// their own.
type Store interface {
	ListPolls(ctx context.Context) ([]models.Poll, error)
	CreatePoll(ctx context.Context, req models.CreatePollRequest) (models.Poll, error)
	Vote(ctx context.Context, pollID, optionID int64) error
	Join(ctx context.Context, inviteCode string) (int64, error)
	Leave(ctx context.Context, pollID int64) error
	EndPoll(ctx context.Context, pollID int64) error
	DeletePoll(ctx context.Context, pollID int64) error
}
