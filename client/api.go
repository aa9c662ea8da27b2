// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"votiz/apperr"
	"votiz/models"
)

// API talks to the votiz server over HTTP. It implements Store.
//
// The bearer token is the only state worth keeping: poll data is a
// disposable cache owned by the Loop, rebuilt from the server at will.
type API struct {
	baseURL string
	httpc   *http.Client
	token   string
}

func NewAPI(baseURL string) *API {
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs a bearer token obtained earlier.
func (a *API) SetToken(token string) { a.token = token }

// Token returns the current bearer token, "" when logged out.
func (a *API) Token() string { return a.token }

// LoadTokenFile restores a persisted token. A missing file means logged
// out, not an error.
func (a *API) LoadTokenFile(path string) error {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	a.token = strings.TrimSpace(string(b))
	return nil
}

// SaveTokenFile persists the token for the next session.
func (a *API) SaveTokenFile(path string) error {
	return os.WriteFile(path, []byte(a.token), 0o600)
}

// Register creates an account.
func (a *API) Register(ctx context.Context, email, password string) error {
	return a.do(ctx, http.MethodPost, "/register",
		models.RegisterRequest{Email: email, Password: password}, nil)
}

// Login exchanges credentials for a bearer token and installs it.
func (a *API) Login(ctx context.Context, email, password string) error {
	var resp models.TokenResponse
	err := a.do(ctx, http.MethodPost, "/token",
		models.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return err
	}
	a.token = resp.AccessToken
	return nil
}

// Logout drops the token.
func (a *API) Logout() { a.token = "" }

// Me returns the authenticated user.
func (a *API) Me(ctx context.Context) (models.User, error) {
	var u models.User
	err := a.do(ctx, http.MethodGet, "/users/me", nil, &u)
	return u, err
}

func (a *API) ListPolls(ctx context.Context) ([]models.Poll, error) {
	var polls []models.Poll
	err := a.do(ctx, http.MethodGet, "/polls", nil, &polls)
	return polls, err
}

func (a *API) CreatePoll(ctx context.Context, req models.CreatePollRequest) (models.Poll, error) {
	var p models.Poll
	err := a.do(ctx, http.MethodPost, "/polls", req, &p)
	return p, err
}

func (a *API) Vote(ctx context.Context, pollID, optionID int64) error {
	return a.do(ctx, http.MethodPost, "/vote",
		models.VoteRequest{PollID: pollID, OptionID: optionID}, nil)
}

func (a *API) Join(ctx context.Context, inviteCode string) (int64, error) {
	var resp models.JoinResponse
	err := a.do(ctx, http.MethodPost, "/join",
		models.JoinRequest{InviteCode: inviteCode}, &resp)
	return resp.PollID, err
}

func (a *API) Leave(ctx context.Context, pollID int64) error {
	return a.do(ctx, http.MethodDelete, "/polls/"+strconv.FormatInt(pollID, 10)+"/leave", nil, nil)
}

func (a *API) EndPoll(ctx context.Context, pollID int64) error {
	return a.do(ctx, http.MethodPatch, "/polls/"+strconv.FormatInt(pollID, 10)+"/end", nil, nil)
}

func (a *API) DeletePoll(ctx context.Context, pollID int64) error {
	return a.do(ctx, http.MethodDelete, "/polls/"+strconv.FormatInt(pollID, 10), nil, nil)
}

// do runs one request. Transport failures become ErrTransient; error
// responses become the taxonomy sentinel named by their wire code, with
// the server's message attached.
func (a *API) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope models.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		sentinel := apperr.FromWire(envelope.Code, resp.StatusCode)
		if envelope.Message != "" {
			return fmt.Errorf("%w: %s", sentinel, envelope.Message)
		}
		return sentinel
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
