// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperr

import (
	"errors"
	"net/http"
)

// Sentinel conditions shared by the server handlers and the client.
// AlreadyMember and AlreadyVoted are recoverable user-facing conditions,
// not system failures; callers decide how loudly to report them.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyMember   = errors.New("already a member")
	ErrAlreadyVoted    = errors.New("already voted")
	ErrPollClosed      = errors.New("poll closed")
	ErrForbidden       = errors.New("forbidden")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrTransient       = errors.New("transient failure")
)

// Wire codes. Statuses alone cannot distinguish the 409 family, so error
// responses carry one of these in the "code" field.
const (
	CodeUnauthenticated = "unauthenticated"
	CodeNotFound        = "not_found"
	CodeAlreadyMember   = "already_member"
	CodeAlreadyVoted    = "already_voted"
	CodePollClosed      = "poll_closed"
	CodeForbidden       = "forbidden"
	CodeValidation      = "validation_failed"
	CodeConflict        = "conflict"
)

var codes = map[string]error{
	CodeUnauthenticated: ErrUnauthenticated,
	CodeNotFound:        ErrNotFound,
	CodeAlreadyMember:   ErrAlreadyMember,
	CodeAlreadyVoted:    ErrAlreadyVoted,
	CodePollClosed:      ErrPollClosed,
	CodeForbidden:       ErrForbidden,
	CodeValidation:      ErrValidation,
	CodeConflict:        ErrConflict,
}

// Code returns the wire code for a sentinel, or "" for unrecognized errors.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrAlreadyMember):
		return CodeAlreadyMember
	case errors.Is(err, ErrAlreadyVoted):
		return CodeAlreadyVoted
	case errors.Is(err, ErrPollClosed):
		return CodePollClosed
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrConflict):
		return CodeConflict
	}
	return ""
}

// HTTPStatus maps a sentinel to its response status. Unrecognized errors
// map to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAlreadyMember),
		errors.Is(err, ErrAlreadyVoted),
		errors.Is(err, ErrPollClosed),
		errors.Is(err, ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// FromWire reconstructs a sentinel from a response's code and status.
// The code wins; the status is the fallback for older servers that only
// send statuses.
func FromWire(code string, status int) error {
	if err, ok := codes[code]; ok {
		return err
	}
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusConflict:
		return ErrConflict
	}
	return ErrTransient
}
