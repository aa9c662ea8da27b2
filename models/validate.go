// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Validate checks a create-poll request against the input limits and trims
// its text fields in place. earliest is the oldest acceptable deadline,
// captured by the caller before the user started typing, so a request
// prepared just before the minute ticked over is still judged fairly.
// The returned error text is user-facing.
//
// Both the server handler and the client run this, the client before any
// request is issued.
func (r *CreatePollRequest) Validate(earliest time.Time) error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return errors.New("Title is required")
	}
	// Limits are in characters, not bytes
	if utf8.RuneCountInString(r.Title) > TitleMaxLen {
		return fmt.Errorf("Title must be at most %d characters", TitleMaxLen)
	}
	if len(r.Options) < MinOptions {
		return fmt.Errorf("A poll needs at least %d options", MinOptions)
	}
	if len(r.Options) > MaxOptions {
		return fmt.Errorf("A poll can have at most %d options", MaxOptions)
	}
	for i, opt := range r.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return errors.New("All options must be filled in")
		}
		if utf8.RuneCountInString(opt) > OptionMaxLen {
			return fmt.Errorf("Options must be at most %d characters", OptionMaxLen)
		}
		r.Options[i] = opt
	}
	if r.ExpiresAt.IsZero() {
		return errors.New("Pick an end date")
	}
	if !r.ExpiresAt.After(earliest) {
		return errors.New("The end date cannot be in the past")
	}
	return nil
}
