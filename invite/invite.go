// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package invite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CodeLength is the invite code length in characters. Six uppercase hex
// characters give a 16^6 space, plenty for the number of polls live at once.
const CodeLength = 6

// maxAttempts bounds the collision retry loop. Collisions are already rare
// at this space; hitting the bound means the code column is nearly full or
// the existence check is broken.
const maxAttempts = 5

var ErrExhausted = errors.New("invite: could not find a free code")

// NewCode returns a fresh random code. Codes are the leading hex of a v4
// UUID, uppercased.
func NewCode() string {
	id := uuid.New()
	return strings.ToUpper(id.String()[:CodeLength])
}

// Normalize prepares user-typed input for lookup: surrounding whitespace
// dropped, case folded to the stored form.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Generate returns a code that the taken check does not know yet, retrying
// on collision. Uniqueness is enforced here at creation time, not left to
// chance; the database UNIQUE constraint stays as the backstop for races.
func Generate(taken func(code string) (bool, error)) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		code := NewCode()
		inUse, err := taken(code)
		if err != nil {
			return "", fmt.Errorf("invite: checking code: %w", err)
		}
		if !inUse {
			return code, nil
		}
	}
	return "", ErrExhausted
}
