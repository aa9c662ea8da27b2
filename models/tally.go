// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"strconv"
)

// Tally is a per-viewer vote count for an option: either a visible
// non-negative count or hidden. Representing "hidden" as its own state
// keeps the sentinel out of arithmetic; only the wire format uses -1,
// which existing clients already understand.
type Tally struct {
	count  int
	hidden bool
}

// VisibleTally returns a tally the viewer may see.
func VisibleTally(count int) Tally {
	if count < 0 {
		count = 0
	}
	return Tally{count: count}
}

// HiddenTally returns the tally withheld from the viewer.
func HiddenTally() Tally {
	return Tally{hidden: true}
}

// Count returns the visible count and true, or 0 and false when hidden.
func (t Tally) Count() (int, bool) {
	if t.hidden {
		return 0, false
	}
	return t.count, true
}

// Hidden reports whether the viewer may not see this tally.
func (t Tally) Hidden() bool {
	return t.hidden
}

func (t Tally) String() string {
	if t.hidden {
		return "hidden"
	}
	return strconv.Itoa(t.count)
}

// MarshalJSON writes the count, or -1 when hidden.
func (t Tally) MarshalJSON() ([]byte, error) {
	if t.hidden {
		return []byte("-1"), nil
	}
	return []byte(strconv.Itoa(t.count)), nil
}

// UnmarshalJSON reads a count; any negative value means hidden.
func (t *Tally) UnmarshalJSON(data []byte) error {
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("invalid tally %q: %w", data, err)
	}
	if n < 0 {
		*t = HiddenTally()
		return nil
	}
	*t = VisibleTally(n)
	return nil
}
