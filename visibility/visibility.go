// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package visibility

import (
	"math"

	"votiz/models"
)

// Reveal reports whether a viewer may see tallies for a poll. Counts are
// revealed once the viewer has voted or the poll has ended, and not before.
// results_visible_live deliberately plays no part here: the observed
// product behavior is voter-gated for everyone.
func Reveal(hasVoted, isActive bool) bool {
	return hasVoted || !isActive
}

// Resolve maps raw per-option counts to the tallies one viewer may see and
// returns the total of visible counts. Hidden options contribute zero to
// the total, so percentages are never computed from unseen data.
func Resolve(counts []int, hasVoted, isActive bool) ([]models.Tally, int) {
	tallies := make([]models.Tally, len(counts))
	total := 0
	reveal := Reveal(hasVoted, isActive)
	for i, c := range counts {
		if !reveal {
			tallies[i] = models.HiddenTally()
			continue
		}
		tallies[i] = models.VisibleTally(c)
		total += c
	}
	return tallies, total
}

// Percent returns the rounded share of the total for one tally, and 0 for
// hidden tallies or an empty total.
func Percent(t models.Tally, total int) int {
	count, ok := t.Count()
	if !ok || total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(count) / float64(total)))
}
