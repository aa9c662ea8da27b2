// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package visibility computes what one viewer may see of a poll's results.

The rule is small and absolute: tallies are revealed iff the viewer has
voted or the poll has ended. A viewer who has not voted on an active poll
sees every tally hidden, whatever results_visible_live says.

	tallies, total := visibility.Resolve(counts, hasVoted, isActive)
	pct := visibility.Percent(tallies[0], total)

All functions are pure: same inputs, same outputs, no side effects. The
total sums only visible tallies; hidden ones contribute zero, which keeps
percentages honest when a mixed view ever appears.
*/
package visibility
