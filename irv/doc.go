// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package irv computes single-seat winners with the Alternative Vote
(instant-runoff) method.

# Tallying

Tally takes the candidates and the ranked ballots of one election:

	result, err := irv.Tally(candidates, ballots)

Ballots list candidate IDs from most to least preferred. They are copied
before counting, so the caller's slices are never modified. Ballots are not
validated: unknown or repeated IDs only degrade the count.

# Algorithm

The Droop quota floor(N/2)+1 is computed once from the number of ballots
and never recomputed. Each round:

  - every ballot is credited to its most preferred candidate still running
  - the first candidate (in input order) at or above quota wins
  - otherwise the candidates tied for fewest votes are found
  - a tie goes to a runoff: ballots held by the other candidates are pooled
    and reallocated among the tied candidates only
  - a tie the runoff cannot separate is broken with the Picker
  - the trailing candidate is eliminated and its ballots move to their next
    preference, or are exhausted

The last candidate standing wins by default.

# Narration

A Tallier reports progress through its Narrator:

	t := irv.Tallier{
		Narrator: irv.LogNarrator{Logger: slog.Default()},
		Picker:   irv.RandomPicker{},
	}
	result, err := t.Tally(candidates, ballots)

# Randomness

Ties that survive a runoff are broken by Picker.Pick. RandomPicker uses the
process-wide source; tests substitute a PickerFunc for deterministic output.
Shuffle exposes the same source as a Fisher-Yates permutation.
*/
package irv
