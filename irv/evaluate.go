// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package irv

// outcome is either a winner or the set of candidates tied for fewest votes
type outcome struct {
	winner CandidateID
	won    bool
	losers []CandidateID
}

// evaluate returns the first candidate in ids whose bucket reaches quota,
// or else every candidate tied at the minimum count
func (s *roundState) evaluate(ids []CandidateID, quota int) outcome {
	for _, id := range ids {
		if len(s.buckets[id]) >= quota {
			return outcome{winner: id, won: true}
		}
	}
	return outcome{losers: s.trailing(ids)}
}

// trailing returns the candidates in ids sharing the lowest count.
// Ties are not broken here.
func (s *roundState) trailing(ids []CandidateID) []CandidateID {
	var losers []CandidateID
	minVotes := -1
	for _, id := range ids {
		n := len(s.buckets[id])
		switch {
		case minVotes < 0 || n < minVotes:
			minVotes = n
			losers = append(losers[:0], id)
		case n == minVotes:
			losers = append(losers, id)
		}
	}
	return losers
}
