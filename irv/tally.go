// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package irv

import (
	"slices"

	"github.com/dustin/go-humanize"
)

// Tallier runs instant-runoff tallies. The zero value is silent and breaks
// ties with RandomPicker.
type Tallier struct {
	Narrator Narrator
	Picker   Picker
}

// Tally runs a tally with the default Tallier
func Tally(candidates []Candidate, ballots []Ballot) (*Result, error) {
	var t Tallier
	return t.Tally(candidates, ballots)
}

// Quota returns the Droop quota for a single seat: floor(n/2) + 1
func Quota(ballots int) int {
	return ballots/2 + 1
}

// Tally computes the winner of candidates given ballots. Neither argument is
// modified. The quota is fixed from len(ballots) and does not shrink as
// ballots are exhausted.
func (t *Tallier) Tally(candidates []Candidate, ballots []Ballot) (*Result, error) {
	state, err := newRoundState(candidates, ballots)
	if err != nil {
		return nil, err
	}

	quota := Quota(len(ballots))
	t.narrate("beginning tally of %s ballots", humanize.Comma(int64(len(ballots))))
	t.narrate("Droop quota set at %s", votes(quota))
	t.narrate("candidates in election: %s", state.describe(state.order))

	state.seed(state.fresh())

	result := &Result{Quota: quota}
	for len(state.buckets) > 1 {
		ids := state.active()
		round := Round{
			Number: len(result.Rounds) + 1,
			Votes:  state.votes(ids),
			Active: state.total(),
		}
		t.narrate("%s round distribution: %s", humanize.Ordinal(round.Number), state.distribution())

		out := state.evaluate(ids, quota)
		if out.won {
			result.Rounds = append(result.Rounds, round)
			result.Winner = state.candidates[out.winner]
			result.Majority = true
			t.narrate("WINNER: %s has a majority with %s", result.Winner, votes(len(state.buckets[out.winner])))
			return result, nil
		}

		losers := out.losers
		if len(losers) > 1 {
			round.Tied = slices.Clone(losers)
			round.TieBreak = TieBreakRunoff
			t.narrate("preparing runoff among: %s", state.describe(losers))
			losers = t.runoff(state, losers)

			if len(losers) > 1 {
				round.TieBreak = TieBreakRandom
				t.narrate("will randomly break tie among: %s", state.describe(losers))
				i := t.picker().Pick(len(losers))
				losers = losers[i : i+1]
			}
		}

		loser := state.candidates[losers[0]]
		round.Eliminated = &loser
		result.Rounds = append(result.Rounds, round)
		t.narrate("biggest loser of the %s round is %s", humanize.Ordinal(round.Number), loser)
		t.narrate("redistributing %s", votes(len(state.buckets[loser.ID])))
		state.eliminate(loser.ID)
	}

	ids := state.active()
	result.Winner = state.candidates[ids[0]]
	result.Majority = len(state.buckets[ids[0]]) >= quota
	result.Rounds = append(result.Rounds, Round{
		Number: len(result.Rounds) + 1,
		Votes:  state.votes(ids),
		Active: state.total(),
	})
	t.narrate("WINNER: %s is the only remaining candidate and wins by default", result.Winner)

	return result, nil
}

// runoff tries to separate candidates tied for last. Ballots held by every
// other active candidate are pooled and reallocated among the tied
// candidates only; the trailing subset of the tied set is returned.
func (t *Tallier) runoff(state *roundState, tied []CandidateID) []CandidateID {
	restricted := state.restrict(tied)

	var pool []activeBallot
	for _, id := range state.active() {
		if !slices.Contains(tied, id) {
			pool = append(pool, state.buckets[id]...)
		}
	}

	for len(tied) > 1 && restricted.hasPreferences(pool) {
		t.narrate("runoff redistribution of %s pooled ballots", humanize.Comma(int64(len(pool))))
		restricted.reallocate(pool)
		pool = nil
		t.narrate("runoff distribution: %s", restricted.distribution())

		next := restricted.trailing(tied)
		if len(next) == len(tied) {
			break
		}
		tied = next
	}

	return tied
}

func (t *Tallier) picker() Picker {
	if t.Picker == nil {
		return RandomPicker{}
	}
	return t.Picker
}
