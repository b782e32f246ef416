// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package irv

import (
	"fmt"
	"slices"
)

// activeBallot is a ballot paired with the part of its preference list
// that has not been consumed yet: table[index][cursor:]
type activeBallot struct {
	index  int
	cursor int
}

// roundState maps every candidate still in the running to the ballots
// currently credited to it
type roundState struct {
	table      []Ballot // private copies of the caller's ballots, never modified
	candidates map[CandidateID]Candidate
	order      []CandidateID // enumeration order, fixed at construction
	buckets    map[CandidateID][]activeBallot
}

func newRoundState(candidates []Candidate, ballots []Ballot) (*roundState, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	s := &roundState{
		table:      make([]Ballot, len(ballots)),
		candidates: make(map[CandidateID]Candidate, len(candidates)),
		order:      make([]CandidateID, 0, len(candidates)),
		buckets:    make(map[CandidateID][]activeBallot, len(candidates)),
	}
	for _, c := range candidates {
		if _, dup := s.candidates[c.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateCandidate, c.ID)
		}
		s.candidates[c.ID] = c
		s.order = append(s.order, c.ID)
		s.buckets[c.ID] = nil
	}
	for i, b := range ballots {
		s.table[i] = slices.Clone(b)
	}

	return s, nil
}

// fresh returns one unconsumed active ballot per ballot in the table
func (s *roundState) fresh() []activeBallot {
	pool := make([]activeBallot, len(s.table))
	for i := range pool {
		pool[i] = activeBallot{index: i}
	}
	return pool
}

// active lists the candidates still holding a bucket, in enumeration order
func (s *roundState) active() []CandidateID {
	ids := make([]CandidateID, 0, len(s.buckets))
	for _, id := range s.order {
		if _, ok := s.buckets[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// total counts the ballots credited to any candidate
func (s *roundState) total() int {
	n := 0
	for _, bucket := range s.buckets {
		n += len(bucket)
	}
	return n
}

func (s *roundState) votes(ids []CandidateID) []CandidateVotes {
	out := make([]CandidateVotes, len(ids))
	for i, id := range ids {
		out[i] = CandidateVotes{Candidate: s.candidates[id], Votes: len(s.buckets[id])}
	}
	return out
}

// restrict returns a state holding copies of the given candidates' buckets.
// Appending to the restricted buckets never touches s.
func (s *roundState) restrict(ids []CandidateID) *roundState {
	r := &roundState{
		table:      s.table,
		candidates: s.candidates,
		order:      s.order,
		buckets:    make(map[CandidateID][]activeBallot, len(ids)),
	}
	for _, id := range ids {
		r.buckets[id] = slices.Clone(s.buckets[id])
	}
	return r
}

// seed performs the initial distribution: each ballot is credited to its
// first preference without searching further. Empty ballots, and ballots
// whose first preference holds no bucket, are dropped.
func (s *roundState) seed(pool []activeBallot) {
	for _, b := range pool {
		row := s.table[b.index]
		if b.cursor >= len(row) {
			continue
		}
		id := row[b.cursor]
		b.cursor++
		if bucket, ok := s.buckets[id]; ok {
			s.buckets[id] = append(bucket, b)
		}
	}
}

// reallocate credits each ballot to its next preference that still holds a
// bucket. Ballots that run out of preferences first are discarded.
func (s *roundState) reallocate(pool []activeBallot) {
	for _, b := range pool {
		s.place(b)
	}
}

func (s *roundState) place(b activeBallot) {
	row := s.table[b.index]
	for b.cursor < len(row) {
		id := row[b.cursor]
		b.cursor++
		if bucket, ok := s.buckets[id]; ok {
			s.buckets[id] = append(bucket, b)
			return
		}
	}
}

// eliminate reallocates the candidate's ballots and then drops its bucket
func (s *roundState) eliminate(id CandidateID) {
	bucket, ok := s.buckets[id]
	if !ok {
		return
	}
	s.reallocate(bucket)
	delete(s.buckets, id)
}

// hasPreferences reports whether any ballot in pool has a preference left
func (s *roundState) hasPreferences(pool []activeBallot) bool {
	for _, b := range pool {
		if b.cursor < len(s.table[b.index]) {
			return true
		}
	}
	return false
}
