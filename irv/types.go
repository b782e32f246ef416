// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package irv

import (
	"errors"
	"strconv"
)

var (
	ErrNoCandidates       = errors.New("election has no candidates")
	ErrDuplicateCandidate = errors.New("duplicate candidate id")
)

// CandidateID is the stable, externally assigned key of a candidate
type CandidateID int

func (id CandidateID) String() string {
	return strconv.Itoa(int(id))
}

type Candidate struct {
	ID   CandidateID `json:"id"`
	Name string      `json:"name"`
}

func (c Candidate) String() string {
	return c.Name + " (" + c.ID.String() + ")"
}

// Ballot lists candidate ids from most to least preferred.
// Ballots are expected to contain no duplicates and only known ids;
// the engine does not check either.
type Ballot []CandidateID

// TieBreak records how a round's tie for last place was resolved
type TieBreak string

const (
	TieBreakNone   TieBreak = ""
	TieBreakRunoff TieBreak = "runoff"
	TieBreakRandom TieBreak = "random"
)

// CandidateVotes is one candidate's count in a round
type CandidateVotes struct {
	Candidate Candidate `json:"candidate"`
	Votes     int       `json:"votes"`
}

// Round summarizes one evaluation of the main loop
type Round struct {
	Number int              `json:"number"`
	Votes  []CandidateVotes `json:"votes"`

	// Active is the number of ballots still credited to some candidate
	Active int `json:"active"`

	Tied       []CandidateID `json:"tied,omitempty"`
	TieBreak   TieBreak      `json:"tie_break,omitempty"`
	Eliminated *Candidate    `json:"eliminated,omitempty"`
}

// Result is the outcome of a tally
type Result struct {
	Winner Candidate `json:"winner"`
	Quota  int       `json:"quota"`

	// Majority reports whether the winner's final count reached quota.
	// A last candidate standing can win without it.
	Majority bool    `json:"majority"`
	Rounds   []Round `json:"rounds"`
}
