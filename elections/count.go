// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package elections

import (
	"log/slog"
	"time"

	"github.com/danielhkuo/instant-runoff/irv"
	"github.com/danielhkuo/instant-runoff/models"
)

// Count tallies an election's ballots. At most one count runs per election
// at a time; a second concurrent call returns ErrCountPending.
// The result is returned, never stored.
func (s *Service) Count(code string, narrator irv.Narrator) (*models.TallyResponse, error) {
	if !s.begin(code) {
		return nil, ErrCountPending
	}
	defer s.done(code)

	election, err := s.GetElection(code)
	if err != nil {
		return nil, err
	}

	ballots, err := s.Ballots(code)
	if err != nil {
		return nil, err
	}

	tallier := irv.Tallier{Narrator: narrator, Picker: s.picker()}
	result, err := tallier.Tally(election.Candidates, ballots)
	if err != nil {
		return nil, err
	}

	slog.Info("election counted", "code", code, "ballots", len(ballots),
		"winner", result.Winner.ID, "rounds", len(result.Rounds))

	return &models.TallyResponse{
		Code:        code,
		BallotCount: len(ballots),
		ComputedAt:  time.Now().UTC(),
		Result:      *result,
	}, nil
}

func (s *Service) begin(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending[code] {
		return false
	}
	s.pending[code] = true
	return true
}

func (s *Service) done(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, code)
}
