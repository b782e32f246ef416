// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package elections

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/danielhkuo/instant-runoff/auth"
	"github.com/danielhkuo/instant-runoff/irv"
	"github.com/danielhkuo/instant-runoff/models"
)

// HasVoted reports whether voterID has already cast a ballot in the election
func (s *Service) HasVoted(code, voterID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM voter
			WHERE election_code = $1 AND voter_hash = $2
		)
	`, code, auth.HashVoterID(voterID, s.cfg.VoterSalt)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check voter: %w", err)
	}
	return exists, nil
}

// CastBallot records a voter and their ballot. The ballot row is not linked
// to the voter, and the voter list is reshuffled so its order carries no
// information about who voted when. Ballot contents are stored as given.
func (s *Service) CastBallot(code, voterID string, ballot irv.Ballot) (string, error) {
	voterHash := auth.HashVoterID(voterID, s.cfg.VoterSalt)

	preferences, err := json.Marshal(ballot)
	if err != nil {
		return "", fmt.Errorf("failed to encode ballot: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRow(`SELECT status FROM election WHERE code = $1`, code).Scan(&status)
	if err == sql.ErrNoRows {
		return "", ErrElectionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query election: %w", err)
	}
	if status != models.StatusOpen {
		return "", ErrElectionClosed
	}

	var exists bool
	err = tx.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM voter
			WHERE election_code = $1 AND voter_hash = $2
		)
	`, code, voterHash).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("failed to check voter: %w", err)
	}
	if exists {
		return "", ErrAlreadyVoted
	}

	var count int
	err = tx.QueryRow(`SELECT COUNT(*) FROM voter WHERE election_code = $1`, code).Scan(&count)
	if err != nil {
		return "", fmt.Errorf("failed to count voters: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO voter (election_code, voter_hash, position)
		VALUES ($1, $2, $3)
	`, code, voterHash, count)
	if err != nil {
		return "", fmt.Errorf("failed to insert voter: %w", err)
	}

	ballotID := uuid.NewString()
	_, err = tx.Exec(`
		INSERT INTO ballot (id, election_code, preferences)
		VALUES ($1, $2, $3)
	`, ballotID, code, string(preferences))
	if err != nil {
		return "", fmt.Errorf("failed to insert ballot: %w", err)
	}

	if err := s.shuffleVoters(tx, code); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit ballot: %w", err)
	}

	slog.Info("ballot cast", "code", code, "ballot_id", ballotID)

	return ballotID, nil
}

// shuffleVoters assigns fresh random positions to every voter in the election
func (s *Service) shuffleVoters(tx *sql.Tx, code string) error {
	hashes, err := voterHashes(tx, code)
	if err != nil {
		return err
	}

	irv.Shuffle(s.picker(), len(hashes), func(i, j int) {
		hashes[i], hashes[j] = hashes[j], hashes[i]
	})

	for position, hash := range hashes {
		_, err := tx.Exec(`
			UPDATE voter SET position = $1
			WHERE election_code = $2 AND voter_hash = $3
		`, position, code, hash)
		if err != nil {
			return fmt.Errorf("failed to reorder voters: %w", err)
		}
	}
	return nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

func voterHashes(q queryer, code string) ([]string, error) {
	rows, err := q.Query(`
		SELECT voter_hash FROM voter WHERE election_code = $1 ORDER BY position
	`, code)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		hashes = append(hashes, hash)
	}
	return hashes, rows.Err()
}

// Voters returns the hashed voter ids of an election in stored order
func (s *Service) Voters(code string) ([]string, error) {
	if _, err := s.GetElection(code); err != nil {
		return nil, err
	}
	return voterHashes(s.db, code)
}
