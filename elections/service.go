// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package elections

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/instant-runoff/auth"
	"github.com/danielhkuo/instant-runoff/cliparse"
	"github.com/danielhkuo/instant-runoff/irv"
	"github.com/danielhkuo/instant-runoff/models"
)

var (
	ErrElectionNotFound = errors.New("election not found")
	ErrElectionClosed   = errors.New("election is closed")
	ErrAlreadyVoted     = errors.New("voter has already voted")
	ErrCountPending     = errors.New("a count is already running for this election")
	ErrInvalidElection  = errors.New("invalid election")
)

type Service struct {
	db  *sql.DB
	cfg cliparse.Config

	// Picker drives voter list shuffles and random tie-breaks.
	// Nil means irv.RandomPicker.
	Picker irv.Picker

	mu      sync.Mutex
	pending map[string]bool
}

func NewService(db *sql.DB, cfg cliparse.Config) *Service {
	return &Service{db: db, cfg: cfg, pending: make(map[string]bool)}
}

func (s *Service) picker() irv.Picker {
	if s.Picker == nil {
		return irv.RandomPicker{}
	}
	return s.Picker
}

// CreateElection stores a new open election and returns it with its code
func (s *Service) CreateElection(req models.CreateElectionRequest) (models.Election, error) {
	if err := validateElection(req); err != nil {
		return models.Election{}, err
	}
	if err := auth.VerifyCreator(req.CreatorFingerprint, req.CreatorPubKey); err != nil {
		return models.Election{}, err
	}

	code, err := auth.GenerateElectionCode()
	if err != nil {
		return models.Election{}, err
	}

	election := models.Election{
		Code:               code,
		Title:              req.Title,
		Method:             models.MethodIRV,
		Status:             models.StatusOpen,
		Candidates:         req.Candidates,
		CreatorFingerprint: strings.ToLower(req.CreatorFingerprint),
		CreatorPubKey:      strings.TrimSpace(req.CreatorPubKey),
		CreatedAt:          time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO election (code, title, method, status, creator_fingerprint, creator_pub_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, election.Code, election.Title, election.Method, election.Status,
		election.CreatorFingerprint, election.CreatorPubKey, election.CreatedAt)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to insert election: %w", err)
	}

	for _, c := range election.Candidates {
		_, err = tx.Exec(`
			INSERT INTO candidate (election_code, id, name)
			VALUES ($1, $2, $3)
		`, election.Code, int(c.ID), c.Name)
		if err != nil {
			return models.Election{}, fmt.Errorf("failed to insert candidate %d: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Election{}, fmt.Errorf("failed to commit election: %w", err)
	}

	slog.Info("election created", "code", election.Code, "candidates", len(election.Candidates))

	return election, nil
}

func validateElection(req models.CreateElectionRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidElection)
	}
	if len(req.Candidates) == 0 {
		return fmt.Errorf("%w: at least one candidate is required", ErrInvalidElection)
	}

	seen := make(map[irv.CandidateID]bool, len(req.Candidates))
	for _, c := range req.Candidates {
		if c.Name == "" {
			return fmt.Errorf("%w: candidate %d has no name", ErrInvalidElection, c.ID)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: %w: %d", ErrInvalidElection, irv.ErrDuplicateCandidate, c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// GetElection loads an election and its candidates ordered by id
func (s *Service) GetElection(code string) (models.Election, error) {
	var election models.Election
	err := s.db.QueryRow(`
		SELECT code, title, method, status, creator_fingerprint, creator_pub_key, closed_at, created_at
		FROM election
		WHERE code = $1
	`, code).Scan(
		&election.Code, &election.Title, &election.Method, &election.Status,
		&election.CreatorFingerprint, &election.CreatorPubKey, &election.ClosedAt, &election.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Election{}, ErrElectionNotFound
	}
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to query election: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, name FROM candidate WHERE election_code = $1 ORDER BY id
	`, code)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return models.Election{}, fmt.Errorf("failed to scan candidate: %w", err)
		}
		election.Candidates = append(election.Candidates, irv.Candidate{ID: irv.CandidateID(id), Name: name})
	}

	return election, rows.Err()
}

// Ballots returns every ballot cast in an election. Order follows the
// random ballot ids, not submission order.
func (s *Service) Ballots(code string) ([]irv.Ballot, error) {
	rows, err := s.db.Query(`
		SELECT preferences FROM ballot WHERE election_code = $1 ORDER BY id
	`, code)
	if err != nil {
		return nil, fmt.Errorf("failed to query ballots: %w", err)
	}
	defer rows.Close()

	var ballots []irv.Ballot
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan ballot: %w", err)
		}
		var b irv.Ballot
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			return nil, fmt.Errorf("failed to parse ballot: %w", err)
		}
		ballots = append(ballots, b)
	}

	return ballots, rows.Err()
}

// CloseElection stops ballot collection. Only the creator, proven by the
// public key matching the stored fingerprint, may close an election.
func (s *Service) CloseElection(code, pubKey string) (time.Time, error) {
	election, err := s.GetElection(code)
	if err != nil {
		return time.Time{}, err
	}
	if err := auth.VerifyCreator(election.CreatorFingerprint, pubKey); err != nil {
		return time.Time{}, err
	}
	if election.Status == models.StatusClosed {
		return time.Time{}, ErrElectionClosed
	}

	closedAt := time.Now().UTC()
	_, err = s.db.Exec(`
		UPDATE election
		SET status = $1, closed_at = $2
		WHERE code = $3
	`, models.StatusClosed, closedAt, code)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to close election: %w", err)
	}

	slog.Info("election closed", "code", code)

	return closedAt, nil
}
