// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema is written to run unchanged on sqlite and postgres
const schema = `
-- Elections
CREATE TABLE IF NOT EXISTS election (
    code TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    method TEXT NOT NULL DEFAULT 'irv',
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
    creator_fingerprint TEXT NOT NULL,
    creator_pub_key TEXT NOT NULL,
    closed_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_election_status ON election(status);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    election_code TEXT NOT NULL REFERENCES election(code) ON DELETE CASCADE,
    id INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (election_code, id)
);

CREATE INDEX IF NOT EXISTS idx_candidate_election_code ON candidate(election_code);

-- Voters (hashed ids only, stored order is shuffled after every insert)
CREATE TABLE IF NOT EXISTS voter (
    election_code TEXT NOT NULL REFERENCES election(code) ON DELETE CASCADE,
    voter_hash TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (election_code, voter_hash)
);

CREATE INDEX IF NOT EXISTS idx_voter_position ON voter(election_code, position);

-- Ballots (no voter reference and no timestamp)
CREATE TABLE IF NOT EXISTS ballot (
    id TEXT PRIMARY KEY,
    election_code TEXT NOT NULL REFERENCES election(code) ON DELETE CASCADE,
    preferences TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ballot_election_code ON ballot(election_code);
`
