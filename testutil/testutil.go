// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/instant-runoff/auth"
	"github.com/danielhkuo/instant-runoff/cliparse"
	"github.com/danielhkuo/instant-runoff/db"
	"github.com/danielhkuo/instant-runoff/irv"
	"github.com/danielhkuo/instant-runoff/models"
)

// TestPubKey is the creator key used by test elections
const TestPubKey = "-----BEGIN TEST KEY-----\ninstant-runoff\n-----END TEST KEY-----"

// SetupTestDB creates a fresh sqlite database with the full schema.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// sqlite allows one writer; a single connection avoids SQLITE_BUSY
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		DatabaseURL:  "test.db",
		DatabaseType: "sqlite",
		VoterSalt:    "test-voter-salt",
	}
}

// ElectionRequest builds a valid creation request for the given candidates
func ElectionRequest(candidates ...irv.Candidate) models.CreateElectionRequest {
	return models.CreateElectionRequest{
		Title:              "Test Election",
		Candidates:         candidates,
		CreatorFingerprint: auth.Fingerprint(TestPubKey),
		CreatorPubKey:      TestPubKey,
	}
}

// CreateTestElection inserts an election directly and returns its code.
// status should be "open" or "closed".
func CreateTestElection(t *testing.T, conn *sql.DB, status string, candidates ...irv.Candidate) string {
	t.Helper()

	code, _ := auth.GenerateElectionCode()

	var closedAt *time.Time
	if status == models.StatusClosed {
		now := time.Now().UTC()
		closedAt = &now
	}

	_, err := conn.Exec(`
		INSERT INTO election (code, title, status, creator_fingerprint, creator_pub_key, closed_at, created_at)
		VALUES ($1, 'Test Election', $2, $3, $4, $5, $6)
	`, code, status, auth.Fingerprint(TestPubKey), TestPubKey, closedAt, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	for _, c := range candidates {
		_, err := conn.Exec(`
			INSERT INTO candidate (election_code, id, name)
			VALUES ($1, $2, $3)
		`, code, int(c.ID), c.Name)
		if err != nil {
			t.Fatalf("Failed to create test candidate: %v", err)
		}
	}

	return code
}

// InsertTestBallot stores a ballot with no voter attached
func InsertTestBallot(t *testing.T, conn *sql.DB, code string, ballot irv.Ballot) string {
	t.Helper()

	ballotID := uuid.NewString()
	preferences, _ := json.Marshal(ballot)
	_, err := conn.Exec(`
		INSERT INTO ballot (id, election_code, preferences)
		VALUES ($1, $2, $3)
	`, ballotID, code, string(preferences))
	if err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}

	return ballotID
}
