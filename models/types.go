package models

import (
	"time"

	"github.com/danielhkuo/instant-runoff/irv"
)

// Election status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Voting method constants
const (
	MethodIRV = "irv"
)

// Request types

// CreateElectionRequest is the JSON document accepted by `create`
type CreateElectionRequest struct {
	Title      string          `json:"title"`
	Candidates []irv.Candidate `json:"candidates"`

	// Creator identity: fingerprint must match the public key
	CreatorFingerprint string `json:"creator_fingerprint"`
	CreatorPubKey      string `json:"creator_pub_key"`
}

type CastBallotRequest struct {
	Code    string     `json:"code"`
	VoterID string     `json:"voter_id"`
	Ballot  irv.Ballot `json:"ballot"`
}

// RunRequest is a self-contained election for `run`: no database involved
type RunRequest struct {
	Candidates []irv.Candidate `json:"candidates"`
	Ballots    []irv.Ballot    `json:"ballots"`
}

// Response types

type CreateElectionResponse struct {
	Code string `json:"code"`
}

type CastBallotResponse struct {
	BallotID string `json:"ballot_id"`
	Message  string `json:"message"`
}

type TallyResponse struct {
	Code        string     `json:"code,omitempty"`
	BallotCount int        `json:"ballot_count"`
	ComputedAt  time.Time  `json:"computed_at"`
	Result      irv.Result `json:"result"`
}

// Domain types

type Election struct {
	Code               string          `json:"code"`
	Title              string          `json:"title"`
	Method             string          `json:"method"`
	Status             string          `json:"status"`
	Candidates         []irv.Candidate `json:"candidates"`
	CreatorFingerprint string          `json:"creator_fingerprint"`
	CreatorPubKey      string          `json:"creator_pub_key"`
	ClosedAt           *time.Time      `json:"closed_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
