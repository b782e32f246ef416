// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for elections.

# Request Types

JSON documents read by the CLI:

  - CreateElectionRequest: title, candidates, creator_fingerprint, creator_pub_key
  - CastBallotRequest: code, voter_id, ballot ([]int, most preferred first)
  - RunRequest: candidates, ballots (tallied without a database)

# Response Types

JSON documents printed by the CLI:

  - CreateElectionResponse: code
  - CastBallotResponse: ballot_id, message
  - TallyResponse: code, ballot_count, computed_at, result
  - ErrorResponse: error, message

# Domain Types

  - Election: election metadata, candidates and creator identity

Candidates, ballots and tally results are the irv package's types.

# Constants

Status values:

	StatusOpen   = "open"
	StatusClosed = "closed"

Voting method:

	MethodIRV = "irv"
*/
package models
