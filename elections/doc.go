// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package elections stores elections, voters and ballots, and runs counts.

# Service

A Service wraps a *sql.DB and the parsed configuration:

	svc := elections.NewService(db, cfg)

# Election Lifecycle

Elections are created open and can be closed by their creator:

	election, err := svc.CreateElection(req) // verifies creator fingerprint
	closedAt, err := svc.CloseElection(code, pubKey)

Creating an election requires a title, at least one candidate, unique
candidate ids, and a creator fingerprint matching the creator's public key.

# Voter Registry

Voter ids are hashed with VOTER_SALT before they reach the database:

	voted, err := svc.HasVoted(code, voterID)
	ballotID, err := svc.CastBallot(code, voterID, ballot)

CastBallot refuses a second ballot from the same voter (ErrAlreadyVoted) and
ballots for closed elections (ErrElectionClosed). After each ballot the
stored voter list is reshuffled with irv.Shuffle, and ballots are stored
without any voter reference, so voters cannot be matched to ballots.

Ballot contents are not validated.

# Counting

	resp, err := svc.Count(code, narrator)

Count runs an instant-runoff tally over the stored ballots. Only one count
per election may run at a time; a concurrent call returns ErrCountPending.
Results are returned to the caller and not persisted.
*/
package elections
