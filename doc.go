// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the instant-runoff command line tool.

instant-runoff runs single-seat elections decided by the Alternative Vote
(instant-runoff) method: voters rank candidates, and the trailing candidate
is eliminated round by round until one holds a majority.

# Commands

	instant-runoff create election.json
	instant-runoff vote -code <code> -voter <id> -ballot 2,1,3
	instant-runoff voters -code <code>
	instant-runoff close -code <code> -pubkey creator.pub
	instant-runoff -v tally -code <code>
	instant-runoff -v run ballots.json

run tallies a file holding candidates and ballots without touching a
database. Every command prints a JSON document on stdout; failures print an
error document on stderr and exit non-zero.

# Configuration

Global flags come before the command:

  - DATABASE_URL (-d): sqlite file (default: elections.db) or PostgreSQL URL
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - VOTER_SALT (--voter-salt): Secret for voter id hashing
  - -env: .env file to load (default: .env)
  - -v: narrate tallies as structured log lines

# Architecture

  - irv: the tally engine
  - elections: election storage, voter registry, counting
  - models: request/response types
  - auth: election codes, creator fingerprints, voter hashing
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
