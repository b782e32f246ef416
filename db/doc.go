// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on sqlite (modernc.org/sqlite) and PostgreSQL
(github.com/lib/pq).

# Tables

The schema includes:

  - election: Election metadata, creator identity, lifecycle state
  - candidate: Candidates per election, keyed by their election-local id
  - voter: Hashed voter ids per election with a shuffled position
  - ballot: Ranked preferences as a JSON array

# Relationships

	election 1──* candidate
	election 1──* voter
	election 1──* ballot

Ballots deliberately have no link to voters and no submission time, and
voter positions are reshuffled after every ballot, so neither table reveals
who cast which ballot or in what order.

All foreign keys use ON DELETE CASCADE.
*/
package db
