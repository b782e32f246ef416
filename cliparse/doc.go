// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - DatabaseURL: sqlite file or PostgreSQL connection string
  - DatabaseType: "sqlite" (default) or "postgres"
  - VoterSalt: Secret for voter id hashing (required)
  - EnvFile: .env file loaded before reading the environment
  - Verbose: narrate tallies through slog
  - Command, Args: the subcommand and its own arguments

# CLI Flags

	-d            Database URL
	-t            Database type
	-env          Environment file (default: .env)
	-v            Verbose narration
	--voter-salt  Voter id salt

# Environment Variables

Flags fall back to environment variables, which may come from the .env file:

	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	VOTER_SALT    → --voter-salt

CLI flags take precedence over environment variables, and variables already
set in the environment take precedence over the .env file.

# Validation

ParseFlags returns an error if:

  - no command, or an unknown command, is given
  - DATABASE_TYPE is neither sqlite nor postgres
  - DATABASE_URL is missing for postgres
  - VOTER_SALT is missing

The run command tallies a file directly and skips database settings.

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
*/
package cliparse
