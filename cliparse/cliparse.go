package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Commands that need no database
var offlineCommands = map[string]bool{
	"run": true,
}

var knownCommands = map[string]bool{
	"create": true,
	"vote":   true,
	"tally":  true,
	"close":  true,
	"voters": true,
	"run":    true,
}

type Config struct {
	DatabaseURL  string
	DatabaseType string
	VoterSalt    string
	EnvFile      string
	Verbose      bool

	// Command is the subcommand; Args are the arguments following it
	Command string
	Args    []string
}

// ParseFlags reads global flags, then the .env file, then the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("instant-runoff", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.EnvFile, "env", ".env", "Environment file to load")
	fs.BoolVar(&cfg.Verbose, "v", false, "Narrate tallies as they run")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.VoterSalt, "voter-salt", "", "Voter id salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return Config{}, errors.New("command required (create, vote, tally, close, voters, run)")
	}
	cfg.Command, cfg.Args = rest[0], rest[1:]
	if !knownCommands[cfg.Command] {
		return Config{}, fmt.Errorf("unknown command %q", cfg.Command)
	}

	// Existing environment variables win over the file
	if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
	}

	if offlineCommands[cfg.Command] {
		return cfg, nil
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "elections.db" // default
	}

	// Secrets - MUST be provided
	if cfg.VoterSalt == "" {
		cfg.VoterSalt = os.Getenv("VOTER_SALT")
	}
	if cfg.VoterSalt == "" {
		return Config{}, errors.New("VOTER_SALT required")
	}

	return cfg, nil
}

// DriverName maps the database type to its database/sql driver
func (c Config) DriverName() string {
	if c.DatabaseType == "postgres" {
		return "postgres"
	}
	return "sqlite"
}
