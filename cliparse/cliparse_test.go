// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

// noEnvFile points at a file that does not exist
func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("VOTER_SALT", "test-salt")

	cfg, err := ParseFlags([]string{"-env", noEnvFile(t), "tally", "-code", "abc"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DatabaseURL != "postgres://test" {
		t.Errorf("expected postgres://test, got %s", cfg.DatabaseURL)
	}
	if cfg.DriverName() != "postgres" {
		t.Errorf("expected postgres driver, got %s", cfg.DriverName())
	}
	if cfg.Command != "tally" || len(cfg.Args) != 2 {
		t.Errorf("unexpected command %s %v", cfg.Command, cfg.Args)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "env.db")
	t.Setenv("VOTER_SALT", "env-salt")

	cfg, err := ParseFlags([]string{"-env", noEnvFile(t), "-d", "cli.db", "-voter-salt", "cli-salt", "-v", "vote"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DatabaseURL != "cli.db" {
		t.Errorf("CLI should override env: expected cli.db, got %s", cfg.DatabaseURL)
	}
	if cfg.VoterSalt != "cli-salt" {
		t.Errorf("CLI should override env: expected cli-salt, got %s", cfg.VoterSalt)
	}
	if !cfg.Verbose {
		t.Error("expected verbose")
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("VOTER_SALT", "s")

	cfg, err := ParseFlags([]string{"-env", noEnvFile(t), "create", "election.json"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DatabaseType != "sqlite" || cfg.DriverName() != "sqlite" {
		t.Errorf("expected sqlite default, got %s", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "elections.db" {
		t.Errorf("expected elections.db default, got %s", cfg.DatabaseURL)
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	os.Unsetenv("VOTER_SALT")
	t.Cleanup(func() { os.Unsetenv("VOTER_SALT") })
	t.Setenv("DATABASE_URL", "")

	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("VOTER_SALT=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-env", envFile, "voters", "-code", "x"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.VoterSalt != "from-file" {
		t.Errorf("expected salt from env file, got %q", cfg.VoterSalt)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("VOTER_SALT", "")

	tests := []struct {
		name string
		args []string
	}{
		{"no command", []string{}},
		{"unknown command", []string{"explode"}},
		{"missing salt", []string{"vote"}},
		{"postgres without url", []string{"-t", "postgres", "-voter-salt", "s", "tally"}},
		{"bad database type", []string{"-t", "mysql", "tally"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-env", noEnvFile(t)}, tt.args...)
			if _, err := ParseFlags(args); err == nil {
				t.Errorf("ParseFlags(%v) expected error", tt.args)
			}
		})
	}
}

func TestParseFlags_RunNeedsNoDatabase(t *testing.T) {
	t.Setenv("VOTER_SALT", "")

	cfg, err := ParseFlags([]string{"-env", noEnvFile(t), "run", "election.json"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Command != "run" || cfg.Args[0] != "election.json" {
		t.Errorf("unexpected command %s %v", cfg.Command, cfg.Args)
	}
}
