package main

import (
	"database/sql"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/instant-runoff/cliparse"
	"github.com/danielhkuo/instant-runoff/db"
	"github.com/danielhkuo/instant-runoff/elections"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(2)
	}

	// run needs no database
	if cfg.Command == "run" {
		if err := runFile(cfg, os.Stdout); err != nil {
			fail(err)
		}
		return
	}

	dbConn, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// sqlite allows a single writer
	if cfg.DriverName() == "sqlite" {
		dbConn.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}

	svc := elections.NewService(dbConn, cfg)
	if err := dispatch(svc, cfg, os.Stdout); err != nil {
		dbConn.Close()
		fail(err)
	}
}
