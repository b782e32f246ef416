// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/instant-runoff/cliparse"
	"github.com/danielhkuo/instant-runoff/elections"
	"github.com/danielhkuo/instant-runoff/irv"
	"github.com/danielhkuo/instant-runoff/models"
)

// dispatch runs a database-backed command and writes its JSON result to w
func dispatch(svc *elections.Service, cfg cliparse.Config, w io.Writer) error {
	switch cfg.Command {
	case "create":
		return createElection(svc, cfg.Args, w)
	case "vote":
		return castBallot(svc, cfg.Args, w)
	case "tally":
		return tallyElection(svc, cfg, w)
	case "close":
		return closeElection(svc, cfg.Args, w)
	case "voters":
		return listVoters(svc, cfg.Args, w)
	}
	return fmt.Errorf("unknown command %q", cfg.Command)
}

func createElection(svc *elections.Service, args []string, w io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: create <election.json>")
	}

	var req models.CreateElectionRequest
	if err := readJSON(args[0], &req); err != nil {
		return err
	}

	election, err := svc.CreateElection(req)
	if err != nil {
		return err
	}

	return writeJSON(w, models.CreateElectionResponse{Code: election.Code})
}

func castBallot(svc *elections.Service, args []string, w io.Writer) error {
	var req models.CastBallotRequest
	var prefs string

	fs := flag.NewFlagSet("vote", flag.ContinueOnError)
	fs.StringVar(&req.Code, "code", "", "Election code")
	fs.StringVar(&req.VoterID, "voter", "", "Voter id (fingerprint)")
	fs.StringVar(&prefs, "ballot", "", "Candidate ids, most preferred first (e.g. 2,1,3)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if req.Code == "" || req.VoterID == "" {
		return errors.New("usage: vote -code <code> -voter <id> -ballot 1,2,3")
	}

	ballot, err := parseBallot(prefs)
	if err != nil {
		return err
	}
	req.Ballot = ballot

	ballotID, err := svc.CastBallot(req.Code, req.VoterID, req.Ballot)
	if err != nil {
		return err
	}

	return writeJSON(w, models.CastBallotResponse{
		BallotID: ballotID,
		Message:  "Ballot cast successfully",
	})
}

// parseBallot reads a comma separated list of candidate ids
func parseBallot(s string) (irv.Ballot, error) {
	ballot := irv.Ballot{}
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid candidate id %q", field)
		}
		ballot = append(ballot, irv.CandidateID(id))
	}
	return ballot, nil
}

func tallyElection(svc *elections.Service, cfg cliparse.Config, w io.Writer) error {
	var code string
	fs := flag.NewFlagSet("tally", flag.ContinueOnError)
	fs.StringVar(&code, "code", "", "Election code")
	if err := fs.Parse(cfg.Args); err != nil {
		return err
	}
	if code == "" {
		return errors.New("usage: tally -code <code>")
	}

	resp, err := svc.Count(code, narrator(cfg, "code", code))
	if err != nil {
		return err
	}

	return writeJSON(w, resp)
}

func closeElection(svc *elections.Service, args []string, w io.Writer) error {
	var code, keyFile string
	fs := flag.NewFlagSet("close", flag.ContinueOnError)
	fs.StringVar(&code, "code", "", "Election code")
	fs.StringVar(&keyFile, "pubkey", "", "File holding the creator's public key")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if code == "" || keyFile == "" {
		return errors.New("usage: close -code <code> -pubkey <file>")
	}

	pubKey, err := os.ReadFile(keyFile)
	if err != nil {
		return fmt.Errorf("failed to read public key: %w", err)
	}

	closedAt, err := svc.CloseElection(code, string(pubKey))
	if err != nil {
		return err
	}

	return writeJSON(w, map[string]time.Time{"closed_at": closedAt})
}

func listVoters(svc *elections.Service, args []string, w io.Writer) error {
	var code string
	fs := flag.NewFlagSet("voters", flag.ContinueOnError)
	fs.StringVar(&code, "code", "", "Election code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if code == "" {
		return errors.New("usage: voters -code <code>")
	}

	voters, err := svc.Voters(code)
	if err != nil {
		return err
	}
	if voters == nil {
		voters = []string{}
	}

	return writeJSON(w, map[string][]string{"voters": voters})
}

// runFile tallies a self-contained candidates + ballots file
func runFile(cfg cliparse.Config, w io.Writer) error {
	if len(cfg.Args) != 1 {
		return errors.New("usage: run <election.json>")
	}

	var req models.RunRequest
	if err := readJSON(cfg.Args[0], &req); err != nil {
		return err
	}

	tallier := irv.Tallier{Narrator: narrator(cfg, "file", cfg.Args[0])}
	result, err := tallier.Tally(req.Candidates, req.Ballots)
	if err != nil {
		return err
	}

	return writeJSON(w, models.TallyResponse{
		BallotCount: len(req.Ballots),
		ComputedAt:  time.Now().UTC(),
		Result:      *result,
	})
}

func narrator(cfg cliparse.Config, attrs ...any) irv.Narrator {
	if !cfg.Verbose {
		return nil
	}
	return irv.LogNarrator{Logger: slog.Default(), Attrs: attrs}
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// fail reports err as a JSON error document and exits
func fail(err error) {
	slog.Error("command failed", "error", err)
	writeJSON(os.Stderr, models.ErrorResponse{
		Error:   "command failed",
		Message: err.Error(),
	})
	os.Exit(1)
}
