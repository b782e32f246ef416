// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/instant-runoff/cliparse"
	"github.com/danielhkuo/instant-runoff/elections"
	"github.com/danielhkuo/instant-runoff/irv"
	"github.com/danielhkuo/instant-runoff/models"
	"github.com/danielhkuo/instant-runoff/testutil"
)

func writeFile(t *testing.T, name string, v any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestParseBallot(t *testing.T) {
	tests := []struct {
		input   string
		want    irv.Ballot
		wantErr bool
	}{
		{"1,2,3", irv.Ballot{1, 2, 3}, false},
		{" 3 , 1 ", irv.Ballot{3, 1}, false},
		{"", irv.Ballot{}, false},
		{"1,,2", irv.Ballot{1, 2}, false},
		{"1,x", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseBallot(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRunFile(t *testing.T) {
	path := writeFile(t, "election.json", models.RunRequest{
		Candidates: []irv.Candidate{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}},
		Ballots:    []irv.Ballot{{1, 2, 3}, {1, 2, 3}, {2, 1, 3}, {2, 1, 3}, {3, 1, 2}},
	})

	var out bytes.Buffer
	err := runFile(cliparse.Config{Command: "run", Args: []string{path}, Verbose: true}, &out)
	require.NoError(t, err)

	var resp models.TallyResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.Equal(t, 5, resp.BallotCount)
	require.Equal(t, irv.CandidateID(1), resp.Result.Winner.ID)
	require.Len(t, resp.Result.Rounds, 2)
}

func TestRunFileErrors(t *testing.T) {
	var out bytes.Buffer

	err := runFile(cliparse.Config{Command: "run"}, &out)
	require.Error(t, err)

	err = runFile(cliparse.Config{Command: "run", Args: []string{filepath.Join(t.TempDir(), "missing.json")}}, &out)
	require.Error(t, err)

	empty := writeFile(t, "empty.json", models.RunRequest{})
	err = runFile(cliparse.Config{Command: "run", Args: []string{empty}}, &out)
	require.ErrorIs(t, err, irv.ErrNoCandidates)
}

func TestDispatchElectionFlow(t *testing.T) {
	cfg := testutil.GetTestConfig()
	svc := elections.NewService(testutil.SetupTestDB(t), cfg)

	run := func(command string, args ...string) []byte {
		t.Helper()
		var out bytes.Buffer
		c := cfg
		c.Command, c.Args = command, args
		require.NoError(t, dispatch(svc, c, &out))
		return out.Bytes()
	}

	electionFile := writeFile(t, "election.json", testutil.ElectionRequest(
		irv.Candidate{ID: 1, Name: "A"},
		irv.Candidate{ID: 2, Name: "B"},
	))
	var created models.CreateElectionResponse
	require.NoError(t, json.Unmarshal(run("create", electionFile), &created))
	require.NotEmpty(t, created.Code)

	for i, prefs := range []string{"1,2", "1,2", "2,1", "1"} {
		var cast models.CastBallotResponse
		voter := string(rune('a' + i))
		require.NoError(t, json.Unmarshal(run("vote", "-code", created.Code, "-voter", voter, "-ballot", prefs), &cast))
		require.NotEmpty(t, cast.BallotID)
	}

	var voters map[string][]string
	require.NoError(t, json.Unmarshal(run("voters", "-code", created.Code), &voters))
	require.Len(t, voters["voters"], 4)

	keyFile := filepath.Join(t.TempDir(), "key.pub")
	require.NoError(t, os.WriteFile(keyFile, []byte(testutil.TestPubKey+"\n"), 0o600))
	run("close", "-code", created.Code, "-pubkey", keyFile)

	var tally models.TallyResponse
	require.NoError(t, json.Unmarshal(run("tally", "-code", created.Code), &tally))
	require.Equal(t, 4, tally.BallotCount)
	require.Equal(t, irv.CandidateID(1), tally.Result.Winner.ID)
	require.True(t, tally.Result.Majority)

	// Voting after close fails
	var out bytes.Buffer
	c := cfg
	c.Command, c.Args = "vote", []string{"-code", created.Code, "-voter", "late", "-ballot", "2"}
	require.ErrorIs(t, dispatch(svc, c, &out), elections.ErrElectionClosed)
}

func TestDispatchUsage(t *testing.T) {
	cfg := testutil.GetTestConfig()
	svc := elections.NewService(testutil.SetupTestDB(t), cfg)

	for _, command := range []string{"create", "vote", "tally", "close", "voters", "bogus"} {
		t.Run(command, func(t *testing.T) {
			c := cfg
			c.Command = command
			var out bytes.Buffer
			require.Error(t, dispatch(svc, c, &out))
		})
	}
}
