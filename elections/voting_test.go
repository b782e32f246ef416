// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package elections

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/instant-runoff/auth"
	"github.com/danielhkuo/instant-runoff/irv"
	"github.com/danielhkuo/instant-runoff/models"
	"github.com/danielhkuo/instant-runoff/testutil"
)

func TestCastBallot(t *testing.T) {
	svc := newTestService(t)
	code := testutil.CreateTestElection(t, svc.db, models.StatusOpen, alice, bob)

	voted, err := svc.HasVoted(code, "voter-1")
	require.NoError(t, err)
	require.False(t, voted)

	ballotID, err := svc.CastBallot(code, "voter-1", irv.Ballot{2, 1})
	require.NoError(t, err)
	require.NotEmpty(t, ballotID)

	voted, err = svc.HasVoted(code, "voter-1")
	require.NoError(t, err)
	require.True(t, voted)

	ballots, err := svc.Ballots(code)
	require.NoError(t, err)
	require.Equal(t, []irv.Ballot{{2, 1}}, ballots)

	// Voted in one election only
	other := testutil.CreateTestElection(t, svc.db, models.StatusOpen, alice)
	voted, err = svc.HasVoted(other, "voter-1")
	require.NoError(t, err)
	require.False(t, voted)
}

func TestCastBallotRejectsDuplicateVoter(t *testing.T) {
	svc := newTestService(t)
	code := testutil.CreateTestElection(t, svc.db, models.StatusOpen, alice, bob)

	_, err := svc.CastBallot(code, "voter-1", irv.Ballot{1})
	require.NoError(t, err)

	_, err = svc.CastBallot(code, "voter-1", irv.Ballot{2})
	require.ErrorIs(t, err, ErrAlreadyVoted)

	// The rejected ballot must not have been stored
	ballots, err := svc.Ballots(code)
	require.NoError(t, err)
	require.Equal(t, []irv.Ballot{{1}}, ballots)
}

func TestCastBallotElectionState(t *testing.T) {
	svc := newTestService(t)

	closed := testutil.CreateTestElection(t, svc.db, models.StatusClosed, alice, bob)
	_, err := svc.CastBallot(closed, "voter-1", irv.Ballot{1})
	require.ErrorIs(t, err, ErrElectionClosed)

	_, err = svc.CastBallot("missing", "voter-1", irv.Ballot{1})
	require.ErrorIs(t, err, ErrElectionNotFound)

	voted, err := svc.HasVoted(closed, "voter-1")
	require.NoError(t, err)
	require.False(t, voted)
}

func TestVotersAreHashedAndShuffled(t *testing.T) {
	svc := newTestService(t)
	code := testutil.CreateTestElection(t, svc.db, models.StatusOpen, alice, bob)

	var shuffles atomic.Int32
	svc.Picker = irv.PickerFunc(func(n int) int {
		shuffles.Add(1)
		return 0
	})

	ids := []string{"voter-a", "voter-b", "voter-c"}
	for _, id := range ids {
		_, err := svc.CastBallot(code, id, irv.Ballot{1})
		require.NoError(t, err)
	}

	voters, err := svc.Voters(code)
	require.NoError(t, err)
	require.Len(t, voters, 3)

	salt := testutil.GetTestConfig().VoterSalt
	hashes := make([]string, len(ids))
	for i, id := range ids {
		hashes[i] = auth.HashVoterID(id, salt)
		for _, v := range voters {
			require.False(t, strings.Contains(v, id), "raw voter id stored")
		}
	}
	require.ElementsMatch(t, hashes, voters)

	// Each insert shuffles the whole list: 0 + 1 + 2 picks
	require.EqualValues(t, 3, shuffles.Load())

	// Always picking index 0 rotates the list, so insertion order is lost:
	// [a] -> [b a] -> [a c b]
	require.Equal(t, []string{hashes[0], hashes[2], hashes[1]}, voters)
}

func TestVotersNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Voters("missing")
	require.ErrorIs(t, err, ErrElectionNotFound)
}

// TestConcurrentBallots verifies that simultaneous ballots from different
// voters are all recorded exactly once
func TestConcurrentBallots(t *testing.T) {
	svc := newTestService(t)
	code := testutil.CreateTestElection(t, svc.db, models.StatusOpen, alice, bob, carol)

	numVoters := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()
			ballot := irv.Ballot{irv.CandidateID(voterIdx%3 + 1)}
			if _, err := svc.CastBallot(code, fmt.Sprintf("voter-%d", voterIdx), ballot); err == nil {
				successCount.Add(1)
			}
		}(i)
	}

	// The same voter racing themselves: exactly one ballot may land
	var dupSuccess atomic.Int32
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.CastBallot(code, "eager-voter", irv.Ballot{1}); err == nil {
				dupSuccess.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, numVoters, successCount.Load())
	require.EqualValues(t, 1, dupSuccess.Load())

	ballots, err := svc.Ballots(code)
	require.NoError(t, err)
	require.Len(t, ballots, numVoters+1)

	voters, err := svc.Voters(code)
	require.NoError(t, err)
	require.Len(t, voters, numVoters+1)
}
