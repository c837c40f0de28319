// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package votepool

import (
	"sync"
	"testing"
	"time"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/quorumcop/external"
	"github.com/luxfi/quorumcop/vote"
)

func TestAddIfUniqueDeduplicatesByVoterIndex(t *testing.T) {
	p := New(nil)
	var hash ids.ID
	v := vote.NewCheckpointVote(10, hash, 2)

	added1, collected1 := p.AddIfUnique(v)
	added2, collected2 := p.AddIfUnique(v)

	require.True(t, added1)
	require.False(t, added2)
	require.Len(t, collected1, 1)
	require.Len(t, collected2, 1)
}

func TestAddIfUniqueDistinguishesVoters(t *testing.T) {
	p := New(nil)
	var hash ids.ID

	_, c1 := p.AddIfUnique(vote.NewCheckpointVote(10, hash, 0))
	_, c2 := p.AddIfUnique(vote.NewCheckpointVote(10, hash, 1))

	require.Len(t, c1, 1)
	require.Len(t, c2, 2)
}

func TestAddIfUniqueConcurrentInsertsAreLinearizable(t *testing.T) {
	p := New(nil)
	var hash ids.ID
	v := vote.NewCheckpointVote(10, hash, 0)

	const workers = 32
	var wg sync.WaitGroup
	results := make([][]Entry, workers)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_, collected := p.AddIfUnique(v)
			results[i] = collected
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.Len(t, r, 1, "every caller must observe exactly one insertion regardless of who won the race")
	}
}

func TestRemoveExpired(t *testing.T) {
	p := New(nil)
	var hash ids.ID
	p.AddIfUnique(vote.NewCheckpointVote(10, hash, 0))

	p.RemoveExpired(69, 60) // 10+60 = 70 > 69: not yet expired
	require.Equal(t, 1, p.Len())

	p.RemoveExpired(70, 60) // 10+60 = 70 <= 70: expired
	require.Equal(t, 0, p.Len())
}

func TestRemoveUsedDropsMatchingStateChangeGroup(t *testing.T) {
	p := New(nil)
	p.AddIfUnique(vote.NewStateChangeVote(10, 0, 3, vote.StateDeregister))
	require.Equal(t, 1, p.Len())

	p.RemoveUsed([]external.Transaction{{
		StateChange: &external.StateChangeRecord{Height: 10, TargetIndex: 3, NewState: vote.StateDeregister},
	}})
	require.Equal(t, 0, p.Len())
}

func TestRemoveUsedIgnoresUnrelatedTransactions(t *testing.T) {
	p := New(nil)
	p.AddIfUnique(vote.NewStateChangeVote(10, 0, 3, vote.StateDeregister))

	p.RemoveUsed([]external.Transaction{{StateChange: nil}})
	require.Equal(t, 1, p.Len())
}

func TestGetRelayableVotesSkipsRecentlySent(t *testing.T) {
	p := New(nil)
	var hash ids.ID
	v := vote.NewCheckpointVote(10, hash, 0)
	p.AddIfUnique(v)

	relayable := p.GetRelayableVotes(10, 0, 0, false)
	require.Len(t, relayable, 1)

	p.SetRelayed(relayable)
	relayable = p.GetRelayableVotes(10, time.Hour, 0, false)
	require.Empty(t, relayable, "just-relayed vote must not be immediately relayable again")
}

func TestReceivedCheckpointVote(t *testing.T) {
	p := New(nil)
	var hash ids.ID
	p.AddIfUnique(vote.NewCheckpointVote(10, hash, 4))

	require.True(t, p.ReceivedCheckpointVote(10, 4))
	require.False(t, p.ReceivedCheckpointVote(10, 5))
	require.False(t, p.ReceivedCheckpointVote(11, 4))
}
