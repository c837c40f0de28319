// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package checkpointagg

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/quorumcop/config"
	"github.com/luxfi/quorumcop/external"
	"github.com/luxfi/quorumcop/externaltest"
	"github.com/luxfi/quorumcop/metrics"
	"github.com/luxfi/quorumcop/votepool"
)

func testParams(minVotes, quorumSize int) config.Params {
	return config.NewBuilder().CheckpointMinVotes(minVotes).CheckpointQuorumSize(quorumSize).Build()
}

func entriesFor(voterIndexes ...uint16) []votepool.Entry {
	var hash ids.ID
	out := make([]votepool.Entry, 0, len(voterIndexes))
	for _, idx := range voterIndexes {
		v := votepool.Entry{}
		v.Vote.BlockHeight = 10
		v.Vote.BlockHash = hash
		v.Vote.VoterIndex = idx
		out = append(out, v)
	}
	return out
}

func TestProcessDoesNothingBelowThreshold(t *testing.T) {
	chain := externaltest.NewBlockchain(12)
	agg := New(chain, testParams(7, 10), nil, nil, nil)

	var hash ids.ID
	err := agg.Process(10, hash, entriesFor(0, 1, 2))
	require.NoError(t, err)

	_, ok := chain.GetCheckpoint(10)
	require.False(t, ok)
}

func TestProcessCommitsFreshCheckpointAtThreshold(t *testing.T) {
	chain := externaltest.NewBlockchain(12)
	agg := New(chain, testParams(3, 10), nil, nil, nil)

	var hash ids.ID
	hash[0] = 1
	err := agg.Process(10, hash, entriesFor(2, 0, 1))
	require.NoError(t, err)

	cp, ok := chain.GetCheckpoint(10)
	require.True(t, ok)
	require.Equal(t, hash, cp.BlockHash)
	require.Len(t, cp.Signatures, 3)
	// Signatures must be ordered by voter index regardless of arrival order.
	require.Equal(t, uint16(0), cp.Signatures[0].VoterIndex)
	require.Equal(t, uint16(1), cp.Signatures[1].VoterIndex)
	require.Equal(t, uint16(2), cp.Signatures[2].VoterIndex)
}

func TestProcessMergesAdditionalSignaturesIntoExisting(t *testing.T) {
	chain := externaltest.NewBlockchain(12)
	var hash ids.ID
	hash[0] = 1
	chain.UpdateCheckpoint(external.Checkpoint{
		Height:    10,
		BlockHash: hash,
		Signatures: []external.VoterSignature{{VoterIndex: 0}, {VoterIndex: 1}},
	})

	agg := New(chain, testParams(3, 10), nil, nil, nil)
	err := agg.Process(10, hash, entriesFor(0, 1, 2))
	require.NoError(t, err)

	cp, _ := chain.GetCheckpoint(10)
	require.Len(t, cp.Signatures, 3, "duplicates must not be re-inserted")
}

func TestProcessDoesNotOverwriteForkedCheckpoint(t *testing.T) {
	chain := externaltest.NewBlockchain(12)
	var existingHash, newHash ids.ID
	existingHash[0], newHash[0] = 1, 2
	chain.UpdateCheckpoint(external.Checkpoint{Height: 10, BlockHash: existingHash, Signatures: entrySigs(0, 1, 2)})

	agg := New(chain, testParams(3, 10), nil, nil, nil)
	err := agg.Process(10, newHash, entriesFor(0, 1, 2))
	require.NoError(t, err)

	cp, _ := chain.GetCheckpoint(10)
	require.Equal(t, existingHash, cp.BlockHash, "a different block hash at the same height must never overwrite the existing checkpoint")
}

func TestProcessStopsGrowingAtQuorumSize(t *testing.T) {
	chain := externaltest.NewBlockchain(12)
	var hash ids.ID
	chain.UpdateCheckpoint(external.Checkpoint{Height: 10, BlockHash: hash, Signatures: entrySigs(0, 1)})

	agg := New(chain, testParams(1, 2), nil, nil, nil)
	err := agg.Process(10, hash, entriesFor(0, 1, 2))
	require.NoError(t, err)

	cp, _ := chain.GetCheckpoint(10)
	require.Len(t, cp.Signatures, 2, "must not grow beyond CheckpointQuorumSize")
}

func TestProcessIncrementsCheckpointsCommittedMetric(t *testing.T) {
	chain := externaltest.NewBlockchain(12)
	reg := prometheus.NewRegistry()
	m, err := metrics.NewMetrics(reg)
	require.NoError(t, err)

	agg := New(chain, testParams(3, 10), nil, nil, m)

	var hash ids.ID
	require.NoError(t, agg.Process(10, hash, entriesFor(0, 1, 2)))
	require.Equal(t, float64(1), counterValue(t, m.CheckpointsCommitted))

	// A below-threshold call for a different height must not increment it.
	require.NoError(t, agg.Process(20, hash, entriesFor(0)))
	require.Equal(t, float64(1), counterValue(t, m.CheckpointsCommitted))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var pb dto.Metric
	require.NoError(t, c.Write(&pb))
	return pb.GetCounter().GetValue()
}

func entrySigs(indexes ...uint16) []external.VoterSignature {
	out := make([]external.VoterSignature, 0, len(indexes))
	for _, idx := range indexes {
		out = append(out, external.VoterSignature{VoterIndex: idx})
	}
	return out
}
