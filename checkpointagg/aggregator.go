// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package checkpointagg implements the checkpoint aggregator of spec.md
// §4.4: threshold detection and idempotent checkpoint commit under the
// blockchain layer's own lock.
//
// Grounded directly on handle_checkpoint_vote in
// original_source/src/cryptonote_core/checkpoint_vote_handler.cpp: the read-
// decide-write critical section under the blockchain's lock, the
// insertion-point signature merge that keeps signatures strictly ordered
// by voter index, and the three-way case split on existing-same-hash /
// existing-different-hash / absent.
package checkpointagg

import (
	"sort"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"go.uber.org/zap"

	"github.com/luxfi/quorumcop/config"
	"github.com/luxfi/quorumcop/external"
	"github.com/luxfi/quorumcop/metrics"
	"github.com/luxfi/quorumcop/votepool"
)

// Aggregator commits checkpoints once enough votes for a (height, hash)
// target have accumulated.
type Aggregator struct {
	chain   external.Blockchain
	params  config.Params
	log     log.Logger
	trace   *zap.Logger
	metrics *metrics.Metrics // nil-safe: callers that don't wire metrics pass nil
}

// New returns an Aggregator backed by chain. m may be nil, in which case no
// metrics are recorded.
func New(chain external.Blockchain, params config.Params, logger log.Logger, trace *zap.Logger, m *metrics.Metrics) *Aggregator {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	if trace == nil {
		trace = zap.NewNop()
	}
	return &Aggregator{chain: chain, params: params, log: logger, trace: trace, metrics: m}
}

// Process is triggered after votepool.AddIfUnique produced a new checkpoint
// vote. height and blockHash identify the aggregation target; votes is the
// pool's current collection for it (spec.md §4.4).
//
// Returns an error only for a downstream persistence failure (spec.md §7
// "Checkpoint persistence failure (downstream) -> propagated; votes stay");
// an unmet threshold, a fork mismatch, and a no-op merge are all nil-error
// successes, per spec.md §4.4 cases A/B/C.
func (a *Aggregator) Process(height uint64, blockHash ids.ID, votes []votepool.Entry) error {
	if len(votes) < a.params.CheckpointMinVotes {
		a.trace.Debug("not enough votes to commit checkpoint",
			zap.Uint64("height", height), zap.Int("have", len(votes)), zap.Int("need", a.params.CheckpointMinVotes))
		return nil
	}

	unlock := a.chain.Lock()
	defer unlock()

	existing, present := a.chain.GetCheckpoint(height)

	var updated external.Checkpoint
	var shouldCommit bool

	switch {
	case present && existing.BlockHash == blockHash:
		// Case A: merge into the existing checkpoint.
		updated, shouldCommit = mergeSignatures(existing, votes, a.params.CheckpointQuorumSize)
	case present:
		// Case B: fork — a different block hash is already checkpointed at
		// this height. Resolved by the blockchain's own checkpoint policy;
		// we never overwrite.
		a.log.Debug("checkpoint fork at height, not overwriting", "height", height)
		return nil
	default:
		// Case C: fresh checkpoint.
		updated = newCheckpoint(height, blockHash, votes)
		shouldCommit = true
	}

	if !shouldCommit {
		return nil
	}
	if err := a.chain.UpdateCheckpoint(updated); err != nil {
		a.log.Error("checkpoint commit failed", "height", height, "err", err)
		return err
	}
	a.log.Info("checkpoint committed", "height", height, "signatures", len(updated.Signatures))
	if a.metrics != nil {
		a.metrics.CheckpointsCommitted.Inc()
	}
	return nil
}

func newCheckpoint(height uint64, blockHash ids.ID, votes []votepool.Entry) external.Checkpoint {
	sigs := make([]external.VoterSignature, 0, len(votes))
	for _, v := range votes {
		sigs = append(sigs, external.VoterSignature{VoterIndex: v.Vote.VoterIndex, Signature: v.Vote.Signature})
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i].VoterIndex < sigs[j].VoterIndex })
	return external.Checkpoint{Height: height, BlockHash: blockHash, Signatures: sigs}
}

// mergeSignatures inserts any votes not already present into existing's
// signature list, keeping it strictly ordered by voter index and
// duplicate-free (spec.md Invariant 5 / property P2). It merges nothing when
// existing already holds exactly quorumSize signatures, mirroring the
// original's `if (checkpoint.signatures.size() != CHECKPOINT_QUORUM_SIZE)`
// guard; otherwise every new voter is inserted, with no cap mid-merge.
func mergeSignatures(existing external.Checkpoint, votes []votepool.Entry, quorumSize int) (external.Checkpoint, bool) {
	if len(existing.Signatures) == quorumSize {
		return existing, false
	}

	sigs := append([]external.VoterSignature(nil), existing.Signatures...)
	sort.Slice(sigs, func(i, j int) bool { return sigs[i].VoterIndex < sigs[j].VoterIndex })

	added := false
	for _, v := range votes {
		pos := sort.Search(len(sigs), func(i int) bool { return sigs[i].VoterIndex >= v.Vote.VoterIndex })
		if pos < len(sigs) && sigs[pos].VoterIndex == v.Vote.VoterIndex {
			continue // duplicate, already have this voter's signature
		}
		sig := external.VoterSignature{VoterIndex: v.Vote.VoterIndex, Signature: v.Vote.Signature}
		sigs = append(sigs, external.VoterSignature{})
		copy(sigs[pos+1:], sigs[pos:])
		sigs[pos] = sig
		added = true
	}

	existing.Signatures = sigs
	return existing, added
}
