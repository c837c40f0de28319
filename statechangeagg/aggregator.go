// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package statechangeagg implements the state-change aggregator of
// spec.md §4.5: threshold detection, a re-validation check against current
// service-node state, and state-change transaction construction/submission.
//
// Grounded directly on handle_obligations_vote in
// original_source/src/cryptonote_core/checkpoint_vote_handler.cpp.
package statechangeagg

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/quorumcop/config"
	"github.com/luxfi/quorumcop/external"
	"github.com/luxfi/quorumcop/metrics"
	"github.com/luxfi/quorumcop/vote"
	"github.com/luxfi/quorumcop/votepool"
)

// errTxRejected is returned when the tx pool declines a state-change
// transaction without giving a concrete error (e.g. it was simply full).
var errTxRejected = errors.New("statechangeagg: transaction rejected by pool")

// Aggregator builds and submits state-change transactions once enough
// votes for a (height, target, new-state) target have accumulated.
type Aggregator struct {
	registry external.ServiceNodeRegistry
	txpool   external.TxPool
	params   config.Params
	log      log.Logger
	metrics  *metrics.Metrics // nil-safe: callers that don't wire metrics pass nil
}

// New returns an Aggregator backed by registry and txpool. m may be nil, in
// which case no metrics are recorded.
func New(registry external.ServiceNodeRegistry, txpool external.TxPool, params config.Params, logger log.Logger, m *metrics.Metrics) *Aggregator {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &Aggregator{registry: registry, txpool: txpool, params: params, log: logger, metrics: m}
}

// Process is triggered on new obligation votes. height, targetIndex and
// newState identify the aggregation target; votes is the pool's current
// collection for it; worker is the target's public key (quorum.Workers
// [targetIndex]); hfVersion is the chain's current hard-fork version.
//
// Returns an error only when submission to the tx pool fails (spec.md §7
// "Transaction submission failure -> return false, leave in pool"); an
// unmet threshold and a now-invalid transition are both nil-error
// successes that leave the votes pooled for a future attempt, per spec.md
// §4.5.
func (a *Aggregator) Process(ctx context.Context, height uint64, targetIndex uint16, newState vote.NewState, worker ids.ID, hfVersion uint8, votes []votepool.Entry) error {
	if len(votes) < a.params.StateChangeMinVotes {
		a.log.Debug("not enough votes for state change", "height", height, "have", len(votes), "need", a.params.StateChangeMinVotes)
		return nil
	}

	infos, err := a.registry.ListState([]ids.ID{worker})
	if err != nil || len(infos) == 0 || !infos[0].CanTransitionTo(hfVersion, height, newState) {
		// Valid vote, but the transition is no longer possible (e.g. a
		// concurrent path already deregistered the node). Don't build a
		// tx; the votes stay pooled until they expire or a different
		// aggregation succeeds, per spec.md §4.5.
		a.log.Debug("state change no longer valid, dropping silently", "height", height, "target", targetIndex, "state", newState)
		return nil
	}

	blob := encodeStateChangeTx(height, targetIndex, newState, votes)
	ok, err := a.txpool.HandleIncomingTx(ctx, blob, external.TxOptions{NewTx: true})
	if err != nil || !ok {
		a.log.Info("state change tx rejected by mempool", "height", height, "target", targetIndex, "err", err)
		return errSubmitFailed(err)
	}
	a.log.Info("state change tx submitted", "height", height, "target", targetIndex, "state", newState, "votes", len(votes))
	if a.metrics != nil {
		a.metrics.StateChangeTxs.WithLabelValues(newState.String()).Inc()
	}
	return nil
}

func errSubmitFailed(cause error) error {
	if cause != nil {
		return cause
	}
	return errTxRejected
}

// encodeStateChangeTx builds the blob carrying
// (new_state, height, target_index, vote count, [(voter_index, signature), ...]),
// the fields spec.md §4.5 lists plus a count prefix. The wire format itself (beyond field order) is an
// external collaborator's concern (the tx pool's codec); this subsystem
// only needs a stable, self-describing encoding since TxPool is a
// behavioral interface in this module's tests.
func encodeStateChangeTx(height uint64, targetIndex uint16, newState vote.NewState, votes []votepool.Entry) []byte {
	buf := make([]byte, 0, 1+8+2+2+len(votes)*(2+64))
	buf = append(buf, byte(newState))
	var h [8]byte
	binary.BigEndian.PutUint64(h[:], height)
	buf = append(buf, h[:]...)
	var t [2]byte
	binary.BigEndian.PutUint16(t[:], targetIndex)
	buf = append(buf, t[:]...)
	var n [2]byte
	binary.BigEndian.PutUint16(n[:], uint16(len(votes)))
	buf = append(buf, n[:]...)
	for _, v := range votes {
		var idx [2]byte
		binary.BigEndian.PutUint16(idx[:], v.Vote.VoterIndex)
		buf = append(buf, idx[:]...)
		buf = append(buf, v.Vote.Signature[:]...)
	}
	return buf
}
