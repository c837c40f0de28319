// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package quorumcop is the façade of spec.md §4.9: it wires the vote model,
// pool, verifier, aggregators, credit accountant, catch-up driver and reorg
// coordinator (C1-C8) behind the four operations a blockchain daemon calls
// — Init, HandleVote, BlockAdded, BlockchainDetached — plus the relay
// bookkeeping pair GetRelayableVotes/SetVotesRelayed.
//
// Grounded on the CheckpointVoteHandler class as a whole in
// original_source/src/cryptonote_core/checkpoint_vote_handler.cpp, and on
// the teacher's top-level chain.go for a small facade-over-subsystems
// package living at the module root.
package quorumcop

import (
	"context"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"go.uber.org/zap"

	"github.com/luxfi/quorumcop/checkpointagg"
	"github.com/luxfi/quorumcop/config"
	"github.com/luxfi/quorumcop/external"
	"github.com/luxfi/quorumcop/metrics"
	"github.com/luxfi/quorumcop/quorumdriver"
	"github.com/luxfi/quorumcop/reorg"
	"github.com/luxfi/quorumcop/statechangeagg"
	"github.com/luxfi/quorumcop/vote"
	"github.com/luxfi/quorumcop/votepool"
	"github.com/luxfi/quorumcop/voteverify"
)

// BlockAddedHook is called after the driver's own catch-up work for a
// block has run. It replaces the original's hard-coded
// update_lmq_sns() call (SPEC_FULL.md §5 "Hook wiring"): callers register
// whatever downstream housekeeping (e.g. refreshing a quorum-membership
// cache) their daemon needs instead of this package assuming one fixed
// collaborator.
type BlockAddedHook func(block external.Block)

// Handler is the single entry point a blockchain daemon embeds.
type Handler struct {
	chain    external.Blockchain
	quorums  external.QuorumProvider
	registry external.ServiceNodeRegistry

	pool          *votepool.Pool
	checkpointAgg *checkpointagg.Aggregator
	stateChangeAgg *statechangeagg.Aggregator
	driver        *quorumdriver.Driver
	reorgCoord    *reorg.Coordinator

	params  config.Params
	log     log.Logger
	metrics *metrics.Metrics // nil-safe: a Config without Metrics set records nothing

	hooks []BlockAddedHook
}

// Config bundles every external collaborator and policy a Handler needs.
type Config struct {
	Chain    external.Blockchain
	Quorums  external.QuorumProvider
	Registry external.ServiceNodeRegistry
	TxPool   external.TxPool
	Params   config.Params
	Log      log.Logger
	Trace    *zap.Logger
	// StartTime is the daemon process's own start time; defaults to
	// time.Now() if zero.
	StartTime time.Time
	// Metrics, if set, receives this handler's Prometheus observations. A
	// nil Metrics disables all instrumentation.
	Metrics *metrics.Metrics
}

// New constructs a Handler and wires C1-C8 together. It does not start any
// background work; callers drive it entirely through BlockAdded/HandleVote.
func New(cfg Config) *Handler {
	logger := cfg.Log
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	trace := cfg.Trace
	if trace == nil {
		trace = zap.NewNop()
	}
	startTime := cfg.StartTime
	if startTime.IsZero() {
		startTime = time.Now()
	}

	h := &Handler{
		chain:    cfg.Chain,
		quorums:  cfg.Quorums,
		registry: cfg.Registry,
		params:   cfg.Params,
		log:      logger,
		metrics:  cfg.Metrics,
	}

	h.pool = votepool.New(logger)
	h.checkpointAgg = checkpointagg.New(cfg.Chain, cfg.Params, logger, trace, cfg.Metrics)
	h.stateChangeAgg = statechangeagg.New(cfg.Registry, cfg.TxPool, cfg.Params, logger, cfg.Metrics)
	h.driver = quorumdriver.New(cfg.Chain, cfg.Quorums, cfg.Registry, h.pool, h.HandleVote, cfg.Params, startTime, logger, trace, cfg.Metrics)
	h.reorgCoord = reorg.New(h.driver, h.pool, cfg.Chain, cfg.Params, logger)

	return h
}

// Init resets the driver's checkpoint catch-up cursor to zero (spec.md
// §4.9's implicit "init" — the original's CheckpointVoteHandler::init()).
// Collaborators are assumed already durable; the obligations cursor and
// the vote pool are left as they are.
func (h *Handler) Init() {
	h.driver.SetLastCheckpointedHeight(0)
}

// AddBlockAddedHook registers a callback invoked after every BlockAdded
// call completes its own catch-up work, in registration order.
func (h *Handler) AddBlockAddedHook(hook BlockAddedHook) {
	h.hooks = append(h.hooks, hook)
}

// HandleVote implements spec.md §4.9's handle_vote: verify, dedup-insert,
// then dispatch to the matching aggregator by quorum type.
func (h *Handler) HandleVote(v vote.Vote) error {
	quorum, quorumOK := h.quorums.GetQuorum(v.QuorumTypeOf(), v.BlockHeight)
	vctx := voteverify.Verify(v, h.chain.CurrentHeight(), h.params, quorum, quorumOK)
	if !vctx.OK {
		h.log.Debug("vote rejected", "reason", vctx.Reason, "height", v.BlockHeight, "voter", v.VoterIndex)
		return nil
	}

	added, collected := h.pool.AddIfUnique(v)
	if !added {
		return nil // duplicate: success with no aggregation, per spec.md §4.9 step 2
	}

	if h.metrics != nil {
		h.metrics.VotesReceived.WithLabelValues(v.QuorumTypeOf().String()).Inc()
		h.metrics.PoolSize.Set(float64(h.pool.Len()))
	}

	switch v.Shape {
	case vote.KindCheckpoint:
		return h.checkpointAgg.Process(v.BlockHeight, v.BlockHash, collected)
	case vote.KindStateChange:
		worker := h.workerKeyFor(v, quorum)
		hf := h.chain.HardForkVersion(v.BlockHeight)
		return h.stateChangeAgg.Process(context.Background(), v.BlockHeight, v.TargetIndex, v.NewState, worker, hf, collected)
	default:
		return nil
	}
}

func (h *Handler) workerKeyFor(v vote.Vote, quorum external.Quorum) ids.ID {
	if int(v.TargetIndex) >= len(quorum.Workers) {
		return ids.ID{}
	}
	return quorum.Workers[v.TargetIndex]
}

// BlockAdded runs the per-block catch-up loop (C7), then any registered
// hooks, per spec.md §4.7.
func (h *Handler) BlockAdded(block external.Block) error {
	if err := h.driver.BlockAdded(block); err != nil {
		return err
	}
	if h.metrics != nil {
		h.metrics.PoolSize.Set(float64(h.pool.Len()))
	}
	for _, hook := range h.hooks {
		hook(block)
	}
	return nil
}

// BlockchainDetached implements spec.md §4.8.
func (h *Handler) BlockchainDetached(height uint64, byPopBlocks bool) {
	h.reorgCoord.Detached(height, byPopBlocks)
}

// GetRelayableVotes returns every pooled vote eligible for relay.
func (h *Handler) GetRelayableVotes(currentHeight uint64, quorumRelay bool) []vote.Vote {
	return h.pool.GetRelayableVotes(currentHeight, h.params.RelayInterval, h.params.QuorumRelayInterval, quorumRelay)
}

// SetVotesRelayed stamps the given votes as just relayed.
func (h *Handler) SetVotesRelayed(votes []vote.Vote) {
	h.pool.SetRelayed(votes)
}
