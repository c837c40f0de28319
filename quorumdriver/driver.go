// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package quorumdriver implements the per-block catch-up driver of
// spec.md §4.7: casting and submitting our own obligations and
// checkpoint votes, bounded by the reorg safety buffer, gated on
// hard-fork version and daemon uptime.
//
// Grounded directly on process_quorums in
// original_source/src/cryptonote_core/checkpoint_vote_handler.cpp.
package quorumdriver

import (
	"sync"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"go.uber.org/zap"

	"github.com/luxfi/quorumcop/config"
	"github.com/luxfi/quorumcop/credit"
	"github.com/luxfi/quorumcop/external"
	"github.com/luxfi/quorumcop/metrics"
	"github.com/luxfi/quorumcop/vote"
	"github.com/luxfi/quorumcop/votepool"
)

// HandleVoteFunc casts a vote we produced ourselves back through the same
// verify-pool-aggregate path used for votes received over the network
// (spec.md §4.9). It is injected by the façade rather than called directly
// on a concrete Handler to keep this package free of an import cycle.
type HandleVoteFunc func(v vote.Vote) error

// Driver runs the per-block catch-up loop for both quorum types.
type Driver struct {
	mu sync.Mutex

	chain    external.Blockchain
	quorums  external.QuorumProvider
	registry external.ServiceNodeRegistry
	pool     *votepool.Pool
	handle   HandleVoteFunc
	params   config.Params
	log      log.Logger
	trace    *zap.Logger
	metrics  *metrics.Metrics // nil-safe: callers that don't wire metrics pass nil

	startTime time.Time

	obligationsHeight      uint64
	lastCheckpointedHeight uint64
	lastProcessedHeight    uint64
	haveLastProcessed      bool

	testedMyselfThisBlock bool
}

// New returns a Driver. startTime is the daemon's own process start time,
// used for the MinUptimeBeforeVoting gate and the "did we observe this
// live" check. m may be nil, in which case no metrics are recorded.
func New(chain external.Blockchain, quorums external.QuorumProvider, registry external.ServiceNodeRegistry, pool *votepool.Pool, handle HandleVoteFunc, params config.Params, startTime time.Time, logger log.Logger, trace *zap.Logger, m *metrics.Metrics) *Driver {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	if trace == nil {
		trace = zap.NewNop()
	}
	return &Driver{
		chain:     chain,
		quorums:   quorums,
		registry:  registry,
		pool:      pool,
		handle:    handle,
		params:    params,
		log:       logger,
		trace:     trace,
		metrics:   m,
		startTime: startTime,
	}
}

// LastCheckpointedHeight returns the driver's checkpoint catch-up cursor,
// read by the reorg coordinator on blockchain_detached.
func (d *Driver) LastCheckpointedHeight() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastCheckpointedHeight
}

// SetLastCheckpointedHeight rewinds the checkpoint catch-up cursor; called
// only by the reorg coordinator.
func (d *Driver) SetLastCheckpointedHeight(h uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastCheckpointedHeight = h
}

// BlockAdded runs the catch-up loop triggered by a newly accepted block,
// per spec.md §4.7. It is idempotent per block height (property R2): a
// duplicate notification for a height already processed is a no-op.
func (d *Driver) BlockAdded(block external.Block) error {
	d.mu.Lock()
	if d.haveLastProcessed && block.Height <= d.lastProcessedHeight {
		d.mu.Unlock()
		return nil
	}
	d.lastProcessedHeight = block.Height
	d.haveLastProcessed = true
	d.mu.Unlock()

	defer func() {
		d.pool.RemoveExpired(block.Height+1, d.params.VoteLifetime)
		d.pool.RemoveUsed(block.Transactions)
	}()

	hf := block.MajorVersion
	if hf < d.params.CheckpointingHardFork {
		return nil
	}

	latest := d.chain.CurrentHeight()
	if t := d.chain.TargetHeight(); t > latest {
		latest = t
	}
	if latest < d.params.VoteLifetime {
		return nil
	}
	start := latest - d.params.VoteLifetime
	if block.Height < start {
		return nil
	}

	safety := d.params.ReorgSafetyBuffer(hf)

	pub, _, votingEnabled := d.registry.Keys()
	votingEnabled = votingEnabled && d.registry.IsActive(pub)

	liveTime := time.Since(d.startTime)
	d.testedMyselfThisBlock = false

	d.catchUpObligations(block, start, safety, liveTime, pub, votingEnabled)
	d.catchUpCheckpoints(block, safety)
	return nil
}

func (d *Driver) catchUpObligations(block external.Block, start, safety uint64, liveTime time.Duration, myKey ids.ID, votingEnabled bool) {
	d.mu.Lock()
	if d.obligationsHeight < start {
		d.obligationsHeight = start
	}
	h := d.obligationsHeight
	d.mu.Unlock()

	if block.Height < safety {
		return
	}
	ceiling := block.Height - safety

	for ; h < ceiling; h++ {
		d.processObligationsHeight(h, liveTime, myKey, votingEnabled)
	}

	d.mu.Lock()
	d.obligationsHeight = h
	d.mu.Unlock()
}

func (d *Driver) processObligationsHeight(h uint64, liveTime time.Duration, myKey ids.ID, votingEnabled bool) {
	hfAtH := d.chain.HardForkVersion(h)

	if hfAtH >= d.params.CheckpointingHardFork {
		d.recordParticipation(h)
	}

	if liveTime < d.params.MinUptimeBeforeVoting {
		return
	}

	quorum, ok := d.quorums.GetQuorum(vote.QuorumObligations, h)
	if !ok {
		d.log.Warn("obligations quorum not cached", "height", h)
		return
	}
	if len(quorum.Workers) == 0 {
		return
	}

	indexInGroup := -1
	if votingEnabled {
		indexInGroup = external.IndexOf(quorum.Validators, myKey)
	}

	if indexInGroup >= 0 {
		d.voteOnWorkers(h, hfAtH, quorum)
		return
	}

	workerIndex := external.IndexOf(quorum.Workers, myKey)
	if !d.testedMyselfThisBlock && workerIndex >= 0 {
		d.selfCheck(h, hfAtH, myKey, liveTime)
	}
}

// recordParticipation reports, for every validator in the checkpointing
// quorum at h, whether we saw their checkpoint vote in the pool — purely
// statistical uptime bookkeeping, gated on having been live to observe it.
func (d *Driver) recordParticipation(h uint64) {
	quorum, ok := d.quorums.GetQuorum(vote.QuorumCheckpointing, h)
	if !ok {
		return
	}
	blocks, err := d.chain.Blocks(h, 1)
	if err != nil || len(blocks) == 0 {
		return
	}
	if d.startTime.Unix() >= blocks[0].Timestamp {
		return // we came online after this block; we likely missed the votes live
	}
	for idx, key := range quorum.Validators {
		present := d.pool.ReceivedCheckpointVote(h, uint16(idx))
		d.registry.RecordCheckpointVote(key, h, present)
	}
}

// voteOnWorkers is the C7 validator path: test every worker in the
// obligations quorum and cast a state-change vote per the outcome -> vote
// mapping table (spec.md §4.7).
func (d *Driver) voteOnWorkers(h uint64, hfVersion uint8, quorum external.Quorum) {
	pub, priv, _ := d.registry.Keys()
	voterIndex := uint16(external.IndexOf(quorum.Validators, pub))

	good, total := 0, 0
	// Each worker's state is fetched by its own key; a node that no longer
	// exists is simply absent from ListState's result and is skipped.
	for i, key := range quorum.Workers {
		infos, err := d.registry.ListState([]ids.ID{key})
		if err != nil {
			d.log.Error("failed to fetch worker states", "height", h, "err", err)
			return
		}
		if len(infos) == 0 {
			continue
		}
		info := infos[0]
		total++

		if !info.CanBeVotedOn(h) {
			continue
		}

		result := d.registry.CheckServiceNode(hfVersion, key, info)
		earned := credit.Calculate(info, h, d.params)
		if d.metrics != nil {
			d.metrics.DecommissionCredit.Observe(float64(earned))
		}
		newState, abstain := outcomeToVote(info, result, earned, d.params.DecommissionMinimum)
		if abstain {
			good++
			continue
		}

		v := vote.NewStateChangeVote(h, voterIndex, uint16(i), newState)
		v.Sign(priv)
		if err := d.handle(v); err != nil {
			d.log.Error("failed to cast state change vote", "height", h, "target", i, "err", err)
		}
	}
	if good > 0 {
		d.trace.Debug("obligations check summary", zap.Uint64("height", h), zap.Int("good", good), zap.Int("total", total))
	}
}

// outcomeToVote implements the outcome -> vote mapping table of spec.md
// §4.7. earnedCredit is the node's current decommission credit (credit.
// Calculate); minimum is DecommissionMinimum.
func outcomeToVote(info external.NodeInfo, result external.TestResult, earnedCredit, minimum int64) (newState vote.NewState, abstain bool) {
	if info.IsActive() {
		if result.Passed {
			if !result.SingleIP {
				return vote.StateIPChangePenalty, false
			}
			return 0, true
		}
		if earnedCredit >= minimum {
			return vote.StateDecommission, false
		}
		return vote.StateDeregister, false
	}

	// Decommissioned.
	if result.Passed {
		return vote.StateRecommission, false
	}
	if earnedCredit >= 0 {
		return 0, true
	}
	return vote.StateDeregister, false
}

// selfCheck is the non-validator "am I the one being tested" path (spec.md
// §4.7 point 4): log-only, never produces a vote.
func (d *Driver) selfCheck(h uint64, hfVersion uint8, myKey ids.ID, liveTime time.Duration) {
	infos, err := d.registry.ListState([]ids.ID{myKey})
	if err != nil || len(infos) == 0 {
		return
	}
	info := infos[0]
	if !info.CanBeVotedOn(h) {
		return
	}
	d.testedMyselfThisBlock = true

	result := d.registry.CheckServiceNode(hfVersion, myKey, info)
	if info.IsActive() && !result.Passed {
		if !result.UptimeProved && liveTime < time.Hour {
			return // recently restarted; uptime proof warning would be a false positive
		}
		d.log.Warn("we are currently failing service node checks", "height", h, "why", result.Why)
	}
}

func (d *Driver) catchUpCheckpoints(block external.Block, safety uint64) {
	hf := block.MajorVersion
	if hf < d.params.CheckpointingHardFork {
		return
	}

	d.mu.Lock()
	h := d.lastCheckpointedHeight
	d.mu.Unlock()

	for ; h <= block.Height; h += d.params.CheckpointInterval {
		if h < safety {
			// Mirrors the original's m_last_checkpointed_height <
			// REORG_SAFETY_BUFFER_BLOCKS guard: an absolute floor near
			// genesis, not a ceiling subtracted from the tip.
			continue
		}
		if d.chain.HardForkVersion(h) < d.params.CheckpointingHardFork {
			continue
		}

		quorum, ok := d.quorums.GetQuorum(vote.QuorumCheckpointing, h)
		if !ok {
			continue
		}
		pub, priv, votingEnabled := d.registry.Keys()
		if !votingEnabled {
			continue
		}
		idx := external.IndexOf(quorum.Validators, pub)
		if idx < 0 {
			continue
		}
		blockHash, ok := d.chain.BlockIDByHeight(h)
		if !ok {
			continue
		}
		v := vote.NewCheckpointVote(h, blockHash, uint16(idx))
		v.Sign(priv)
		if err := d.handle(v); err != nil {
			d.log.Error("failed to cast checkpoint vote", "height", h, "err", err)
		}
	}

	d.mu.Lock()
	if h > d.lastCheckpointedHeight {
		d.lastCheckpointedHeight = h
	}
	d.mu.Unlock()
}
