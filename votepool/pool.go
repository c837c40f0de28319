// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package votepool implements the vote pool of spec.md §4.2: dedup, aging,
// relay bookkeeping, and pruning of votes already committed on-chain.
//
// Grounded on dag/witness/cache.go's list+mutex eviction shape and
// poll/poll.go's map-of-groups-guarded-by-one-lock structure from the
// teacher. The pool's own internal lock is distinct from and never held
// across a call into the blockchain's lock (spec.md §5's "Shared resources"
// ordering requirement) — Pool never calls out to external collaborators
// while holding mu.
package votepool

import (
	"sync"
	"time"

	"github.com/luxfi/log"

	"github.com/luxfi/quorumcop/external"
	"github.com/luxfi/quorumcop/vote"
)

// Entry is a pooled vote plus its relay bookkeeping, per spec.md §3
// PoolVote.
type Entry struct {
	Vote           vote.Vote
	TimeLastSentP2P time.Time
	LastSentHeight  uint64
}

// group is the ordered list of entries for one TargetKey. Insertion order
// is preserved (spec.md §4.2 "Fairness/ordering"); threshold checks only
// look at len(group), never order.
type group struct {
	entries []Entry
	seen    map[uint16]int // voter index -> position in entries
}

// Pool is the process-local, rebuilt-on-startup vote pool (spec.md §6
// "Persisted state"). Safe for concurrent use; internally one mutex guards
// the whole map, which is adequate at this subsystem's scale — the
// teacher's own poll.set takes the same single-lock-per-collection
// approach rather than per-group locks.
type Pool struct {
	mu     sync.Mutex
	groups map[vote.TargetKey]*group
	log    log.Logger
}

// New returns an empty Pool.
func New(logger log.Logger) *Pool {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &Pool{
		groups: make(map[vote.TargetKey]*group),
		log:    logger,
	}
}

// AddIfUnique inserts v iff no entry with the same Identity already exists
// in the pool (spec.md §4.2 add_if_unique, Invariant P1). It returns
// whether the insert happened and the full, current ordered list of
// entries for v's aggregation target, so aggregators can evaluate
// thresholds regardless of which caller's insert won a race (spec.md §5
// linearizability requirement, property R3).
func (p *Pool) AddIfUnique(v vote.Vote) (added bool, collected []Entry) {
	target := v.Target()
	id := v.Identity()

	p.mu.Lock()
	defer p.mu.Unlock()

	g, ok := p.groups[target]
	if !ok {
		g = &group{seen: make(map[uint16]int)}
		p.groups[target] = g
	}

	if _, dup := g.seen[id.VoterIndex]; dup {
		return false, cloneEntries(g.entries)
	}

	g.seen[id.VoterIndex] = len(g.entries)
	g.entries = append(g.entries, Entry{Vote: v})
	return true, cloneEntries(g.entries)
}

func cloneEntries(in []Entry) []Entry {
	out := make([]Entry, len(in))
	copy(out, in)
	return out
}

// RemoveExpired drops every group whose height + VOTE_LIFETIME <=
// currentHeight (spec.md §4.2 remove_expired, Invariant 3 / property P3).
// voteLifetime is passed explicitly rather than read from a shared config
// handle so Pool stays reusable across parameter sets in tests.
func (p *Pool) RemoveExpired(currentHeight, voteLifetime uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key := range p.groups {
		if key.Height+voteLifetime <= currentHeight {
			delete(p.groups, key)
		}
	}
}

// RemoveUsed scans a newly accepted block's transactions for committed
// state-change records and drops any pool entries matching their
// (height, target index, new state) — spec.md §4.2 remove_used_votes.
func (p *Pool) RemoveUsed(txs []external.Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, tx := range txs {
		if tx.StateChange == nil {
			continue
		}
		sc := tx.StateChange
		key := vote.TargetKey{
			Type:   vote.QuorumObligations,
			Height: sc.Height,
			Discriminator: vote.Discriminator{
				TargetIndex: sc.TargetIndex,
				NewState:    sc.NewState,
			},
		}
		delete(p.groups, key)
	}
}

// relayWindow is how long ago TimeLastSentP2P must be, and how many blocks
// must have passed since LastSentHeight, before an entry is relayable.
type relayWindow struct {
	interval     time.Duration
	minHeightGap uint64
}

// GetRelayableVotes returns every pooled vote eligible for relay: not sent
// within the relay interval, and at least one block has passed since it
// was last sent (spec.md §4.2 set_relayed / relay candidate rule).
// quorumRelay selects the shorter, more aggressive interval used between
// quorum peers.
func (p *Pool) GetRelayableVotes(currentHeight uint64, relayInterval, quorumRelayInterval time.Duration, quorumRelay bool) []vote.Vote {
	window := relayWindow{interval: relayInterval, minHeightGap: 1}
	if quorumRelay {
		window.interval = quorumRelayInterval
	}

	now := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	var out []vote.Vote
	for _, g := range p.groups {
		for _, e := range g.entries {
			sentRecently := !e.TimeLastSentP2P.IsZero() && now.Sub(e.TimeLastSentP2P) < window.interval
			noBlockPassed := e.LastSentHeight != 0 && currentHeight < e.LastSentHeight+window.minHeightGap
			if sentRecently || noBlockPassed {
				continue
			}
			out = append(out, e.Vote)
		}
	}
	return out
}

// SetRelayed stamps every given vote's pool entry with the current time
// and height (spec.md §4.2 set_relayed). Votes no longer present in the
// pool (already pruned) are silently skipped.
func (p *Pool) SetRelayed(votes []vote.Vote) {
	now := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, v := range votes {
		target := v.Target()
		id := v.Identity()
		g, ok := p.groups[target]
		if !ok {
			continue
		}
		pos, ok := g.seen[id.VoterIndex]
		if !ok || pos >= len(g.entries) {
			continue
		}
		g.entries[pos].TimeLastSentP2P = now
		g.entries[pos].LastSentHeight = v.BlockHeight
	}
}

// ReceivedCheckpointVote reports whether a checkpoint vote from voterIndex
// at height is present in the pool — used by the statistics path
// (quorumdriver) to credit other validators for participation, per spec.md
// §4.2 received_checkpoint_vote.
func (p *Pool) ReceivedCheckpointVote(height uint64, voterIndex uint16) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, g := range p.groups {
		if key.Type != vote.QuorumCheckpointing || key.Height != height {
			continue
		}
		if _, ok := g.seen[voterIndex]; ok {
			return true
		}
	}
	return false
}

// Len reports how many aggregation-target groups are currently pooled,
// exposed for metrics.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.groups)
}
