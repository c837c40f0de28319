// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package reorg implements the reorg coordinator of spec.md §4.8: rewinding
// the checkpoint catch-up high-water mark and evicting expired pool entries
// when the blockchain layer reports a detach.
//
// Grounded directly on blockchain_detached in
// original_source/src/cryptonote_core/checkpoint_vote_handler.cpp.
package reorg

import (
	"github.com/luxfi/log"

	"github.com/luxfi/quorumcop/config"
	"github.com/luxfi/quorumcop/external"
	"github.com/luxfi/quorumcop/votepool"
)

// Cursor is the subset of quorumdriver.Driver's state this coordinator
// reads and rewinds. Kept as a narrow interface rather than a direct
// dependency on quorumdriver to avoid a package cycle (quorumdriver never
// needs to call back into reorg).
type Cursor interface {
	LastCheckpointedHeight() uint64
	SetLastCheckpointedHeight(h uint64)
}

// Coordinator handles blockchain detach notifications.
type Coordinator struct {
	cursor Cursor
	pool   *votepool.Pool
	chain  external.Blockchain
	params config.Params
	log    log.Logger
}

// New returns a Coordinator wired to cursor (normally a quorumdriver.Driver)
// and pool.
func New(cursor Cursor, pool *votepool.Pool, chain external.Blockchain, params config.Params, logger log.Logger) *Coordinator {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &Coordinator{cursor: cursor, pool: pool, chain: chain, params: params, log: logger}
}

// Detached handles a blockchain_detached(height, by_pop_blocks) notification,
// per spec.md §4.8. byPopBlocks distinguishes an expected local rewind (user
// popped blocks) from an unexpected network reorg.
func (c *Coordinator) Detached(height uint64, byPopBlocks bool) {
	hf := c.chain.HardForkVersion(height)
	safety := c.params.ReorgSafetyBuffer(hf)

	last := c.cursor.LastCheckpointedHeight()
	if last >= height+safety {
		if !byPopBlocks {
			c.log.Error("blockchain detached beyond reorg safety buffer",
				"detach_height", height, "last_checkpointed_height", last, "safety_buffer", safety)
		}
		rewound := height - (height % c.params.CheckpointInterval)
		c.cursor.SetLastCheckpointedHeight(rewound)
	}

	c.pool.RemoveExpired(height, c.params.VoteLifetime)
}
