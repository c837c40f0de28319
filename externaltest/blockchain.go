// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package externaltest provides in-memory fakes for every external
// interface, reused across this module's component tests.
//
// Grounded on validators/validatorstest/state.go's F-suffixed override
// mock shape; the fakes have no Cant-prefixed assert-if-called fields.
package externaltest

import (
	"sync"
	"testing"

	"github.com/luxfi/ids"

	"github.com/luxfi/quorumcop/external"
)

// Blockchain is an in-memory external.Blockchain fake. Every interface
// method except Lock has an F-suffixed override; if unset it falls back to
// the struct's own storage.
type Blockchain struct {
	T *testing.T

	mu     sync.Mutex
	lockMu sync.Mutex
	checkpoints map[uint64]external.Checkpoint
	blocksByHeight map[uint64]external.Block
	hardForks   map[uint64]uint8
	defaultHF   uint8

	height       uint64
	targetHeight uint64

	CurrentHeightF    func() uint64
	TargetHeightF     func() uint64
	HardForkVersionF  func(uint64) uint8
	BlockIDByHeightF  func(uint64) (ids.ID, bool)
	BlocksF           func(uint64, int) ([]external.Block, error)
	GetCheckpointF    func(uint64) (external.Checkpoint, bool)
	UpdateCheckpointF func(external.Checkpoint) error
}

// NewBlockchain returns an empty Blockchain fake with the given default
// hard-fork version for any height not explicitly overridden.
func NewBlockchain(defaultHF uint8) *Blockchain {
	return &Blockchain{
		checkpoints:    make(map[uint64]external.Checkpoint),
		blocksByHeight: make(map[uint64]external.Block),
		hardForks:      make(map[uint64]uint8),
		defaultHF:      defaultHF,
	}
}

// SetHeight sets the chain's current and target height to the same value.
func (b *Blockchain) SetHeight(h uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.height = h
	b.targetHeight = h
}

// SetBlock registers a block at its own height, queryable via
// BlockIDByHeight and Blocks.
func (b *Blockchain) SetBlock(block external.Block) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blocksByHeight[block.Height] = block
}

// SetHardFork overrides the hard-fork version reported at a specific height.
func (b *Blockchain) SetHardFork(height uint64, hf uint8) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hardForks[height] = hf
}

func (b *Blockchain) CurrentHeight() uint64 {
	if b.CurrentHeightF != nil {
		return b.CurrentHeightF()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.height
}

func (b *Blockchain) TargetHeight() uint64 {
	if b.TargetHeightF != nil {
		return b.TargetHeightF()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.targetHeight
}

func (b *Blockchain) HardForkVersion(height uint64) uint8 {
	if b.HardForkVersionF != nil {
		return b.HardForkVersionF(height)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if hf, ok := b.hardForks[height]; ok {
		return hf
	}
	return b.defaultHF
}

func (b *Blockchain) BlockIDByHeight(height uint64) (ids.ID, bool) {
	if b.BlockIDByHeightF != nil {
		return b.BlockIDByHeightF(height)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	block, ok := b.blocksByHeight[height]
	return block.Hash, ok
}

func (b *Blockchain) Blocks(height uint64, n int) ([]external.Block, error) {
	if b.BlocksF != nil {
		return b.BlocksF(height, n)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []external.Block
	for i := 0; i < n; i++ {
		if block, ok := b.blocksByHeight[height+uint64(i)]; ok {
			out = append(out, block)
		}
	}
	return out, nil
}

func (b *Blockchain) GetCheckpoint(height uint64) (external.Checkpoint, bool) {
	if b.GetCheckpointF != nil {
		return b.GetCheckpointF(height)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	cp, ok := b.checkpoints[height]
	return cp, ok
}

func (b *Blockchain) UpdateCheckpoint(cp external.Checkpoint) error {
	if b.UpdateCheckpointF != nil {
		return b.UpdateCheckpointF(cp)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.checkpoints[cp.Height] = cp
	return nil
}

// Lock acquires a mutex distinct from the fake's own internal bookkeeping
// lock, mirroring the real collaborator's exclusive checkpoint-commit
// critical section without deadlocking against GetCheckpoint/
// UpdateCheckpoint calls made while it is held.
func (b *Blockchain) Lock() (unlock func()) {
	b.lockMu.Lock()
	return b.lockMu.Unlock
}
