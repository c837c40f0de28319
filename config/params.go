// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the frozen policy constants that govern vote aging,
// checkpoint/state-change thresholds, reorg safety, and decommission credit.
// These are policy, not mechanism: the mechanism lives in vote, votepool,
// voteverify, checkpointagg, statechangeagg, credit, quorumdriver and reorg.
package config

import "time"

// Params bundles every tunable named in spec.md §6. Two daemons running
// different network parameters (mainnet, testnet, a local devnet) get
// different Params values, never different code paths.
type Params struct {
	// VoteLifetime is the number of blocks a vote (and its pool entry)
	// remains valid for after the block height it targets.
	VoteLifetime uint64

	// VoteLookahead is how far into the future (relative to chain height)
	// a vote's block height may be before it is rejected as premature.
	VoteLookahead uint64

	// CheckpointInterval is the block-height spacing between checkpoints;
	// last_checkpointed_height is always a multiple of this.
	CheckpointInterval uint64

	// CheckpointMinVotes is the number of distinct voter signatures needed
	// before a checkpoint is committed for the first time.
	CheckpointMinVotes int

	// CheckpointQuorumSize is the size of the checkpointing quorum's
	// validator list; once a checkpoint holds this many signatures no
	// further merge is attempted.
	CheckpointQuorumSize int

	// StateChangeMinVotes is the number of distinct voter signatures
	// needed before a state-change transaction is built.
	StateChangeMinVotes int

	// ReorgSafetyBufferPreHF and ReorgSafetyBufferPostHF are the two
	// REORG_SAFETY_BUFFER_BLOCKS values, selected by ReorgSafetyHardFork.
	ReorgSafetyBufferPreHF  uint64
	ReorgSafetyBufferPostHF uint64

	// ReorgSafetyHardFork is the hard-fork version at which the reorg
	// safety buffer switches from the Pre to the Post value.
	//
	// CheckpointingHardFork is the hard-fork version below which no
	// checkpoint catch-up voting happens at all.
	//
	// These are kept distinct rather than collapsed into one constant:
	// see DESIGN.md "Open-question decisions" item 1.
	ReorgSafetyHardFork   uint8
	CheckpointingHardFork uint8

	// MinUptimeBeforeVoting is the minimum daemon uptime, in wall-clock
	// time, before the node is allowed to cast obligation votes (it may
	// still observe and record other voters' participation earlier).
	MinUptimeBeforeVoting time.Duration

	// CreditPerDay and BlocksPerDay convert uptime in blocks into credit.
	CreditPerDay int64
	BlocksPerDay int64

	// InitialCredit is granted once to a node that has never been
	// decommissioned (or is serving its first decommission).
	InitialCredit int64

	// MaxCredit caps accumulated credit.
	MaxCredit int64

	// DecommissionMinimum is the credit threshold at or above which a failing
	// active node is decommissioned rather than deregistered outright.
	DecommissionMinimum int64

	// RelayInterval and QuorumRelayInterval bound how often a pooled vote
	// is re-relayed to general peers vs. to quorum peers respectively.
	RelayInterval      time.Duration
	QuorumRelayInterval time.Duration
}

// Mainnet returns the production parameter set. Numeric values follow the
// policy implied by spec.md and original_source/ (the Loki/Graft-derived
// checkpoint_vote_handler.cpp this subsystem is modeled on).
func Mainnet() Params {
	return Params{
		VoteLifetime:            60,
		VoteLookahead:           10,
		CheckpointInterval:      4,
		CheckpointMinVotes:      7,
		CheckpointQuorumSize:    10,
		StateChangeMinVotes:     7,
		ReorgSafetyBufferPreHF:  11,
		ReorgSafetyBufferPostHF: 5,
		ReorgSafetyHardFork:     18,
		CheckpointingHardFork:   12,
		MinUptimeBeforeVoting:   2 * time.Hour,
		CreditPerDay:            60,
		BlocksPerDay:            720,
		InitialCredit:           60 * 24,
		MaxCredit:               60 * 24 * 7,
		DecommissionMinimum:     720,
		RelayInterval:           15 * time.Minute,
		QuorumRelayInterval:     30 * time.Second,
	}
}

// Builder provides a fluent interface for constructing a Params value,
// starting from Mainnet() defaults, so tests can cheaply scale constants
// down to the small literal values spec.md §8's end-to-end scenarios use.
type Builder struct {
	p Params
}

// NewBuilder starts a Builder from the Mainnet defaults.
func NewBuilder() *Builder {
	return &Builder{p: Mainnet()}
}

func (b *Builder) VoteLifetime(v uint64) *Builder { b.p.VoteLifetime = v; return b }

func (b *Builder) CheckpointInterval(v uint64) *Builder { b.p.CheckpointInterval = v; return b }

func (b *Builder) CheckpointMinVotes(v int) *Builder { b.p.CheckpointMinVotes = v; return b }

func (b *Builder) CheckpointQuorumSize(v int) *Builder { b.p.CheckpointQuorumSize = v; return b }

func (b *Builder) StateChangeMinVotes(v int) *Builder { b.p.StateChangeMinVotes = v; return b }

func (b *Builder) ReorgSafetyBuffer(pre, post uint64) *Builder {
	b.p.ReorgSafetyBufferPreHF = pre
	b.p.ReorgSafetyBufferPostHF = post
	return b
}

func (b *Builder) MinUptimeBeforeVoting(d time.Duration) *Builder {
	b.p.MinUptimeBeforeVoting = d
	return b
}

// Build returns the constructed Params.
func (b *Builder) Build() Params {
	return b.p
}

// ReorgSafetyBuffer returns the REORG_SAFETY_BUFFER_BLOCKS value applicable
// at the given hard-fork version.
func (p Params) ReorgSafetyBuffer(hfVersion uint8) uint64 {
	if hfVersion >= p.ReorgSafetyHardFork {
		return p.ReorgSafetyBufferPostHF
	}
	return p.ReorgSafetyBufferPreHF
}
