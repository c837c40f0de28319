// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package external declares the collaborator interfaces this subsystem
// consumes but does not implement: block acceptance and chain storage, the
// quorum-construction algorithm, the service-node registry, and the
// transaction pool. spec.md §1 names these explicitly out of scope; §6
// names the exact surface this package captures.
package external

import (
	"context"
	"crypto/ed25519"

	"github.com/luxfi/ids"

	"github.com/luxfi/quorumcop/vote"
)

// Block is the minimal projection of a chain block this subsystem needs.
type Block struct {
	Height        uint64
	Hash          ids.ID
	MajorVersion  uint8
	Timestamp     int64
	Transactions  []Transaction
}

// Transaction is the minimal projection of a transaction this subsystem
// scans for already-committed state-change records (votepool.RemoveUsed).
type Transaction struct {
	// StateChange is non-nil when this transaction carries a committed
	// service-node state-change record.
	StateChange *StateChangeRecord
}

// StateChangeRecord mirrors the extra field spec.md §4.5 describes a
// state-change transaction as carrying.
type StateChangeRecord struct {
	Height      uint64
	TargetIndex uint16
	NewState    vote.NewState
}

// Checkpoint is the committed, multi-signed artifact spec.md §3 describes.
// Signatures are strictly ordered by VoterIndex with no duplicates
// (invariant P2 / spec.md Invariant 5).
type Checkpoint struct {
	Height     uint64
	BlockHash  ids.ID
	Signatures []VoterSignature
}

// VoterSignature pairs a signature with the voter index that produced it.
type VoterSignature struct {
	VoterIndex uint16
	Signature  [64]byte
}

// Blockchain is the subset of the blockchain storage layer this subsystem
// touches: height/hard-fork queries, block and checkpoint lookups, and the
// checkpoint read-decide-write critical section.
//
// Lock acquires the blockchain-level lock spec.md §4.4/§9 requires around
// the checkpoint commit critical section and returns an unlock function;
// the lock must be released exactly once by calling the returned func.
type Blockchain interface {
	CurrentHeight() uint64
	TargetHeight() uint64
	HardForkVersion(height uint64) uint8

	BlockIDByHeight(height uint64) (ids.ID, bool)
	Blocks(height uint64, n int) ([]Block, error)

	GetCheckpoint(height uint64) (Checkpoint, bool)
	UpdateCheckpoint(cp Checkpoint) error

	Lock() (unlock func())
}

// QuorumProvider supplies the quorum membership for a given type and
// height. Quorum construction itself is out of scope (spec.md §1); this
// subsystem only ever reads finished quorums.
type QuorumProvider interface {
	GetQuorum(qtype vote.QuorumType, height uint64) (Quorum, bool)
}

// Quorum is opaque validator/worker membership, per spec.md §3: ordered
// lists of public keys (ids.ID is used as the 32-byte Ed25519 public key
// type throughout this subsystem, distinct from a network-transport node
// identity). Workers is empty for the checkpointing quorum.
type Quorum struct {
	Validators []ids.ID
	Workers    []ids.ID
}

// IndexOf returns the position of id in the list, or -1 if absent —
// find_index_in_quorum_group in original_source/checkpoint_vote_handler.cpp.
func IndexOf(list []ids.ID, id ids.ID) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}

// NodeState is the lifecycle state of a service node, per spec.md §3.
type NodeState uint8

const (
	NodeActive NodeState = iota
	NodeDecommissioned
	NodeDeregistered
)

// NodeInfo is the projection of service-node registry state this subsystem
// needs, per spec.md §3.
type NodeInfo struct {
	// ActiveSinceHeight is negated when the node is currently decommissioned
	// to encode the pre-decommission start height, per spec.md §4.6.
	ActiveSinceHeight   int64
	LastDecommissionHeight uint64
	DecommissionCount   int
	IsFullyFunded       bool
	State               NodeState
}

func (n NodeInfo) IsDecommissioned() bool { return n.State == NodeDecommissioned }
func (n NodeInfo) IsActive() bool         { return n.State == NodeActive }

// CanTransitionTo reports whether this node can legally move to newState —
// re-checked by statechangeagg immediately before building a state-change
// transaction, since a concurrent path may already have deregistered the
// node. The answer depends on State alone; hfVersion and height are not
// consulted.
func (n NodeInfo) CanTransitionTo(hfVersion uint8, height uint64, newState vote.NewState) bool {
	switch n.State {
	case NodeDeregistered:
		return false
	case NodeDecommissioned:
		return newState == vote.StateRecommission || newState == vote.StateDeregister
	default: // NodeActive
		return newState != vote.StateRecommission
	}
}

// CanBeVotedOn reports whether this node is eligible to be tested/voted on:
// every node that is not deregistered is. height is not consulted, so a
// node that registered recently is not excluded.
func (n NodeInfo) CanBeVotedOn(height uint64) bool {
	return n.State != NodeDeregistered
}

// TestResult is the outcome of testing a service node, per spec.md §6/§4.7.
type TestResult struct {
	Passed       bool
	SingleIP     bool
	UptimeProved bool
	Why          string
}

// ServiceNodeRegistry is the external registry of service-node state,
// staking, and uptime proofs. Registry construction/maintenance (uptime
// proofs, staking, IP observation) is out of scope per spec.md §1; this
// subsystem only reads projections and reports vote participation back.
type ServiceNodeRegistry interface {
	ListState(keys []ids.ID) ([]NodeInfo, error)
	IsActive(key ids.ID) bool
	Keys() (pub ids.ID, priv ed25519.PrivateKey, ok bool)
	RecordCheckpointVote(voterKey ids.ID, height uint64, present bool)
	CheckServiceNode(hfVersion uint8, key ids.ID, info NodeInfo) TestResult
}

// TxOptions mirrors the tx_pool_options spec.md §6 names; kept as a struct
// rather than a bare bool so future submission knobs (e.g. fee floor) have
// somewhere to live without changing the TxPool signature.
type TxOptions struct {
	NewTx bool
}

// TxPool is the external transaction memory pool. Mempool internals are
// out of scope per spec.md §1; this subsystem only submits finished
// state-change transactions to it.
type TxPool interface {
	HandleIncomingTx(ctx context.Context, blob []byte, opts TxOptions) (bool, error)
}
