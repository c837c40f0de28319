// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vote defines the two vote shapes this subsystem handles
// (checkpoint votes and service-node state-change votes), their signing
// digest, and the Ed25519 sign/verify primitives used to authenticate them.
package vote

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"github.com/luxfi/ids"
)

// QuorumType distinguishes the two quorums this subsystem aggregates votes
// for. It follows from a Vote's Shape, per spec.md §3; Vote also keeps a
// copy of it in its Kind field.
type QuorumType uint8

const (
	QuorumObligations QuorumType = iota
	QuorumCheckpointing
)

func (t QuorumType) String() string {
	if t == QuorumCheckpointing {
		return "checkpointing"
	}
	return "obligations"
}

// Kind tags which of the two vote shapes a Vote carries.
type Kind uint8

const (
	KindCheckpoint Kind = iota
	KindStateChange
)

// NewState enumerates the state a state-change vote proposes for its
// target worker.
type NewState uint8

const (
	StateDeregister NewState = iota
	StateDecommission
	StateRecommission
	StateIPChangePenalty
)

func (s NewState) String() string {
	switch s {
	case StateDeregister:
		return "deregister"
	case StateDecommission:
		return "decommission"
	case StateRecommission:
		return "recommission"
	case StateIPChangePenalty:
		return "ip_change_penalty"
	default:
		return "unknown"
	}
}

var (
	// ErrWrongKind names a kind mismatch: a Vote of the other Kind where
	// one Kind was expected. No function in this package returns it; Vote
	// has no kind-checking accessors, and production code switches on
	// Shape instead.
	ErrWrongKind = errors.New("vote: accessor does not match vote kind")
)

// Vote is a tagged union over the two shapes spec.md §3 defines. Exhaustive
// switch on Kind, not inheritance, per spec.md §9 "polymorphism over vote
// kind".
type Vote struct {
	Kind QuorumType // redundant with the Kind-derived quorum type, kept for fast lookups; always checkpointing iff Shape == KindCheckpoint

	Shape       Kind
	BlockHeight uint64
	VoterIndex  uint16
	Signature   [ed25519.SignatureSize]byte

	// Checkpoint shape fields.
	BlockHash ids.ID

	// State-change shape fields.
	TargetIndex uint16
	NewState    NewState
}

// NewCheckpointVote constructs a checkpoint vote with an unset signature;
// callers sign it with Sign before relay.
func NewCheckpointVote(height uint64, blockHash ids.ID, voterIndex uint16) Vote {
	return Vote{
		Kind:        QuorumCheckpointing,
		Shape:       KindCheckpoint,
		BlockHeight: height,
		BlockHash:   blockHash,
		VoterIndex:  voterIndex,
	}
}

// NewStateChangeVote constructs a state-change vote with an unset signature.
func NewStateChangeVote(height uint64, voterIndex, targetIndex uint16, newState NewState) Vote {
	return Vote{
		Kind:        QuorumObligations,
		Shape:       KindStateChange,
		BlockHeight: height,
		VoterIndex:  voterIndex,
		TargetIndex: targetIndex,
		NewState:    newState,
	}
}

// QuorumTypeOf returns the quorum this vote belongs to.
func (v Vote) QuorumTypeOf() QuorumType { return v.Kind }

// domain-separation prefixes so a checkpoint digest can never collide with
// a state-change digest even if the remaining serialized fields happened to
// match byte-for-byte.
const (
	domainCheckpoint  = "quorumcop/checkpoint-vote/v1"
	domainStateChange = "quorumcop/state-change-vote/v1"
)

// SigningDigest returns the domain-separated hash of the fields this vote
// commits to, excluding VoterIndex and Signature (transport fields, not
// signed, per spec.md §4.1).
func (v Vote) SigningDigest() [32]byte {
	h := sha256.New()
	switch v.Shape {
	case KindCheckpoint:
		h.Write([]byte(domainCheckpoint))
		writeUint64(h, v.BlockHeight)
		h.Write(v.BlockHash[:])
	case KindStateChange:
		h.Write([]byte(domainStateChange))
		writeUint64(h, v.BlockHeight)
		writeUint16(h, v.TargetIndex)
		h.Write([]byte{byte(v.NewState)})
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func writeUint64(w interface{ Write([]byte) (int, error) }, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.Write(b[:])
}

func writeUint16(w interface{ Write([]byte) (int, error) }, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.Write(b[:])
}

// Sign computes the Ed25519 signature over the vote's signing digest and
// stores it on the vote.
func (v *Vote) Sign(priv ed25519.PrivateKey) {
	digest := v.SigningDigest()
	sig := ed25519.Sign(priv, digest[:])
	copy(v.Signature[:], sig)
}

// VerifySignature checks the vote's signature against the given Ed25519
// public key. It is pure and allocation-light so voteverify can call it on
// the hot path.
func (v Vote) VerifySignature(pub ed25519.PublicKey) bool {
	digest := v.SigningDigest()
	return ed25519.Verify(pub, digest[:], v.Signature[:])
}

// Identity returns the (quorum type, height, voter index, discriminator)
// tuple spec.md §3 Invariant 1 and §4.2 dedup key. The discriminator
// distinguishes votes for different aggregation targets at the same
// height (different block hash, or different target/new-state pair) so
// they never merge, per spec.md §4.2.
type Identity struct {
	Type          QuorumType
	Height        uint64
	VoterIndex    uint16
	Discriminator Discriminator
}

// Discriminator is the per-shape aggregation-target key.
type Discriminator struct {
	BlockHash   ids.ID
	TargetIndex uint16
	NewState    NewState
}

// Identity returns this vote's pool identity.
func (v Vote) Identity() Identity {
	switch v.Shape {
	case KindCheckpoint:
		return Identity{
			Type:       QuorumCheckpointing,
			Height:     v.BlockHeight,
			VoterIndex: v.VoterIndex,
			Discriminator: Discriminator{
				BlockHash: v.BlockHash,
			},
		}
	default:
		return Identity{
			Type:       QuorumObligations,
			Height:     v.BlockHeight,
			VoterIndex: v.VoterIndex,
			Discriminator: Discriminator{
				TargetIndex: v.TargetIndex,
				NewState:    v.NewState,
			},
		}
	}
}

// TargetKey identifies an aggregation target: all votes sharing a TargetKey
// are candidates for the same checkpoint or the same state-change tx.
type TargetKey struct {
	Type          QuorumType
	Height        uint64
	Discriminator Discriminator
}

// Target returns this vote's aggregation target key.
func (v Vote) Target() TargetKey {
	id := v.Identity()
	return TargetKey{Type: id.Type, Height: id.Height, Discriminator: id.Discriminator}
}
