// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package voteverify implements the per-vote verification stages of
// spec.md §4.3: age, quorum membership, index range, and signature. Verify
// is pure and re-entrant — it must never mutate handler state (spec.md
// §4.3's closing line), so it takes every piece of state it needs as an
// argument rather than reading from a shared handle.
package voteverify

import (
	"crypto/ed25519"

	"github.com/luxfi/quorumcop/config"
	"github.com/luxfi/quorumcop/external"
	"github.com/luxfi/quorumcop/vote"
)

// Reason mirrors the C++ vote_verification_context bitfield (spec.md §7):
// a discriminant the caller can branch on, distinct from a single error
// value because "already in pool" is explicitly not a failure.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonInvalidBlockHeight
	ReasonFutureBlockHeight
	ReasonWorkerIndexOOB
	ReasonNotInQuorum
	ReasonSignatureInvalid
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonInvalidBlockHeight:
		return "invalid_block_height"
	case ReasonFutureBlockHeight:
		return "future_block_height"
	case ReasonWorkerIndexOOB:
		return "worker_index_oob"
	case ReasonNotInQuorum:
		return "not_in_quorum"
	case ReasonSignatureInvalid:
		return "signature_invalid"
	default:
		return "unknown"
	}
}

// Context is the verification outcome Verify returns: OK reports success,
// and Reason names the specific rejection so callers can log/meter it.
type Context struct {
	OK     bool
	Reason Reason
}

// Verify runs the four staged checks of spec.md §4.3, short-circuiting on
// the first failure. quorum must already be the result of calling
// QuorumProvider.GetQuorum for (v's quorum type, v.BlockHeight); a missing
// quorum is reported by the caller passing ok=false, which this function
// maps to ReasonInvalidBlockHeight (spec.md §4.3 stage 2).
func Verify(v vote.Vote, chainHeight uint64, p config.Params, quorum external.Quorum, quorumOK bool) Context {
	// Stage 1: age.
	if v.BlockHeight+p.VoteLifetime <= chainHeight {
		return Context{Reason: ReasonInvalidBlockHeight}
	}
	if v.BlockHeight > chainHeight+p.VoteLookahead {
		return Context{Reason: ReasonFutureBlockHeight}
	}

	// Stage 2: quorum fetch.
	if !quorumOK {
		return Context{Reason: ReasonInvalidBlockHeight}
	}

	// Stage 3: index range.
	if int(v.VoterIndex) >= len(quorum.Validators) {
		return Context{Reason: ReasonNotInQuorum}
	}
	if v.Shape == vote.KindStateChange && int(v.TargetIndex) >= len(quorum.Workers) {
		return Context{Reason: ReasonWorkerIndexOOB}
	}

	// Stage 4: signature.
	signer := quorum.Validators[v.VoterIndex]
	if !v.VerifySignature(ed25519.PublicKey(signer[:])) {
		return Context{Reason: ReasonSignatureInvalid}
	}

	return Context{OK: true, Reason: ReasonNone}
}
