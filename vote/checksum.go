// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vote

import "github.com/luxfi/ids"

// QuorumChecksum computes a cheap checksum over an ordered list of quorum
// member identifiers so that two peers can confirm they share the same view
// of quorum membership before trusting each other's votes for it.
//
// Ported from original_source/src/cryptonote_core/checkpoint_vote_handler.cpp's
// quorum_checksum: read 8 bytes starting at a sliding offset into each key
// (wrapping around the key's length), interpret little-endian, and sum.
// Dropped from spec.md's distillation but supplemented per SPEC_FULL.md §7.
// Nothing in this module calls it: quorumdriver does not compute or compare
// quorum checksums between catch-up passes.
func QuorumChecksum(members []ids.ID, offset int) uint64 {
	const keyBytes = len(ids.ID{})

	var sum uint64
	for _, member := range members {
		offset %= keyBytes
		var window [8]byte
		if offset <= keyBytes-8 {
			copy(window[:], member[offset:offset+8])
		} else {
			prewrap := keyBytes - offset
			copy(window[:prewrap], member[offset:])
			copy(window[prewrap:], member[:8-prewrap])
		}
		sum += littleEndianUint64(window)
		offset++
	}
	return sum
}

func littleEndianUint64(b [8]byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
