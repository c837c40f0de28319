// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vote

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	var blockHash ids.ID
	blockHash[0] = 7

	v := NewCheckpointVote(100, blockHash, 3)
	v.Sign(priv)

	require.True(t, v.VerifySignature(pub))
}

func TestVerifySignatureRejectsTamperedVote(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	var blockHash ids.ID
	v := NewCheckpointVote(100, blockHash, 3)
	v.Sign(priv)

	v.BlockHeight = 101 // tamper with a signed field
	require.False(t, v.VerifySignature(pub))
}

func TestSigningDigestExcludesTransportFields(t *testing.T) {
	var blockHash ids.ID
	a := NewCheckpointVote(5, blockHash, 0)
	b := NewCheckpointVote(5, blockHash, 1)

	require.Equal(t, a.SigningDigest(), b.SigningDigest(), "voter index must not affect the signing digest")
}

func TestSigningDigestDomainSeparation(t *testing.T) {
	var blockHash ids.ID
	checkpoint := NewCheckpointVote(5, blockHash, 0)
	stateChange := NewStateChangeVote(5, 0, 0, StateDeregister)

	require.NotEqual(t, checkpoint.SigningDigest(), stateChange.SigningDigest())
}

func TestIdentityDiscriminatesTargets(t *testing.T) {
	var hashA, hashB ids.ID
	hashB[0] = 1

	v1 := NewCheckpointVote(10, hashA, 2)
	v2 := NewCheckpointVote(10, hashB, 2)

	require.NotEqual(t, v1.Identity(), v2.Identity(), "votes for different block hashes at the same height/voter must not share an identity")
	require.NotEqual(t, v1.Target(), v2.Target())
}

func TestStateChangeIdentityIgnoresBlockHash(t *testing.T) {
	v1 := NewStateChangeVote(10, 0, 5, StateDecommission)
	v2 := NewStateChangeVote(10, 0, 5, StateDecommission)
	v2.BlockHash[0] = 1
	require.Equal(t, v1.Identity(), v2.Identity())
}

func TestQuorumTypeOf(t *testing.T) {
	var hash ids.ID
	require.Equal(t, QuorumCheckpointing, NewCheckpointVote(1, hash, 0).QuorumTypeOf())
	require.Equal(t, QuorumObligations, NewStateChangeVote(1, 0, 0, StateDeregister).QuorumTypeOf())
}
