// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReorgSafetyBufferSelectsByHardFork(t *testing.T) {
	p := Mainnet()
	require.Equal(t, p.ReorgSafetyBufferPreHF, p.ReorgSafetyBuffer(p.ReorgSafetyHardFork-1))
	require.Equal(t, p.ReorgSafetyBufferPostHF, p.ReorgSafetyBuffer(p.ReorgSafetyHardFork))
	require.Equal(t, p.ReorgSafetyBufferPostHF, p.ReorgSafetyBuffer(p.ReorgSafetyHardFork+1))
}

func TestBuilderOverridesOnlyNamedFields(t *testing.T) {
	p := NewBuilder().CheckpointMinVotes(2).Build()
	mainnet := Mainnet()

	require.Equal(t, 2, p.CheckpointMinVotes)
	require.Equal(t, mainnet.VoteLifetime, p.VoteLifetime, "unrelated fields must keep their Mainnet default")
	require.Equal(t, mainnet.CreditPerDay, p.CreditPerDay)
}

func TestBuilderChainsIndependently(t *testing.T) {
	p := NewBuilder().
		VoteLifetime(5).
		CheckpointInterval(2).
		CheckpointQuorumSize(3).
		StateChangeMinVotes(4).
		ReorgSafetyBuffer(1, 2).
		MinUptimeBeforeVoting(0).
		Build()

	require.Equal(t, uint64(5), p.VoteLifetime)
	require.Equal(t, uint64(2), p.CheckpointInterval)
	require.Equal(t, 3, p.CheckpointQuorumSize)
	require.Equal(t, 4, p.StateChangeMinVotes)
	require.Equal(t, uint64(1), p.ReorgSafetyBufferPreHF)
	require.Equal(t, uint64(2), p.ReorgSafetyBufferPostHF)
}
