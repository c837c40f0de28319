// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vote

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestQuorumChecksumDeterministic(t *testing.T) {
	var a, b ids.ID
	a[0], b[0] = 1, 2
	members := []ids.ID{a, b}

	require.Equal(t, QuorumChecksum(members, 0), QuorumChecksum(members, 0))
}

func TestQuorumChecksumOrderSensitive(t *testing.T) {
	var a, b ids.ID
	a[0], b[0] = 1, 2

	require.NotEqual(t, QuorumChecksum([]ids.ID{a, b}, 0), QuorumChecksum([]ids.ID{b, a}, 0))
}

func TestQuorumChecksumEmpty(t *testing.T) {
	require.Equal(t, uint64(0), QuorumChecksum(nil, 0))
}
