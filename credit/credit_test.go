// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package credit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/quorumcop/config"
	"github.com/luxfi/quorumcop/external"
)

func TestCalculateNotFullyFundedEarnsNoCredit(t *testing.T) {
	p := config.Mainnet()
	info := external.NodeInfo{IsFullyFunded: false, ActiveSinceHeight: 0, State: external.NodeActive}

	// Even with a huge current height (which would otherwise earn a large
	// credit), an unfunded node earns exactly zero -- the fixed behavior
	// for the original's dead-but-intended !is_fully_funded branch.
	require.Equal(t, int64(0), Calculate(info, 1_000_000, p))
}

func TestCalculateActiveNodeEarnsProportionalCredit(t *testing.T) {
	p := config.Mainnet()
	info := external.NodeInfo{
		IsFullyFunded:     true,
		ActiveSinceHeight: 0,
		State:             external.NodeActive,
		DecommissionCount: 0,
	}

	earned := Calculate(info, p.BlocksPerDay, p) // exactly one day of uptime
	require.Equal(t, p.CreditPerDay+p.InitialCredit, earned)
}

func TestCalculateCapsAtMaxCredit(t *testing.T) {
	p := config.Mainnet()
	info := external.NodeInfo{
		IsFullyFunded:     true,
		ActiveSinceHeight: 0,
		State:             external.NodeActive,
	}

	earned := Calculate(info, p.BlocksPerDay*365, p)
	require.Equal(t, p.MaxCredit, earned)
}

func TestCalculateDecommissionedNodeSpendsCredit(t *testing.T) {
	p := config.Mainnet()
	const lastDecommissionHeight = 1000
	// Encode "was active for exactly one day before this decommission":
	// ActiveSinceHeight is the negative of the height the pre-decommission
	// active period started at.
	info := external.NodeInfo{
		IsFullyFunded:          true,
		ActiveSinceHeight:      -int64(lastDecommissionHeight - p.BlocksPerDay),
		LastDecommissionHeight: lastDecommissionHeight,
		State:                  external.NodeDecommissioned,
		DecommissionCount:      1,
	}

	earnedAtDecommission := Calculate(info, 1000, p)
	require.Equal(t, p.CreditPerDay+p.InitialCredit, earnedAtDecommission)

	// 100 blocks later, 100 blocks of credit have been spent.
	spentLater := Calculate(info, 1100, p)
	require.Equal(t, earnedAtDecommission-100, spentLater)
}

func TestCalculateExhaustedCreditGoesNegative(t *testing.T) {
	p := config.Mainnet()
	info := external.NodeInfo{
		IsFullyFunded:          true,
		ActiveSinceHeight:      0,
		LastDecommissionHeight: 100,
		State:                  external.NodeDecommissioned,
		DecommissionCount:      1,
	}

	// creditEarned at decommission is bounded by MaxCredit; staying
	// decommissioned for far longer than that must drive credit negative.
	earned := Calculate(info, 100+p.MaxCredit*2, p)
	require.Less(t, earned, int64(0))
}

func TestCalculateSecondDecommissionGetsNoInitialCredit(t *testing.T) {
	p := config.Mainnet()
	info := external.NodeInfo{
		IsFullyFunded:     true,
		ActiveSinceHeight: 0,
		State:             external.NodeActive,
		DecommissionCount: 2, // already decommissioned twice before
	}

	earned := Calculate(info, p.BlocksPerDay, p)
	require.Equal(t, p.CreditPerDay, earned, "a node past its first decommission must not receive the initial credit bonus again")
}
