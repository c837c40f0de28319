// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package credit implements the decommission credit arithmetic of spec.md
// §4.6: the uptime-earned budget that lets a failing active node be
// decommissioned instead of deregistered outright, and that is spent down
// while the node sits decommissioned.
//
// Grounded directly on calculate_decommission_credit in
// original_source/src/cryptonote_core/checkpoint_vote_handler.cpp, with the
// !is_fully_funded early-return fix recorded in DESIGN.md's "Open-question
// decisions" (the original sets blocks_up = 0 on that branch but has no
// early return, so the very next if/else silently overwrites it — a no-op
// dead branch in the source we do not reproduce).
package credit

import (
	"github.com/luxfi/quorumcop/config"
	"github.com/luxfi/quorumcop/external"
)

// Calculate returns the decommission credit, in blocks, a node has earned
// as of currentHeight. A node that is not fully funded has earned none.
// Negative return values mean the node's credit is exhausted.
func Calculate(info external.NodeInfo, currentHeight uint64, params config.Params) int64 {
	if !info.IsFullyFunded {
		return 0
	}

	var blocksUp int64
	if info.IsDecommissioned() {
		// The negative of ActiveSinceHeight records when the period
		// leading up to the current decommission started.
		blocksUp = int64(info.LastDecommissionHeight) - (-info.ActiveSinceHeight)
	} else {
		blocksUp = int64(currentHeight) - info.ActiveSinceHeight
	}

	var creditEarned int64
	if blocksUp >= 0 {
		creditEarned = blocksUp * params.CreditPerDay / params.BlocksPerDay

		neverDecommissioned := info.DecommissionCount <= boolToInt(info.IsDecommissioned())
		if neverDecommissioned {
			creditEarned += params.InitialCredit
		}
		if creditEarned > params.MaxCredit {
			creditEarned = params.MaxCredit
		}
	}

	if info.IsDecommissioned() {
		// Spend down credit for time already served in this decommission.
		creditEarned -= int64(currentHeight) - int64(info.LastDecommissionHeight)
	}

	return creditEarned
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
