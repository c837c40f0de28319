// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics wires this subsystem's Prometheus collectors: live pool
// size, votes received, checkpoints committed, state-change transactions
// submitted, and decommission credit observed.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	errFailedPoolSizeMetric      = errors.New("failed to register pool_size metric")
	errFailedVotesReceivedMetric = errors.New("failed to register votes_received metric")
	errFailedCheckpointsMetric   = errors.New("failed to register checkpoints_committed metric")
	errFailedStateChangeTxMetric = errors.New("failed to register state_change_txs metric")
	errFailedCreditMetric        = errors.New("failed to register decommission_credit metric")
)

// Metrics bundles every collector this subsystem registers against a
// caller-supplied prometheus.Registerer.
type Metrics struct {
	Registry prometheus.Registerer

	PoolSize             prometheus.Gauge
	VotesReceived        *prometheus.CounterVec
	CheckpointsCommitted prometheus.Counter
	StateChangeTxs       *prometheus.CounterVec
	DecommissionCredit   prometheus.Histogram
}

// NewMetrics constructs and registers every collector against reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	poolSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "quorumcop_pool_size",
		Help: "Number of aggregation-target groups currently held in the vote pool",
	})
	if err := reg.Register(poolSize); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedPoolSizeMetric, err)
	}

	votesReceived := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quorumcop_votes_received_total",
		Help: "Number of votes accepted into the pool, by quorum type",
	}, []string{"quorum_type"})
	if err := reg.Register(votesReceived); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedVotesReceivedMetric, err)
	}

	checkpointsCommitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quorumcop_checkpoints_committed_total",
		Help: "Number of checkpoint commits (fresh or merged) performed",
	})
	if err := reg.Register(checkpointsCommitted); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedCheckpointsMetric, err)
	}

	stateChangeTxs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quorumcop_state_change_txs_total",
		Help: "Number of state-change transactions submitted, by new state",
	}, []string{"new_state"})
	if err := reg.Register(stateChangeTxs); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedStateChangeTxMetric, err)
	}

	decommissionCredit := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "quorumcop_decommission_credit_blocks",
		Help:    "Decommission credit (in blocks) observed while evaluating obligations votes",
		Buckets: prometheus.LinearBuckets(-720, 720, 10),
	})
	if err := reg.Register(decommissionCredit); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedCreditMetric, err)
	}

	return &Metrics{
		Registry:             reg,
		PoolSize:             poolSize,
		VotesReceived:        votesReceived,
		CheckpointsCommitted: checkpointsCommitted,
		StateChangeTxs:       stateChangeTxs,
		DecommissionCredit:   decommissionCredit,
	}, nil
}

// Register registers an additional prometheus collector against the same
// registry, kept for callers that need to add their own ad hoc collectors.
func (m *Metrics) Register(collector prometheus.Collector) error {
	return m.Registry.Register(collector)
}
