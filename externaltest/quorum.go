// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package externaltest

import (
	"sync"

	"github.com/luxfi/quorumcop/vote"

	"github.com/luxfi/quorumcop/external"
)

type quorumKey struct {
	Type   vote.QuorumType
	Height uint64
}

// QuorumProvider is an in-memory external.QuorumProvider fake.
type QuorumProvider struct {
	mu      sync.Mutex
	quorums map[quorumKey]external.Quorum

	GetQuorumF func(vote.QuorumType, uint64) (external.Quorum, bool)
}

// NewQuorumProvider returns an empty QuorumProvider fake.
func NewQuorumProvider() *QuorumProvider {
	return &QuorumProvider{quorums: make(map[quorumKey]external.Quorum)}
}

// SetQuorum registers the quorum membership for (qtype, height).
func (q *QuorumProvider) SetQuorum(qtype vote.QuorumType, height uint64, quorum external.Quorum) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.quorums[quorumKey{qtype, height}] = quorum
}

func (q *QuorumProvider) GetQuorum(qtype vote.QuorumType, height uint64) (external.Quorum, bool) {
	if q.GetQuorumF != nil {
		return q.GetQuorumF(qtype, height)
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	quorum, ok := q.quorums[quorumKey{qtype, height}]
	return quorum, ok
}
