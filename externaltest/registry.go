// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package externaltest

import (
	"crypto/ed25519"
	"sync"

	"github.com/luxfi/ids"

	"github.com/luxfi/quorumcop/external"
)

// ServiceNodeRegistry is an in-memory external.ServiceNodeRegistry fake.
type ServiceNodeRegistry struct {
	mu    sync.Mutex
	nodes map[ids.ID]external.NodeInfo
	votes map[ids.ID]map[uint64]bool

	pub  ids.ID
	priv ed25519.PrivateKey
	keysOK bool

	ListStateF            func([]ids.ID) ([]external.NodeInfo, error)
	IsActiveF             func(ids.ID) bool
	KeysF                 func() (ids.ID, ed25519.PrivateKey, bool)
	RecordCheckpointVoteF func(ids.ID, uint64, bool)
	CheckServiceNodeF     func(uint8, ids.ID, external.NodeInfo) external.TestResult
}

// NewServiceNodeRegistry returns an empty ServiceNodeRegistry fake.
func NewServiceNodeRegistry() *ServiceNodeRegistry {
	return &ServiceNodeRegistry{
		nodes: make(map[ids.ID]external.NodeInfo),
		votes: make(map[ids.ID]map[uint64]bool),
	}
}

// SetNode registers (or replaces) a node's projected state.
func (r *ServiceNodeRegistry) SetNode(key ids.ID, info external.NodeInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes[key] = info
}

// SetKeys configures this registry's own service-node identity, returned
// by Keys.
func (r *ServiceNodeRegistry) SetKeys(pub ids.ID, priv ed25519.PrivateKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pub, r.priv, r.keysOK = pub, priv, true
}

func (r *ServiceNodeRegistry) ListState(keys []ids.ID) ([]external.NodeInfo, error) {
	if r.ListStateF != nil {
		return r.ListStateF(keys)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]external.NodeInfo, 0, len(keys))
	for _, k := range keys {
		if info, ok := r.nodes[k]; ok {
			out = append(out, info)
		}
	}
	return out, nil
}

func (r *ServiceNodeRegistry) IsActive(key ids.ID) bool {
	if r.IsActiveF != nil {
		return r.IsActiveF(key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	info, ok := r.nodes[key]
	return ok && info.IsActive()
}

func (r *ServiceNodeRegistry) Keys() (ids.ID, ed25519.PrivateKey, bool) {
	if r.KeysF != nil {
		return r.KeysF()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pub, r.priv, r.keysOK
}

func (r *ServiceNodeRegistry) RecordCheckpointVote(voterKey ids.ID, height uint64, present bool) {
	if r.RecordCheckpointVoteF != nil {
		r.RecordCheckpointVoteF(voterKey, height, present)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.votes[voterKey] == nil {
		r.votes[voterKey] = make(map[uint64]bool)
	}
	r.votes[voterKey][height] = present
}

func (r *ServiceNodeRegistry) CheckServiceNode(hfVersion uint8, key ids.ID, info external.NodeInfo) external.TestResult {
	if r.CheckServiceNodeF != nil {
		return r.CheckServiceNodeF(hfVersion, key, info)
	}
	return external.TestResult{Passed: true, SingleIP: true, UptimeProved: true}
}
