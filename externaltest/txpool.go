// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package externaltest

import (
	"context"
	"sync"

	"github.com/luxfi/quorumcop/external"
)

// TxPool is an in-memory external.TxPool fake that records every
// submitted blob.
type TxPool struct {
	mu       sync.Mutex
	accepted [][]byte

	Accept bool // whether HandleIncomingTx should report acceptance; true by default

	HandleIncomingTxF func(context.Context, []byte, external.TxOptions) (bool, error)
}

// NewTxPool returns a TxPool fake that accepts every submitted transaction.
func NewTxPool() *TxPool {
	return &TxPool{Accept: true}
}

func (p *TxPool) HandleIncomingTx(ctx context.Context, blob []byte, opts external.TxOptions) (bool, error) {
	if p.HandleIncomingTxF != nil {
		return p.HandleIncomingTxF(ctx, blob, opts)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.Accept {
		return false, nil
	}
	p.accepted = append(p.accepted, blob)
	return true, nil
}

// Accepted returns every blob accepted so far.
func (p *TxPool) Accepted() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.accepted))
	copy(out, p.accepted)
	return out
}
