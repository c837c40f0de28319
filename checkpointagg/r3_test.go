// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package checkpointagg

import (
	"sync"
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/luxfi/quorumcop/external"
	"github.com/luxfi/quorumcop/externalmock"
)

// fakeLockedStore backs the mocked Blockchain with real mutual exclusion, so
// the race detector and gomock's call count together prove the commit path
// is linearizable (property R3) rather than just asserting it by fiat.
type fakeLockedStore struct {
	mu      sync.Mutex
	cp      external.Checkpoint
	present bool
}

// TestProcessCommitsExactlyOnceUnderConcurrentIdenticalVotes exercises two
// goroutines racing to aggregate the same relayed vote set for the same
// (height, hash) target -- mirroring duplicate relay copies arriving over
// different paths. UpdateCheckpoint must be observed exactly once: the
// second call's merge must see its own votes already present and decline
// to commit, never double-committing the identical signature set.
func TestProcessCommitsExactlyOnceUnderConcurrentIdenticalVotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := &fakeLockedStore{}
	bc := externalmock.NewMockBlockchain(ctrl)

	bc.EXPECT().Lock().DoAndReturn(func() func() {
		store.mu.Lock()
		return func() { store.mu.Unlock() }
	}).AnyTimes()
	bc.EXPECT().GetCheckpoint(gomock.Any()).DoAndReturn(func(uint64) (external.Checkpoint, bool) {
		return store.cp, store.present
	}).AnyTimes()
	bc.EXPECT().UpdateCheckpoint(gomock.Any()).DoAndReturn(func(cp external.Checkpoint) error {
		store.cp = cp
		store.present = true
		return nil
	}).Times(1)

	agg := New(bc, testParams(3, 10), nil, nil, nil)

	var hash ids.ID
	hash[0] = 5
	votes := entriesFor(0, 1, 2)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = agg.Process(10, hash, votes)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	require.True(t, store.present)
	require.Len(t, store.cp.Signatures, 3)
}
