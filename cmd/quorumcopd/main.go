// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command quorumcopd demonstrates the checkpoint/state-change vote handler
// end to end: it wires in-memory external collaborators, feeds a synthetic
// block stream through quorumcop.Handler, and casts votes from a small
// simulated validator set so a reader can watch checkpoints accumulate
// signatures and commit without standing up a real blockchain daemon.
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"flag"
	"fmt"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/luxfi/quorumcop/config"
	"github.com/luxfi/quorumcop/external"
	"github.com/luxfi/quorumcop/externaltest"
	"github.com/luxfi/quorumcop/metrics"
	"github.com/luxfi/quorumcop/quorumcop"
	"github.com/luxfi/quorumcop/vote"
)

func main() {
	blocks := flag.Int("blocks", 40, "number of synthetic blocks to feed the driver")
	validators := flag.Int("validators", 10, "size of the checkpointing quorum's validator list")
	flag.Parse()

	logger := log.NewNoOpLogger()
	params := config.NewBuilder().
		CheckpointInterval(4).
		CheckpointMinVotes(7).
		CheckpointQuorumSize(*validators).
		StateChangeMinVotes(7).
		VoteLifetime(60).
		MinUptimeBeforeVoting(0).
		Build()

	chain := externaltest.NewBlockchain(params.CheckpointingHardFork)
	quorums := externaltest.NewQuorumProvider()
	registry := externaltest.NewServiceNodeRegistry()
	txpool := externaltest.NewTxPool()

	keys := make([]ed25519.PublicKey, *validators)
	privs := make([]ed25519.PrivateKey, *validators)
	for i := range keys {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			panic(err)
		}
		keys[i] = pub
		privs[i] = priv
	}

	registerer := prometheus.NewRegistry()
	m, err := metrics.NewMetrics(registerer)
	if err != nil {
		panic(err)
	}

	handler := quorumcop.New(quorumcop.Config{
		Chain:    chain,
		Quorums:  quorums,
		Registry: registry,
		TxPool:   txpool,
		Params:   params,
		Log:      logger,
		StartTime: time.Now().Add(-24 * time.Hour),
		Metrics:   m,
	})
	handler.Init()

	validatorIDs := make([]ids.ID, *validators)
	for i, pub := range keys {
		var id ids.ID
		copy(id[:], pub)
		validatorIDs[i] = id
	}
	quorum := external.Quorum{Validators: validatorIDs}

	for h := uint64(0); h < uint64(*blocks); h++ {
		var blockHash ids.ID
		blockHash[0] = byte(h)
		blockHash[1] = byte(h >> 8)

		quorums.SetQuorum(vote.QuorumCheckpointing, h, quorum)
		chain.SetBlock(external.Block{Height: h, Hash: blockHash, MajorVersion: params.CheckpointingHardFork, Timestamp: time.Now().Unix()})
		chain.SetHeight(h)

		if h%params.CheckpointInterval == 0 {
			for i, priv := range privs {
				v := vote.NewCheckpointVote(h, blockHash, uint16(i))
				v.Sign(priv)
				if err := handler.HandleVote(v); err != nil {
					fmt.Printf("height %d voter %d: %v\n", h, i, err)
				}
			}
		}

		if err := handler.BlockAdded(external.Block{Height: h, MajorVersion: params.CheckpointingHardFork}); err != nil {
			fmt.Printf("block %d: %v\n", h, err)
		}

		if cp, ok := chain.GetCheckpoint(h); ok {
			fmt.Printf("height %d: checkpoint committed with %d signatures\n", h, len(cp.Signatures))
		}
	}

	var committed dto.Metric
	if err := m.CheckpointsCommitted.Write(&committed); err == nil {
		fmt.Printf("total checkpoints committed: %.0f\n", committed.GetCounter().GetValue())
	}
}
