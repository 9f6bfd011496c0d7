package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
)

// remoteChain is an RPC view of the network hosting the token contract,
// pinned to the block height observed at dial time.
type remoteChain struct {
	rpc   *rpcclient.Client
	actor *actor.Actor

	currentBlock uint32
}

// dialChain connects to the Neo RPC server and records the current chain
// height the snapshot will be attributed to. The actor is backed by a
// throwaway account: the command only reads.
func dialChain(endpoint string) (*remoteChain, error) {
	acc, err := wallet.NewAccount()
	if err != nil {
		return nil, fmt.Errorf("generate one-off Neo account: %w", err)
	}

	c, err := rpcclient.New(context.Background(), endpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	act, err := actor.NewSimple(c, acc)
	if err != nil {
		return nil, fmt.Errorf("init actor: %w", err)
	}

	height, err := act.GetBlockCount()
	if err != nil {
		return nil, fmt.Errorf("get chain height: %w", err)
	}

	return &remoteChain{
		rpc:          c,
		actor:        act,
		currentBlock: height,
	}, nil
}

func (x *remoteChain) close() {
	x.rpc.Close()
}

// forEachStorageItem feeds every storage item of the given contract into f,
// walking the state at the latest settled root so one snapshot never mixes
// two heights. It stops at the first f error and returns it.
func (x *remoteChain) forEachStorageItem(contract util.Uint160, f func(key, value []byte) error) error {
	height, err := x.actor.GetBlockCount()
	if err != nil {
		return fmt.Errorf("get chain height: %w", err)
	}

	stateRoot, err := x.rpc.GetStateRootByHeight(height - 1)
	if err != nil {
		return fmt.Errorf("get state root at penult block #%d: %w", height-1, err)
	}

	var start []byte

	for {
		res, err := x.rpc.FindStates(stateRoot.Root, contract, nil, start, nil)
		if err != nil {
			return fmt.Errorf("list storage items of the contract at state root '%s': %w", stateRoot.Root, err)
		}

		for i := range res.Results {
			err = f(res.Results[i].Key, res.Results[i].Value)
			if err != nil {
				return err
			}
		}

		if !res.Truncated {
			return nil
		}

		start = res.Results[len(res.Results)-1].Key
	}
}
