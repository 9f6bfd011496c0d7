// Package deploy provides a procedure synchronizing the Transparent Fungible
// Token contract with a Neo blockchain network. The procedure is idempotent:
// if the contract is already on the chain, it does nothing.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the contract deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to
	// the blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by
	// its address. GetContractStateByHash returns error with 'Unknown
	// contract' substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// Prm groups parameters of the token contract deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance the contract is deployed to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	LocalAccount *wallet.Account

	// Compiled token contract.
	NEF      nef.File
	Manifest manifest.Manifest

	// Account credited with the whole token supply on deployment.
	InitialHolder *keys.PublicKey
	// Total amount of tokens minted to InitialHolder. Must be positive.
	InitialSupply uint64
}

// Deploy initializes the token contract on the blockchain represented by
// prm.Blockchain. In the happy path, all token units end up on the
// prm.InitialHolder account and the contract is ready to serve signed
// transfer orders.
//
// Deploy logs its progress into prm.Logger.
func Deploy(ctx context.Context, prm Prm) error {
	if prm.InitialHolder == nil {
		return errors.New("missing initial holder key")
	}
	if prm.InitialSupply == 0 {
		return errors.New("initial supply must be positive")
	}

	localActor, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return fmt.Errorf("init transaction sender from local account: %w", err)
	}

	contractAddress := state.CreateContractHash(localActor.Sender(), prm.NEF.Checksum, prm.Manifest.Name)

	_, err = prm.Blockchain.GetContractStateByHash(contractAddress)
	if err == nil {
		prm.Logger.Info("contract is already on the chain", zap.Stringer("address", contractAddress))
		return nil
	} else if !strings.Contains(err.Error(), "Unknown contract") {
		return fmt.Errorf("read on-chain state of the contract by address: %w", err)
	}

	if err = ctx.Err(); err != nil {
		return fmt.Errorf("wait for the contract deployment: %w", err)
	}

	prm.Logger.Info("contract is missing on the chain, deploying...",
		zap.Stringer("address", contractAddress),
		zap.Stringer("holder", prm.InitialHolder.GetScriptHash()),
		zap.Uint64("supply", prm.InitialSupply),
	)

	data := []any{
		prm.InitialHolder.Bytes(),
		new(big.Int).SetUint64(prm.InitialSupply),
	}

	rec, err := localActor.Wait(management.New(localActor).Deploy(&prm.NEF, &prm.Manifest, data))
	if err != nil {
		return fmt.Errorf("deploy contract: %w", err)
	} else if rec.VMState != vmstate.Halt {
		return fmt.Errorf("deploy transaction faulted: %s", rec.FaultException)
	}

	prm.Logger.Info("contract successfully deployed on the chain", zap.Stringer("address", contractAddress))

	return nil
}
