// Package ttoken contains client-side API of the Transparent Fungible Token
// contract: signed call payload builders and RPC wrappers for its methods.
package ttoken

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// AccountState is a contract-specific token.AccountState type used by its methods.
type AccountState struct {
	Balance *big.Int
	Nonce   *big.Int
}

// TransferEvent represents "Transfer" event emitted by the contract.
type TransferEvent struct {
	From   *keys.PublicKey
	To     *keys.PublicKey
	Amount *big.Int
}

// TransferXEvent represents "TransferX" event emitted by the contract.
type TransferXEvent struct {
	Owner   *keys.PublicKey
	Spender *keys.PublicKey
	To      *keys.PublicKey
	Amount  *big.Int
}

// ApproveEvent represents "Approve" event emitted by the contract.
type ApproveEvent struct {
	Owner   *keys.PublicKey
	Spender *keys.PublicKey
	Amount  *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Name invokes `name` method of contract.
func (c *ContractReader) Name() (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "name"))
}

// Symbol invokes `symbol` method of contract.
func (c *ContractReader) Symbol() (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "symbol"))
}

// Decimals invokes `decimals` method of contract.
func (c *ContractReader) Decimals() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "decimals"))
}

// TotalSupply invokes `totalSupply` method of contract.
func (c *ContractReader) TotalSupply() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalSupply"))
}

// BalanceOf invokes `balanceOf` method of contract.
func (c *ContractReader) BalanceOf(key *keys.PublicKey) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "balanceOf", key))
}

// Account invokes `account` method of contract.
func (c *ContractReader) Account(key *keys.PublicKey) (*AccountState, error) {
	return itemToAccountState(unwrap.Item(c.invoker.Call(c.hash, "account", key)))
}

// Allowance invokes `allowance` method of contract.
func (c *ContractReader) Allowance(owner, spender *keys.PublicKey) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "allowance", owner, spender))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Transfer creates a transaction invoking `transfer` method of the contract
// with the given signed payload.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Transfer(t *Transfer) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, MethodTransfer, t.CallParameters()...)
}

// TransferTransaction creates a transaction invoking `transfer` method of the contract
// with the given signed payload.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) TransferTransaction(t *Transfer) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, MethodTransfer, t.CallParameters()...)
}

// TransferUnsigned creates a transaction invoking `transfer` method of the contract
// with the given signed payload.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) TransferUnsigned(t *Transfer) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, MethodTransfer, nil, t.CallParameters()...)
}

// TransferFrom creates a transaction invoking `transferFrom` method of the contract
// with the given signed payload.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) TransferFrom(t *TransferFrom) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, MethodTransferFrom, t.CallParameters()...)
}

// TransferFromTransaction creates a transaction invoking `transferFrom` method of the contract
// with the given signed payload.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) TransferFromTransaction(t *TransferFrom) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, MethodTransferFrom, t.CallParameters()...)
}

// TransferFromUnsigned creates a transaction invoking `transferFrom` method of the contract
// with the given signed payload.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) TransferFromUnsigned(t *TransferFrom) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, MethodTransferFrom, nil, t.CallParameters()...)
}

// Approve creates a transaction invoking `approve` method of the contract
// with the given signed payload.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Approve(a *Approve) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, MethodApprove, a.CallParameters()...)
}

// ApproveTransaction creates a transaction invoking `approve` method of the contract
// with the given signed payload.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ApproveTransaction(a *Approve) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, MethodApprove, a.CallParameters()...)
}

// ApproveUnsigned creates a transaction invoking `approve` method of the contract
// with the given signed payload.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ApproveUnsigned(a *Approve) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, MethodApprove, nil, a.CallParameters()...)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemToAccountState converts stack item into *AccountState.
func itemToAccountState(item stackitem.Item, err error) (*AccountState, error) {
	if err != nil {
		return nil, err
	}
	var res = new(AccountState)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of AccountState from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *AccountState) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Balance, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Balance: %w", err)
	}

	index++
	res.Nonce, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Nonce: %w", err)
	}

	return nil
}
