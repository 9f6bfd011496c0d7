package token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/ttoken-contract/common"
)

type (
	// Token holds all static token info.
	Token struct {
		// Token name
		Name string
		// Ticker symbol
		Symbol string
		// Amount of decimals
		Decimals int
		// Storage key for total supply value
		SupplyKey string
	}

	// AccountState stores the ledger record of a single token holder key:
	// its balance and the nonce of its next signed call.
	AccountState struct {
		// Active balance
		Balance int
		// Nonce expected in the next authorization signed by this key
		Nonce int
	}
)

const (
	name      = "Transparent Fungible Token Sample"
	symbol    = "TFTS"
	decimals  = 18
	supplyKey = "supply"

	accPrefix       = 'a'
	allowancePrefix = 'l'

	// Method names double as domain separation tags of the signature
	// message, so a signature authorizing one operation can never pass
	// verification for another one with the same field layout.
	transferTag     = "transfer"
	transferFromTag = "transferFrom"
	approveTag      = "approve"
)

var token Token

func createToken() Token {
	return Token{
		Name:      name,
		Symbol:    symbol,
		Decimals:  decimals,
		SupplyKey: supplyKey,
	}
}

func init() {
	token = createToken()
}

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		holder interop.PublicKey
		supply int
	})

	if len(args.holder) != interop.PublicKeyCompressedLen {
		panic("incorrect length of initial holder key")
	}
	if args.supply <= 0 {
		panic("non-positive initial supply")
	}

	setAccount(ctx, args.holder, AccountState{Balance: args.supply, Nonce: 0})
	storage.Put(ctx, token.SupplyKey, args.supply)

	runtime.Log("token contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data interface{}) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("token contract updated")
}

// Name returns the token name.
func Name() string {
	return token.Name
}

// Symbol returns the token ticker symbol.
func Symbol() string {
	return token.Symbol
}

// Decimals returns precision of token balances.
func Decimals() int {
	return token.Decimals
}

// TotalSupply returns the total amount of tokens. The value is fixed at
// deployment and equals the sum of all account balances at any point
// between calls.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return token.getSupply(ctx)
}

// BalanceOf returns the token balance of the specified account key, zero
// for the keys the ledger has never seen.
func BalanceOf(key interop.PublicKey) int {
	requireKey(key)
	ctx := storage.GetReadOnlyContext()
	return getAccount(ctx, key).Balance
}

// Account returns the full ledger record of the specified account key:
// balance and the nonce its next signed call must carry. Unknown keys
// produce an empty record.
func Account(key interop.PublicKey) AccountState {
	requireKey(key)
	ctx := storage.GetReadOnlyContext()
	return getAccount(ctx, key)
}

// Allowance returns the remaining amount the spender key may move out of the
// owner's balance via TransferFrom, zero if no approval is in effect.
func Allowance(owner, spender interop.PublicKey) int {
	requireKey(owner)
	requireKey(spender)
	ctx := storage.GetReadOnlyContext()
	return getAllowance(ctx, owner, spender)
}

// Transfer moves amount of tokens from one account to another. The call must
// be signed by the `from` key over the canonical message of its semantic
// fields and carry the current nonce of `from`; any account may submit it.
// Transferring to self is allowed, keeps the balance intact and still
// consumes a nonce.
//
// Produces Transfer notification.
func Transfer(from, to interop.PublicKey, amount, nonce int, signature interop.Signature) {
	ctx := storage.GetContext()

	requireKey(from)
	requireKey(to)
	requireAmount(amount)

	acc := getAccount(ctx, from)
	verifySignature(from, transferMessage(from, to, amount, nonce), signature)
	if nonce != acc.Nonce {
		panic(common.ErrNonceMismatch)
	}
	if acc.Balance < amount {
		panic(common.ErrInsufficientBalance)
	}

	acc.Balance -= amount
	acc.Nonce += 1
	setAccount(ctx, from, acc)
	credit(ctx, to, amount)

	runtime.Notify("Transfer", from, to, amount)
}

// TransferFrom moves amount of tokens from the owner's account using an
// allowance previously set up with Approve. The call must be signed by the
// spender key and carry the spender's current nonce; the owner's
// authorization was consumed at approval time. Both the allowance and the
// owner's balance must cover the amount.
//
// Produces Transfer and TransferX notifications.
func TransferFrom(spender, owner, to interop.PublicKey, amount, nonce int, signature interop.Signature) {
	ctx := storage.GetContext()

	requireKey(spender)
	requireKey(owner)
	requireKey(to)
	requireAmount(amount)

	spenderAcc := getAccount(ctx, spender)
	verifySignature(spender, transferFromMessage(spender, owner, to, amount, nonce), signature)
	if nonce != spenderAcc.Nonce {
		panic(common.ErrNonceMismatch)
	}

	remaining := getAllowance(ctx, owner, spender)
	if remaining < amount {
		panic(common.ErrInsufficientAllowance)
	}
	if getAccount(ctx, owner).Balance < amount {
		panic(common.ErrInsufficientBalance)
	}

	putAllowance(ctx, owner, spender, remaining-amount)
	debit(ctx, owner, amount)
	credit(ctx, to, amount)
	bumpNonce(ctx, spender)

	runtime.Notify("Transfer", owner, to, amount)
	runtime.Notify("TransferX", owner, spender, to, amount)
}

// Approve authorizes the spender key to move up to amount of tokens out of
// the owner's balance. The call must be signed by the owner key and carry
// the owner's current nonce. A repeated approval overwrites the remaining
// allowance instead of adding to it; zero amount revokes the approval.
//
// Produces Approve notification.
func Approve(owner, spender interop.PublicKey, amount, nonce int, signature interop.Signature) {
	ctx := storage.GetContext()

	requireKey(owner)
	requireKey(spender)
	requireAmount(amount)

	acc := getAccount(ctx, owner)
	verifySignature(owner, approveMessage(owner, spender, amount, nonce), signature)
	if nonce != acc.Nonce {
		panic(common.ErrNonceMismatch)
	}

	putAllowance(ctx, owner, spender, amount)
	acc.Nonce += 1
	setAccount(ctx, owner, acc)

	runtime.Notify("Approve", owner, spender, amount)
}

// Version returns version of the contract.
func Version() int {
	return common.Version
}

// getSupply gets the token totalSupply value from VM storage.
func (t Token) getSupply(ctx storage.Context) int {
	supply := storage.Get(ctx, t.SupplyKey)
	if supply != nil {
		return supply.(int)
	}

	return 0
}

// transferMessage is the canonical encoding signed by the `from` key to
// authorize Transfer: VM serialization of the tagged field array.
func transferMessage(from, to interop.PublicKey, amount, nonce int) []byte {
	return std.Serialize([]interface{}{transferTag, from, to, amount, nonce})
}

func transferFromMessage(spender, owner, to interop.PublicKey, amount, nonce int) []byte {
	return std.Serialize([]interface{}{transferFromTag, spender, owner, to, amount, nonce})
}

func approveMessage(owner, spender interop.PublicKey, amount, nonce int) []byte {
	return std.Serialize([]interface{}{approveTag, owner, spender, amount, nonce})
}

// verifySignature checks that signature is a valid authorization of msg by
// the signer key. It does not touch storage: nonce advancement is part of
// the same state transition that applies the business mutation, so a call
// that verifies but fails a later check can be legitimately resubmitted.
func verifySignature(signer interop.PublicKey, msg []byte, signature interop.Signature) {
	if len(signature) != interop.SignatureLen ||
		!crypto.VerifyWithECDsa(msg, signer, signature, crypto.Secp256r1) {
		panic(common.ErrInvalidSignature)
	}
}

// credit re-reads the target account, so transfers between aliased keys
// (self-transfer, spender paying itself) stay correct.
func credit(ctx storage.Context, key interop.PublicKey, amount int) {
	acc := getAccount(ctx, key)
	acc.Balance += amount
	if acc.Balance > token.getSupply(ctx) {
		// balances are conserved, so this is reachable only with a
		// malformed call or corrupted state
		panic(common.ErrOverflow)
	}
	setAccount(ctx, key, acc)
}

func debit(ctx storage.Context, key interop.PublicKey, amount int) {
	acc := getAccount(ctx, key)
	if acc.Balance < amount {
		panic(common.ErrInsufficientBalance)
	}
	acc.Balance -= amount
	setAccount(ctx, key, acc)
}

func bumpNonce(ctx storage.Context, key interop.PublicKey) {
	acc := getAccount(ctx, key)
	acc.Nonce += 1
	setAccount(ctx, key, acc)
}

func requireKey(key interop.PublicKey) {
	if len(key) != interop.PublicKeyCompressedLen {
		panic("incorrect length of account key")
	}
}

func requireAmount(amount int) {
	if amount < 0 {
		panic(common.ErrOverflow)
	}
}

func getAccount(ctx storage.Context, key interop.PublicKey) AccountState {
	data := storage.Get(ctx, append([]byte{accPrefix}, key...))
	if data != nil {
		return std.Deserialize(data.([]byte)).(AccountState)
	}

	// account records are created implicitly and never deleted
	return AccountState{}
}

func setAccount(ctx storage.Context, key interop.PublicKey, acc AccountState) {
	common.SetSerialized(ctx, append([]byte{accPrefix}, key...), acc)
}

func allowanceKey(owner, spender interop.PublicKey) []byte {
	key := append([]byte{allowancePrefix}, owner...)
	return append(key, spender...)
}

func getAllowance(ctx storage.Context, owner, spender interop.PublicKey) int {
	data := storage.Get(ctx, allowanceKey(owner, spender))
	if data != nil {
		return data.(int)
	}

	return 0
}

// putAllowance overwrites the allowance of the (owner, spender) pair. Zero
// allowance is equivalent to absence, so the record is removed.
func putAllowance(ctx storage.Context, owner, spender interop.PublicKey, amount int) {
	key := allowanceKey(owner, spender)
	if amount == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, amount)
	}
}
