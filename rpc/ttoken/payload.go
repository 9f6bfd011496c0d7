package ttoken

import (
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Method names of the mutating contract operations. They are included into
// the signature message as domain separation tags, so a signature made for
// one operation never verifies for another one with the same field layout.
const (
	MethodTransfer     = "transfer"
	MethodTransferFrom = "transferFrom"
	MethodApprove      = "approve"
)

// Transfer is a signed order to move tokens out of the signer's account.
// Anyone may submit it to the contract, only the holder of the `from` key
// can produce it.
type Transfer struct {
	// The account to transfer from, it is also the signer.
	From *keys.PublicKey
	// The account to transfer to.
	To *keys.PublicKey
	// The amount of tokens to transfer.
	Amount uint64
	// The current nonce of the `from` account.
	Nonce uint64
	// Signature of the `from` key over SignatureMessage.
	Signature []byte
}

// NewTransfer builds a transfer of amount from the account of fromKey to
// the `to` account and signs it with fromKey. Nonce must be the current
// nonce of the `from` account.
func NewTransfer(fromKey *keys.PrivateKey, to *keys.PublicKey, amount, nonce uint64) *Transfer {
	t := &Transfer{
		From:   fromKey.PublicKey(),
		To:     to,
		Amount: amount,
		Nonce:  nonce,
	}
	t.Signature = fromKey.Sign(t.SignatureMessage())

	return t
}

// SignatureMessage returns the canonical byte encoding of the transfer
// covered by its signature.
func (t *Transfer) SignatureMessage() []byte {
	return signatureMessage(MethodTransfer,
		stackitem.NewByteArray(t.From.Bytes()),
		stackitem.NewByteArray(t.To.Bytes()),
		stackitem.NewBigInteger(new(big.Int).SetUint64(t.Amount)),
		stackitem.NewBigInteger(new(big.Int).SetUint64(t.Nonce)),
	)
}

// Valid checks the transfer signature against the `from` key.
func (t *Transfer) Valid() bool {
	return t.From.Verify(t.Signature, hash.Sha256(t.SignatureMessage()).BytesBE())
}

// CallParameters returns the payload as the ordered argument list of the
// contract's `transfer` method.
func (t *Transfer) CallParameters() []any {
	return []any{
		t.From.Bytes(),
		t.To.Bytes(),
		new(big.Int).SetUint64(t.Amount),
		new(big.Int).SetUint64(t.Nonce),
		t.Signature,
	}
}

// TransferFrom is a signed order to move tokens from an owner's account by
// an approved spender. The spender is the signer and it is the spender's
// nonce that the payload consumes.
type TransferFrom struct {
	// The account spending the allowance, it is also the signer.
	Spender *keys.PublicKey
	// The account that owns the tokens being transferred.
	Owner *keys.PublicKey
	// The account to transfer to.
	To *keys.PublicKey
	// The amount of tokens to transfer.
	Amount uint64
	// The current nonce of the spender account.
	Nonce uint64
	// Signature of the spender key over SignatureMessage.
	Signature []byte
}

// NewTransferFrom builds a delegated transfer of amount from the owner
// account to the `to` account and signs it with spenderKey. Nonce must be
// the current nonce of the spender account.
func NewTransferFrom(spenderKey *keys.PrivateKey, owner, to *keys.PublicKey, amount, nonce uint64) *TransferFrom {
	t := &TransferFrom{
		Spender: spenderKey.PublicKey(),
		Owner:   owner,
		To:      to,
		Amount:  amount,
		Nonce:   nonce,
	}
	t.Signature = spenderKey.Sign(t.SignatureMessage())

	return t
}

// SignatureMessage returns the canonical byte encoding of the delegated
// transfer covered by its signature.
func (t *TransferFrom) SignatureMessage() []byte {
	return signatureMessage(MethodTransferFrom,
		stackitem.NewByteArray(t.Spender.Bytes()),
		stackitem.NewByteArray(t.Owner.Bytes()),
		stackitem.NewByteArray(t.To.Bytes()),
		stackitem.NewBigInteger(new(big.Int).SetUint64(t.Amount)),
		stackitem.NewBigInteger(new(big.Int).SetUint64(t.Nonce)),
	)
}

// Valid checks the payload signature against the spender key.
func (t *TransferFrom) Valid() bool {
	return t.Spender.Verify(t.Signature, hash.Sha256(t.SignatureMessage()).BytesBE())
}

// CallParameters returns the payload as the ordered argument list of the
// contract's `transferFrom` method.
func (t *TransferFrom) CallParameters() []any {
	return []any{
		t.Spender.Bytes(),
		t.Owner.Bytes(),
		t.To.Bytes(),
		new(big.Int).SetUint64(t.Amount),
		new(big.Int).SetUint64(t.Nonce),
		t.Signature,
	}
}

// Approve is a signed order allowing the spender to move up to Amount of
// tokens out of the owner's account. The owner is the signer.
type Approve struct {
	// The account allowing the transfer of its tokens, it is also the signer.
	Owner *keys.PublicKey
	// The account allowed to spend the owner's tokens.
	Spender *keys.PublicKey
	// The amount of tokens the spender may move in total.
	Amount uint64
	// The current nonce of the owner account.
	Nonce uint64
	// Signature of the owner key over SignatureMessage.
	Signature []byte
}

// NewApprove builds an approval of spender for amount of ownerKey's tokens
// and signs it with ownerKey. Nonce must be the current nonce of the owner
// account.
func NewApprove(ownerKey *keys.PrivateKey, spender *keys.PublicKey, amount, nonce uint64) *Approve {
	a := &Approve{
		Owner:   ownerKey.PublicKey(),
		Spender: spender,
		Amount:  amount,
		Nonce:   nonce,
	}
	a.Signature = ownerKey.Sign(a.SignatureMessage())

	return a
}

// SignatureMessage returns the canonical byte encoding of the approval
// covered by its signature.
func (a *Approve) SignatureMessage() []byte {
	return signatureMessage(MethodApprove,
		stackitem.NewByteArray(a.Owner.Bytes()),
		stackitem.NewByteArray(a.Spender.Bytes()),
		stackitem.NewBigInteger(new(big.Int).SetUint64(a.Amount)),
		stackitem.NewBigInteger(new(big.Int).SetUint64(a.Nonce)),
	)
}

// Valid checks the approval signature against the owner key.
func (a *Approve) Valid() bool {
	return a.Owner.Verify(a.Signature, hash.Sha256(a.SignatureMessage()).BytesBE())
}

// CallParameters returns the payload as the ordered argument list of the
// contract's `approve` method.
func (a *Approve) CallParameters() []any {
	return []any{
		a.Owner.Bytes(),
		a.Spender.Bytes(),
		new(big.Int).SetUint64(a.Amount),
		new(big.Int).SetUint64(a.Nonce),
		a.Signature,
	}
}

// signatureMessage serializes the method tag followed by the payload fields
// the same way the contract does with std.Serialize, producing the exact
// bytes both sides sign and verify.
func signatureMessage(tag string, fields ...stackitem.Item) []byte {
	items := make([]stackitem.Item, 0, len(fields)+1)
	items = append(items, stackitem.NewByteArray([]byte(tag)))
	items = append(items, fields...)

	data, err := stackitem.Serialize(stackitem.NewArray(items))
	if err != nil {
		// flat arrays of byte strings and integers always serialize
		panic(fmt.Sprintf("serialize %s signature message: %v", tag, err))
	}

	return data
}
