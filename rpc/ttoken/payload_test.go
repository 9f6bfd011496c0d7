package ttoken

import (
	"bytes"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) *keys.PrivateKey {
	k, err := keys.NewPrivateKey()
	require.NoError(t, err)
	return k
}

func TestSignatureMessageDeterministic(t *testing.T) {
	from := newKey(t)
	to := newKey(t).PublicKey()

	a := NewTransfer(from, to, 100, 7)
	b := &Transfer{From: from.PublicKey(), To: to, Amount: 100, Nonce: 7}
	require.Equal(t, a.SignatureMessage(), b.SignatureMessage())

	b.Nonce = 8
	require.NotEqual(t, a.SignatureMessage(), b.SignatureMessage())
}

func TestSignatureMessageDomainSeparation(t *testing.T) {
	owner := newKey(t)
	other := newKey(t).PublicKey()

	// Same field layout, different method: messages must differ.
	tr := NewTransfer(owner, other, 42, 0)
	ap := NewApprove(owner, other, 42, 0)
	require.False(t, bytes.Equal(tr.SignatureMessage(), ap.SignatureMessage()))

	// A signature made for one operation never verifies for another.
	forged := &Approve{
		Owner:     tr.From,
		Spender:   tr.To,
		Amount:    tr.Amount,
		Nonce:     tr.Nonce,
		Signature: tr.Signature,
	}
	require.True(t, tr.Valid())
	require.False(t, forged.Valid())
}

func TestTransferValid(t *testing.T) {
	from := newKey(t)
	to := newKey(t).PublicKey()

	tr := NewTransfer(from, to, 1000, 3)
	require.True(t, tr.Valid())

	tampered := *tr
	tampered.Amount = 1001
	require.False(t, tampered.Valid())

	tampered = *tr
	tampered.Signature = bytes.Repeat([]byte{42}, len(tr.Signature))
	require.False(t, tampered.Valid())

	// Signed by somebody else.
	other := NewTransfer(newKey(t), to, 1000, 3)
	tampered = *tr
	tampered.Signature = other.Signature
	require.False(t, tampered.Valid())
}

func TestTransferFromValid(t *testing.T) {
	spender := newKey(t)
	owner := newKey(t).PublicKey()
	to := newKey(t).PublicKey()

	tr := NewTransferFrom(spender, owner, to, 25, 0)
	require.True(t, tr.Valid())

	tampered := *tr
	tampered.To = newKey(t).PublicKey()
	require.False(t, tampered.Valid())

	// The owner's signature does not authorize a delegated transfer,
	// the spender's does.
	sameKey := newKey(t)
	asOwner := NewTransferFrom(spender, sameKey.PublicKey(), to, 25, 0)
	asOwner.Signature = sameKey.Sign(asOwner.SignatureMessage())
	require.False(t, asOwner.Valid())
}

func TestApproveValid(t *testing.T) {
	owner := newKey(t)
	spender := newKey(t).PublicKey()

	ap := NewApprove(owner, spender, 50, 2)
	require.True(t, ap.Valid())

	tampered := *ap
	tampered.Spender = newKey(t).PublicKey()
	require.False(t, tampered.Valid())

	// Zero amount revokes an approval and is a perfectly signable order.
	revoke := NewApprove(owner, spender, 0, 3)
	require.True(t, revoke.Valid())
}

func TestCallParameters(t *testing.T) {
	from := newKey(t)
	to := newKey(t).PublicKey()

	tr := NewTransfer(from, to, 100, 1)
	params := tr.CallParameters()
	require.Len(t, params, 5)
	require.Equal(t, from.PublicKey().Bytes(), params[0])
	require.Equal(t, to.Bytes(), params[1])
	require.Equal(t, tr.Signature, params[4])

	tf := NewTransferFrom(from, to, to, 100, 1)
	require.Len(t, tf.CallParameters(), 6)

	ap := NewApprove(from, to, 100, 1)
	require.Len(t, ap.CallParameters(), 5)
}
