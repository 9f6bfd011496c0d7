/*
Token contract is a transparent fungible token ledger with explicit
authorization of every balance-affecting call.

Accounts are identified by compressed secp256r1 public keys rather than by
Neo script hashes, so the chain's witness system cannot attest who
authorized a mutating call. Instead, every Transfer, TransferFrom and
Approve invocation carries a signature of the account key over a canonical
encoding of the call's semantic fields together with a per-account nonce.
The contract verifies the signature, matches the nonce against the stored
one and only then applies the balance mutation; the nonce is advanced as
part of the same state transition, so a call that fails a business check
(for example, insufficient balance) leaves the nonce intact and the very
same signed payload can be resubmitted later. A payload that has already
been applied always fails with nonce mismatch and mutates nothing, no
matter which relayer submits it or how many times.

Total supply is fixed at deployment: the whole amount is credited to the
initial holder key passed with the deployment data and no method mints or
burns tokens afterwards. The sum of all balances always equals the total
supply.

Approvals overwrite: a repeated Approve for the same (owner, spender) pair
replaces the remaining allowance instead of accumulating it, and a zero
approval revokes it.

# Contract notifications

Transfer notification. Emitted on every successful token movement. For
TransferFrom the first parameter is the owner whose balance was debited.

	Transfer:
	  - name: from
	    type: PublicKey
	  - name: to
	    type: PublicKey
	  - name: amount
	    type: Integer

TransferX notification. Extended transfer notification emitted by
TransferFrom only, carrying the spender key that authorized the movement.

	TransferX:
	  - name: owner
	    type: PublicKey
	  - name: spender
	    type: PublicKey
	  - name: to
	    type: PublicKey
	  - name: amount
	    type: Integer

Approve notification. Emitted on every successful allowance update.

	Approve:
	  - name: owner
	    type: PublicKey
	  - name: spender
	    type: PublicKey
	  - name: amount
	    type: Integer
*/
package token

/*
Contract storage model.

# Summary
Key-value storage format:
  - 'supply' -> int
    total amount of tokens, set once at deployment
  - 'a' + account public key -> std.Serialize(AccountState)
    balance and next authorization nonce of the account; created implicitly
    on first reference, never deleted
  - 'l' + owner public key + spender public key -> int
    remaining allowance of the (owner, spender) pair; absent when zero

# Authorization
Signature messages are VM-serialized arrays of the method name tag followed
by the call's semantic fields and the signer's current nonce:

	["transfer", from, to, amount, nonce]         signed by from
	["transferFrom", spender, owner, to, amount, nonce]  signed by spender
	["approve", owner, spender, amount, nonce]    signed by owner

Signatures are ECDSA over secp256r1 with SHA-256, checked through the
CryptoLib native contract.
*/
