package common

var (
	// ErrInvalidSignature appears when the signature attached to a call
	// does not verify against the claimed signer key.
	ErrInvalidSignature = "invalid signature"
	// ErrNonceMismatch appears when the nonce of a signed call differs
	// from the current nonce of the signer's account.
	ErrNonceMismatch = "nonce mismatch"
	// ErrInsufficientBalance appears when an account is debited for more
	// than it holds.
	ErrInsufficientBalance = "insufficient balance"
	// ErrInsufficientAllowance appears when a spender tries to move more
	// of the owner's tokens than the owner has approved.
	ErrInsufficientAllowance = "insufficient allowance"
	// ErrOverflow appears when a numeric call argument or a credited
	// balance leaves the valid range.
	ErrOverflow = "value overflow"
)
