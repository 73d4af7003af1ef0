package auth

import "github.com/heirloom-labs/heirloom"

// SignedTx represents a transaction that declares its signer.
type SignedTx interface {
	heirloom.Tx

	// GetSigner returns the condition of the account that authorized the
	// transaction, or nil for an unsigned transaction.
	GetSigner() heirloom.Condition
}
