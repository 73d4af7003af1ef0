package heirloomtest

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/crypto"
)

// NewKey returns a fresh private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivateKey()
}

// NewCondition returns the condition of a fresh key.
func NewCondition() heirloom.Condition {
	return NewKey().PublicKey().Condition()
}
