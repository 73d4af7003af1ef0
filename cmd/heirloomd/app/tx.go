package app

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/codec"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/x/auth"
)

func init() {
	// Every extension imported by this package has registered its messages
	// by now.
	codec.Seal()
}

// Tx is the transaction of the heirloom chain. It carries a single message
// and the condition of the account that authorized it.
type Tx struct {
	Msg    heirloom.Msg       `json:"msg"`
	Signer heirloom.Condition `json:"signer"`
}

var _ heirloom.Tx = (*Tx)(nil)
var _ auth.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it.
func TxDecoder(bz []byte) (heirloom.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message carried by this transaction.
func (tx *Tx) GetMsg() (heirloom.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "transaction without message")
	}
	return tx.Msg, nil
}

// GetSigner returns the declared signer, nil for an unsigned transaction.
func (tx *Tx) GetSigner() heirloom.Condition {
	return tx.Signer
}

func (tx *Tx) Marshal() ([]byte, error) {
	return codec.Marshal(tx)
}

func (tx *Tx) Unmarshal(bz []byte) error {
	if len(bz) == 0 {
		return errors.Wrap(errors.ErrInput, "empty transaction")
	}
	return codec.Unmarshal(bz, tx)
}
