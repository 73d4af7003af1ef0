/*
Package codec holds the binary serialization shared by all models, messages
and transactions.

All encoding goes through a single go-amino codec. Messages are registered as
concrete implementations of the heirloom.Msg interface so that a transaction
can carry any of them. Extensions register their types from an init function:

	func init() {
		codec.RegisterMsg(&CreateMsg{}, "heirloom/will/create")
	}
*/
package codec

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*heirloom.Msg)(nil), nil)
}

// RegisterMsg registers a message implementation under given name. The name
// is encoded into every transaction carrying this message and must never
// change once used on a running chain.
func RegisterMsg(msg heirloom.Msg, name string) {
	cdc.RegisterConcrete(msg, name, nil)
}

// Seal prevents further registrations. Call it once all extensions are
// loaded.
func Seal() {
	cdc.Seal()
}

// Marshal serializes given object into its binary representation.
func Marshal(o interface{}) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot marshal %T: %s", o, err)
	}
	return bz, nil
}

// MustMarshal is like Marshal but panics on error.
func MustMarshal(o interface{}) []byte {
	bz, err := Marshal(o)
	if err != nil {
		panic(err)
	}
	return bz
}

// Unmarshal deserializes binary data into ptr, which must be a pointer.
func Unmarshal(bz []byte, ptr interface{}) error {
	if err := cdc.UnmarshalBinaryBare(bz, ptr); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot unmarshal %T: %s", ptr, err)
	}
	return nil
}

// MarshalJSON serializes given object into amino JSON. Interface values are
// wrapped with their registered name.
func MarshalJSON(o interface{}) ([]byte, error) {
	bz, err := cdc.MarshalJSONIndent(o, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot marshal %T: %s", o, err)
	}
	return bz, nil
}

// UnmarshalJSON deserializes amino JSON into ptr.
func UnmarshalJSON(bz []byte, ptr interface{}) error {
	if err := cdc.UnmarshalJSON(bz, ptr); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot unmarshal %T: %s", ptr, err)
	}
	return nil
}
