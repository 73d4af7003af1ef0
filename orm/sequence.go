package orm

import (
	"encoding/binary"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
)

// Sequence maintains a counter and generates a series of keys. Each key is
// greater than the last, both as a number and compared with bytes.Compare.
// Values are never reused.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter stored under the key
//
//   _s.<bucket>:<name>
//
// A name may hold binary data, for example an owner address, so that every
// owner gets an independent counter.
func NewSequence(bucket, name string) Sequence {
	return Sequence{
		id: []byte("_s." + bucket + ":" + name),
	}
}

// NextVal increments the sequence and returns the value allocated before the
// increment, encoded as 8 bytes. The first value returned is zero.
func (s Sequence) NextVal(db heirloom.KVStore) ([]byte, error) {
	val, err := s.NextInt(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(val), nil
}

// NextInt increments the sequence and returns the value allocated before
// the increment. The first value returned is zero.
func (s Sequence) NextInt(db heirloom.KVStore) (uint64, error) {
	next, err := s.Peek(db)
	if err != nil {
		return 0, err
	}
	if next+1 == 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "sequence")
	}
	if err := db.Set(s.id, EncodeSequence(next+1)); err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return next, nil
}

// Peek returns the value that the next NextInt call will allocate. It does
// not modify the sequence state.
func (s Sequence) Peek(db heirloom.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return DecodeSequence(raw)
}

// DecodeSequence decodes a sequence value. A nil value decodes to zero.
func DecodeSequence(bz []byte) (uint64, error) {
	if bz == nil {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "sequence must be 8 bytes, got %d", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}

// EncodeSequence encodes a sequence value as 8 big-endian bytes, which keeps
// the lexicographical order of the encoded values.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}
