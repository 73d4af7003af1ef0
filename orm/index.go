package orm

import (
	"bytes"
	"encoding/binary"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
)

// Indexer calculates the secondary index values of a model. Returning no
// values means the model is not indexed. A single model may be referenced by
// many values, for example a will is found by each of its trustees.
type Indexer func(Model) ([][]byte, error)

// index maintains references from an index value to the primary keys of
// models. Each reference is stored under its own key:
//
//   _i.<bucket>_<name>:<2 byte length><index value><primary key>
//
// so that adding or removing a reference never rewrites other references.
type index struct {
	name    string
	prefix  []byte
	indexer Indexer
}

func newIndex(bucket, name string, indexer Indexer) *index {
	return &index{
		name:    name,
		prefix:  []byte("_i." + bucket + "_" + name + ":"),
		indexer: indexer,
	}
}

// valuePrefix returns the key prefix shared by all references of value.
func (i *index) valuePrefix(value []byte) []byte {
	out := make([]byte, len(i.prefix)+2+len(value))
	copy(out, i.prefix)
	binary.BigEndian.PutUint16(out[len(i.prefix):], uint16(len(value)))
	copy(out[len(i.prefix)+2:], value)
	return out
}

func (i *index) refKey(value, primary []byte) []byte {
	return append(i.valuePrefix(value), primary...)
}

// update removes references of prev and adds references of next. Either
// model can be nil.
func (i *index) update(db heirloom.KVStore, primary []byte, prev, next Model) error {
	var before, after [][]byte
	if prev != nil {
		vals, err := i.values(prev)
		if err != nil {
			return err
		}
		before = vals
	}
	if next != nil {
		vals, err := i.values(next)
		if err != nil {
			return err
		}
		after = vals
	}

	for _, v := range before {
		if contains(after, v) {
			continue
		}
		if err := db.Delete(i.refKey(v, primary)); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	for _, v := range after {
		if contains(before, v) {
			continue
		}
		if err := db.Set(i.refKey(v, primary), primary); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return nil
}

func (i *index) values(m Model) ([][]byte, error) {
	vals, err := i.indexer(m)
	if err != nil {
		return nil, errors.Wrapf(err, "%s indexer", i.name)
	}
	for _, v := range vals {
		if len(v) == 0 {
			return nil, errors.Wrapf(errors.ErrEmpty, "%s index value", i.name)
		}
		if len(v) > 0xffff {
			return nil, errors.Wrapf(errors.ErrInput, "%s index value too long", i.name)
		}
	}
	return vals, nil
}

// keys returns the primary keys referenced by given index value, in
// ascending primary key order.
func (i *index) keys(db heirloom.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	start, end := PrefixRange(i.valuePrefix(value))
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer it.Release()

	var keys [][]byte
	for {
		_, primary, err := it.Next()
		switch {
		case err == nil:
			keys = append(keys, primary)
		case errors.ErrIteratorDone.Is(err):
			return keys, nil
		default:
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
}

func contains(set [][]byte, v []byte) bool {
	for _, s := range set {
		if bytes.Equal(s, v) {
			return true
		}
	}
	return false
}
