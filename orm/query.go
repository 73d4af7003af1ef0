package orm

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
)

// PrefixRange turns a prefix into a (start, end) range. The end is exclusive
// and nil when the prefix has no upper bound (all bytes are 0xff).
func PrefixRange(prefix []byte) ([]byte, []byte) {
	start := make([]byte, len(prefix))
	copy(start, prefix)

	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return start, end[:i+1]
		}
	}
	return start, nil
}

// ConsumeIterator reads all remaining data into a slice and releases the
// iterator.
func ConsumeIterator(it heirloom.Iterator) ([]heirloom.Model, error) {
	defer it.Release()

	var res []heirloom.Model
	for {
		key, value, err := it.Next()
		switch {
		case err == nil:
			res = append(res, heirloom.Pair(key, value))
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// bucketQuery serves key and prefix queries of the bucket content.
type bucketQuery struct {
	bucket *modelBucket
}

func (q bucketQuery) Query(db heirloom.ReadOnlyKVStore, mod string, data []byte) ([]heirloom.Model, error) {
	switch mod {
	case heirloom.KeyQueryMod:
		key := q.bucket.dbKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		if value == nil {
			return nil, nil
		}
		return []heirloom.Model{heirloom.Pair(key, value)}, nil
	case heirloom.PrefixQueryMod:
		start, end := PrefixRange(q.bucket.dbKey(data))
		it, err := db.Iterator(start, end)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		return ConsumeIterator(it)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}

// indexQuery returns all models referenced by the queried index value.
type indexQuery struct {
	bucket *modelBucket
	idx    *index
}

func (q indexQuery) Query(db heirloom.ReadOnlyKVStore, mod string, data []byte) ([]heirloom.Model, error) {
	if mod != heirloom.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
	keys, err := q.idx.keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]heirloom.Model, 0, len(keys))
	for _, key := range keys {
		dbkey := q.bucket.dbKey(key)
		value, err := db.Get(dbkey)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		if value == nil {
			return nil, errors.Wrapf(errors.ErrHuman, "broken index reference %X", key)
		}
		res = append(res, heirloom.Pair(dbkey, value))
	}
	return res, nil
}
