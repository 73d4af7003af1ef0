package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,12}$`).MatchString

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	heirloom.Persistent
	Validate() error
}

// ModelBucket stores models of a single type under a prefixed key space and
// maintains the declared secondary indexes.
type ModelBucket interface {
	// One queries the database for a single model instance. Lookup is
	// done by the primary key. Result is loaded into given destination
	// model. This method returns ErrNotFound if the entity does not
	// exist in the database. If given model type cannot be used to
	// contain stored entity, ErrType is returned.
	One(db heirloom.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists, and
	// ErrNotFound otherwise.
	Has(db heirloom.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. The model is validated
	// before writing and all indexes are updated.
	Put(db heirloom.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db heirloom.KVStore, key []byte) error

	// ByIndex returns all models referenced by given index value. The
	// destination must be a pointer to a slice of models (or model
	// pointers). Primary keys of the loaded models are returned in the
	// same order.
	ByIndex(db heirloom.ReadOnlyKVStore, indexName string, value []byte, dest interface{}) ([][]byte, error)

	// Scan iterates over all models whose primary key starts with prefix.
	Scan(db heirloom.ReadOnlyKVStore, prefix []byte, reverse bool) (ModelIterator, error)

	// Register registers this bucket and all its indexes with the query
	// router under /<name> and /<name>/<index>.
	Register(name string, r heirloom.QueryRouter)
}

// BucketOption configures a model bucket.
type BucketOption func(*modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// values returned by the indexer function are referencing the model.
func WithIndex(name string, indexer Indexer) BucketOption {
	return func(mb *modelBucket) {
		if _, ok := mb.indexes[name]; ok {
			panic(fmt.Sprintf("index %q already declared", name))
		}
		mb.indexes[name] = newIndex(mb.name, name, indexer)
	}
}

// NewModelBucket returns a ModelBucket instance storing models of the same
// type as proto, which must be a pointer.
func NewModelBucket(name string, proto Model, opts ...BucketOption) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket name: %q", name))
	}
	t := reflect.TypeOf(proto)
	if t.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("model prototype must be a pointer, got %T", proto))
	}
	mb := &modelBucket{
		name:    name,
		prefix:  []byte(name + ":"),
		model:   t.Elem(),
		indexes: make(map[string]*index),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	indexes map[string]*index
}

var _ ModelBucket = (*modelBucket)(nil)

// dbKey returns the full key we store in the db, including prefix. The
// result is always a fresh slice so that consecutive calls never share
// memory.
func (mb *modelBucket) dbKey(key []byte) []byte {
	out := make([]byte, len(mb.prefix)+len(key))
	copy(out, mb.prefix)
	copy(out[len(mb.prefix):], key)
	return out
}

// newModel returns a new, empty instance of the bucket model.
func (mb *modelBucket) newModel() Model {
	return reflect.New(mb.model).Interface().(Model)
}

func (mb *modelBucket) One(db heirloom.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, mb.model)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %s", mb.name)
	}
	return nil
}

func (mb *modelBucket) Has(db heirloom.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	return nil
}

func (mb *modelBucket) Put(db heirloom.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if reflect.TypeOf(m) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	for _, idx := range mb.indexes {
		if err := idx.update(db, key, prev, m); err != nil {
			return errors.Wrapf(err, "cannot update %q index", idx.name)
		}
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (mb *modelBucket) Delete(db heirloom.KVStore, key []byte) error {
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	for _, idx := range mb.indexes {
		if err := idx.update(db, key, prev, nil); err != nil {
			return errors.Wrapf(err, "cannot update %q index", idx.name)
		}
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// load returns the model stored under given key or nil.
func (mb *modelBucket) load(db heirloom.ReadOnlyKVStore, key []byte) (Model, error) {
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return nil, nil
	}
	m := mb.newModel()
	if err := m.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "cannot unmarshal %s", mb.name)
	}
	return m, nil
}

func (mb *modelBucket) ByIndex(db heirloom.ReadOnlyKVStore, indexName string, value []byte, dest interface{}) ([][]byte, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "no %q index in %s bucket", indexName, mb.name)
	}

	slice := reflect.ValueOf(dest)
	if slice.Kind() != reflect.Ptr || slice.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrapf(errors.ErrType, "destination must be a pointer to a slice, got %T", dest)
	}
	elem := slice.Elem().Type().Elem()
	byPointer := elem.Kind() == reflect.Ptr
	if (byPointer && elem.Elem() != mb.model) || (!byPointer && elem != mb.model) {
		return nil, errors.Wrapf(errors.ErrType, "cannot load %s into %T", mb.model, dest)
	}

	keys, err := idx.keys(db, value)
	if err != nil {
		return nil, err
	}
	out := reflect.MakeSlice(slice.Elem().Type(), 0, len(keys))
	for _, key := range keys {
		m := mb.newModel()
		if err := mb.One(db, key, m); err != nil {
			return nil, errors.Wrap(err, "broken index reference")
		}
		if byPointer {
			out = reflect.Append(out, reflect.ValueOf(m))
		} else {
			out = reflect.Append(out, reflect.ValueOf(m).Elem())
		}
	}
	slice.Elem().Set(out)
	return keys, nil
}

func (mb *modelBucket) Scan(db heirloom.ReadOnlyKVStore, prefix []byte, reverse bool) (ModelIterator, error) {
	start, end := PrefixRange(mb.dbKey(prefix))
	var (
		it  heirloom.Iterator
		err error
	)
	if reverse {
		it, err = db.ReverseIterator(start, end)
	} else {
		it, err = db.Iterator(start, end)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &modelIterator{it: it, prefixLen: len(mb.prefix)}, nil
}

func (mb *modelBucket) Register(name string, r heirloom.QueryRouter) {
	if name == "" {
		name = mb.name
	}
	root := "/" + name
	r.Register(root, bucketQuery{bucket: mb})
	for idxName, idx := range mb.indexes {
		r.Register(root+"/"+idxName, indexQuery{bucket: mb, idx: idx})
	}
}

// ModelIterator iterates over models of a bucket.
type ModelIterator interface {
	// LoadNext loads the next model into dest and returns its primary
	// key. ErrIteratorDone is returned once there are no more models.
	LoadNext(dest Model) ([]byte, error)

	// Release releases the iterator.
	Release()
}

type modelIterator struct {
	it        heirloom.Iterator
	prefixLen int
}

func (m *modelIterator) LoadNext(dest Model) ([]byte, error) {
	key, value, err := m.it.Next()
	if err != nil {
		return nil, err
	}
	if err := dest.Unmarshal(value); err != nil {
		return nil, errors.Wrapf(err, "cannot unmarshal %X", key)
	}
	return key[m.prefixLen:], nil
}

func (m *modelIterator) Release() {
	m.it.Release()
}
