package store

import (
	"bytes"
	"testing"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/heirloomtest/assert"
)

// TestSuite groups store behaviour checks that every CacheableKVStore
// implementation must pass. Each implementation package runs the suite with
// its own store constructor, so btree and iavl backed stores are held to the
// same contract.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store and a cleanup function.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet checks that cache wraps see the data of their parent, that writes
// are isolated until Write and that Discard drops them.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("will:alice:0"), []byte("heir=bob")
	s.AssertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	s.AssertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	k2, v2 := []byte("balance:alice:gold"), []byte("100")
	assert.Nil(t, cache.Set(k2, v2))
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, k2, v2, true)

	k3 := []byte("proposal:gold")
	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Set(k3, []byte("open")))
	discarded.Discard()
	s.AssertGetHas(t, base, k3, nil, false)

	deleting := base.CacheWrap()
	assert.Nil(t, deleting.Delete(k))
	s.AssertGetHas(t, deleting, k, nil, false)
	s.AssertGetHas(t, base, k, v, true)
	assert.Nil(t, deleting.Write())
	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
}

// CacheConflicts checks overwriting and deleting values of the parent.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	parent, cleanup := s.makeBase()
	defer cleanup()

	a, b, c := []byte("a"), []byte("b"), []byte("c")
	assert.Nil(t, SetOp(a, []byte("1")).Apply(parent))
	assert.Nil(t, SetOp(b, []byte("2")).Apply(parent))

	child := parent.CacheWrap()
	assert.Nil(t, SetOp(a, []byte("11")).Apply(child))
	assert.Nil(t, DelOp(b).Apply(child))
	assert.Nil(t, SetOp(c, []byte("3")).Apply(child))

	s.AssertGetHas(t, parent, a, []byte("1"), true)
	s.AssertGetHas(t, parent, b, []byte("2"), true)
	s.AssertGetHas(t, parent, c, nil, false)

	s.AssertGetHas(t, child, a, []byte("11"), true)
	s.AssertGetHas(t, child, b, nil, false)
	s.AssertGetHas(t, child, c, []byte("3"), true)

	assert.Nil(t, child.Write())
	s.AssertGetHas(t, parent, a, []byte("11"), true)
	s.AssertGetHas(t, parent, b, nil, false)
	s.AssertGetHas(t, parent, c, []byte("3"), true)
}

// IteratorWithConflicts checks that iterating over a cache wrap merges the
// parent data with cached writes and deletes, in both directions.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	m := func(k, v string) Model { return heirloom.Pair([]byte(k), []byte(v)) }

	cases := map[string]struct {
		parent  []Op
		child   []Op
		start   []byte
		end     []byte
		reverse bool
		want    []Model
	}{
		"child only": {
			child: []Op{SetOp([]byte("b"), []byte("2")), SetOp([]byte("a"), []byte("1"))},
			want:  []Model{m("a", "1"), m("b", "2")},
		},
		"parent only": {
			parent: []Op{SetOp([]byte("b"), []byte("2")), SetOp([]byte("a"), []byte("1"))},
			want:   []Model{m("a", "1"), m("b", "2")},
		},
		"interleaved": {
			parent: []Op{SetOp([]byte("a"), []byte("1")), SetOp([]byte("c"), []byte("3"))},
			child:  []Op{SetOp([]byte("b"), []byte("2")), SetOp([]byte("d"), []byte("4"))},
			want:   []Model{m("a", "1"), m("b", "2"), m("c", "3"), m("d", "4")},
		},
		"interleaved reverse": {
			parent:  []Op{SetOp([]byte("a"), []byte("1")), SetOp([]byte("c"), []byte("3"))},
			child:   []Op{SetOp([]byte("b"), []byte("2")), SetOp([]byte("d"), []byte("4"))},
			reverse: true,
			want:    []Model{m("d", "4"), m("c", "3"), m("b", "2"), m("a", "1")},
		},
		"child overwrites parent": {
			parent: []Op{SetOp([]byte("a"), []byte("1")), SetOp([]byte("b"), []byte("2"))},
			child:  []Op{SetOp([]byte("a"), []byte("x"))},
			want:   []Model{m("a", "x"), m("b", "2")},
		},
		"child deletes hide parent": {
			parent: []Op{SetOp([]byte("a"), []byte("1")), SetOp([]byte("b"), []byte("2")), SetOp([]byte("c"), []byte("3"))},
			child:  []Op{DelOp([]byte("a")), DelOp([]byte("c")), DelOp([]byte("z"))},
			want:   []Model{m("b", "2")},
		},
		"deletes hide parent reverse": {
			parent:  []Op{SetOp([]byte("a"), []byte("1")), SetOp([]byte("b"), []byte("2")), SetOp([]byte("c"), []byte("3"))},
			child:   []Op{DelOp([]byte("b"))},
			reverse: true,
			want:    []Model{m("c", "3"), m("a", "1")},
		},
		"bounded range": {
			parent: []Op{SetOp([]byte("a"), []byte("1")), SetOp([]byte("c"), []byte("3"))},
			child:  []Op{SetOp([]byte("b"), []byte("2")), SetOp([]byte("d"), []byte("4"))},
			start:  []byte("b"),
			end:    []byte("d"),
			want:   []Model{m("b", "2"), m("c", "3")},
		},
		"bounded range reverse": {
			parent:  []Op{SetOp([]byte("a"), []byte("1")), SetOp([]byte("c"), []byte("3"))},
			child:   []Op{SetOp([]byte("b"), []byte("2")), SetOp([]byte("d"), []byte("4"))},
			start:   []byte("a"),
			end:     []byte("c"),
			reverse: true,
			want:    []Model{m("b", "2"), m("a", "1")},
		},
		"empty range": {
			parent: []Op{SetOp([]byte("c"), []byte("3"))},
			child:  []Op{DelOp([]byte("a"))},
			end:    []byte("c"),
			want:   nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parent {
				assert.Nil(t, op.Apply(base))
			}
			child := base.CacheWrap()
			for _, op := range tc.child {
				assert.Nil(t, op.Apply(child))
			}

			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = child.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = child.Iterator(tc.start, tc.end)
			}
			assert.Nil(t, err)
			defer it.Release()

			got := ReadAll(t, it)
			if len(got) != len(tc.want) {
				t.Fatalf("want %d models, got %d: %q", len(tc.want), len(got), got)
			}
			for i := range got {
				if !bytes.Equal(got[i].Key, tc.want[i].Key) || !bytes.Equal(got[i].Value, tc.want[i].Value) {
					t.Fatalf("model %d: want %q, got %q", i, tc.want[i], got[i])
				}
			}
		})
	}
}

// AssertGetHas checks both Get and Has results for given key.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	if !bytes.Equal(val, got) {
		t.Fatalf("%q: want value %q, got %q", key, val, got)
	}
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	if exists != has {
		t.Fatalf("%q: want has=%v, got %v", key, has, exists)
	}
}

// ReadAll consumes the iterator and returns all models.
func ReadAll(t testing.TB, it Iterator) []Model {
	t.Helper()
	var res []Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res
		}
		assert.Nil(t, err)
		res = append(res, heirloom.Pair(key, value))
	}
}
