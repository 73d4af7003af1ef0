package store

import (
	"testing"
)

func memStoreSuite() *TestSuite {
	return NewTestSuite(func() (CacheableKVStore, func()) {
		return MemStore(), func() {}
	})
}

func TestBTreeCacheGetSet(t *testing.T) {
	memStoreSuite().GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	memStoreSuite().CacheConflicts(t)
}

func TestBTreeCacheIterator(t *testing.T) {
	memStoreSuite().IteratorWithConflicts(t)
}

func TestNestedCacheWraps(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	inner := outer.CacheWrap()

	if err := inner.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("cannot set: %s", err)
	}
	if err := inner.Write(); err != nil {
		t.Fatalf("cannot write inner: %s", err)
	}
	if v, _ := base.Get([]byte("k")); v != nil {
		t.Fatalf("base must not see the value before outer write: %q", v)
	}
	if err := outer.Write(); err != nil {
		t.Fatalf("cannot write outer: %s", err)
	}
	if v, _ := base.Get([]byte("k")); string(v) != "v" {
		t.Fatalf("unexpected value: %q", v)
	}
}

func TestNonAtomicBatch(t *testing.T) {
	base := MemStore()
	b := NewNonAtomicBatch(base)
	_ = b.Set([]byte("a"), []byte("1"))
	_ = b.Delete([]byte("a"))
	_ = b.Set([]byte("b"), []byte("2"))
	if n := len(b.ShowOps()); n != 3 {
		t.Fatalf("want 3 ops, got %d", n)
	}
	if ok, _ := base.Has([]byte("b")); ok {
		t.Fatal("batch must not write before Write")
	}
	if err := b.Write(); err != nil {
		t.Fatalf("cannot write: %s", err)
	}
	if ok, _ := base.Has([]byte("a")); ok {
		t.Fatal("deleted key present")
	}
	if v, _ := base.Get([]byte("b")); string(v) != "2" {
		t.Fatalf("unexpected value: %q", v)
	}
	if len(b.ShowOps()) != 0 {
		t.Fatal("batch must be reset after write")
	}
}
