package store

import (
	"bytes"

	"github.com/heirloom-labs/heirloom/errors"
)

// mergedIterator combines the items cached in a btree with the items of the
// parent store. Cached items shadow parent items with the same key and a
// cached delete hides the parent item.
type mergedIterator struct {
	items []keyer
	idx   int

	parent       Iterator
	parentKey    []byte
	parentValue  []byte
	parentLoaded bool
	parentDone   bool

	ascending bool
}

var _ Iterator = (*mergedIterator)(nil)

func newMergedIterator(items []keyer, parent Iterator, ascending bool) *mergedIterator {
	return &mergedIterator{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
}

func (m *mergedIterator) Next() ([]byte, []byte, error) {
	for {
		if err := m.loadParent(); err != nil {
			return nil, nil, err
		}
		hasOwn := m.idx < len(m.items)

		switch {
		case !hasOwn && m.parentDone:
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "merged iterator")
		case !hasOwn:
			return m.takeParent()
		case m.parentDone:
			if key, value, ok := m.takeOwn(); ok {
				return key, value, nil
			}
			continue
		}

		cmp := bytes.Compare(m.items[m.idx].Key(), m.parentKey)
		if !m.ascending {
			cmp = -cmp
		}
		switch {
		case cmp > 0:
			return m.takeParent()
		case cmp == 0:
			// Cached value shadows the parent.
			m.parentLoaded = false
		}
		if key, value, ok := m.takeOwn(); ok {
			return key, value, nil
		}
	}
}

// loadParent reads the next parent item unless one is already waiting.
func (m *mergedIterator) loadParent() error {
	if m.parentLoaded || m.parentDone {
		return nil
	}
	key, value, err := m.parent.Next()
	switch {
	case err == nil:
		m.parentKey, m.parentValue, m.parentLoaded = key, value, true
	case errors.ErrIteratorDone.Is(err):
		m.parentDone = true
	default:
		return err
	}
	return nil
}

func (m *mergedIterator) takeParent() ([]byte, []byte, error) {
	m.parentLoaded = false
	return m.parentKey, m.parentValue, nil
}

// takeOwn advances over a cached item. ok is false if the item is a delete
// marker.
func (m *mergedIterator) takeOwn() ([]byte, []byte, bool) {
	item := m.items[m.idx]
	m.idx++
	if set, ok := item.(setItem); ok {
		return set.key, set.value, true
	}
	return nil, nil, false
}

func (m *mergedIterator) Release() {
	m.items = nil
	m.parent.Release()
}
