package app

import (
	"testing"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type initFunc func(heirloom.Options, heirloom.KVStore) error

func (fn initFunc) FromGenesis(opts heirloom.Options, kv heirloom.KVStore) error {
	return fn(opts, kv)
}

func TestChainInitializers(t *testing.T) {
	var calls []string
	record := func(name string, err error) heirloom.Initializer {
		return initFunc(func(heirloom.Options, heirloom.KVStore) error {
			calls = append(calls, name)
			return err
		})
	}

	db := store.MemStore()
	err := ChainInitializers(record("a", nil), record("b", nil)).FromGenesis(nil, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, calls)

	calls = nil
	err = ChainInitializers(record("a", errors.ErrInput), record("b", nil)).FromGenesis(nil, db)
	assert.True(t, errors.ErrInput.Is(err))
	assert.Equal(t, []string{"a"}, calls)
}
