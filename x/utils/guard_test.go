package utils

import (
	"testing"

	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReentrancyGuard(t *testing.T) {
	db := store.MemStore()
	execute := NewReentrancyGuard("will/execute")
	claim := NewReentrancyGuard("will/claim")

	var calls int
	err := execute.Run(db, func() error {
		calls++
		// Nested call of the same entry point is rejected.
		nested := execute.Run(db, func() error {
			calls++
			return nil
		})
		require.True(t, errors.ErrReentrancy.Is(nested), "got %v", nested)

		// Other entry points are not locked.
		return claim.Run(db, func() error {
			calls++
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	// The lock is released after the call.
	require.NoError(t, execute.Run(db, func() error { return nil }))

	// An error of the guarded function is returned and the lock released.
	err = execute.Run(db, func() error { return errors.ErrState })
	assert.True(t, errors.ErrState.Is(err))
	require.NoError(t, execute.Run(db, func() error { return nil }))
}

func TestReentrancyGuardName(t *testing.T) {
	assert.Panics(t, func() { NewReentrancyGuard("") })
	assert.Panics(t, func() { NewReentrancyGuard("Will Execute") })
}
