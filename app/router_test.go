package app

import (
	"testing"

	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/heirloomtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	good := &heirloomtest.Handler{}
	bad := &heirloomtest.Handler{
		CheckErr:   errors.ErrState,
		DeliverErr: errors.ErrState,
	}
	r.Handle("will/good", good)
	r.Handle("will/bad", bad)

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle("will/good", good) })
	assert.Panics(t, func() { r.Handle("l:7", good) })
	assert.Panics(t, func() { r.Handle("will", good) })

	tx := func(path string) *heirloomtest.Tx {
		return &heirloomtest.Tx{Msg: &heirloomtest.Msg{RoutePath: path}}
	}

	_, err := r.Check(nil, nil, tx("will/good"))
	require.NoError(t, err)
	_, err = r.Deliver(nil, nil, tx("will/good"))
	require.NoError(t, err)
	assert.Equal(t, 1, good.CheckCallCount())
	assert.Equal(t, 1, good.DeliverCallCount())

	_, err = r.Deliver(nil, nil, tx("will/bad"))
	assert.True(t, errors.ErrState.Is(err))
	assert.Equal(t, 1, bad.DeliverCallCount())

	_, err = r.Check(nil, nil, tx("will/missing"))
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Deliver(nil, nil, tx("will/missing"))
	assert.True(t, errors.ErrNotFound.Is(err))

	_, err = r.Deliver(nil, nil, &heirloomtest.Tx{})
	assert.True(t, errors.ErrEmpty.Is(err))

	_, err = r.Check(nil, nil, &heirloomtest.Tx{Err: errors.ErrMsg})
	assert.True(t, errors.ErrMsg.Is(err))

	// counters did not move on the failed dispatches
	assert.Equal(t, 2, good.CallCount())
}
