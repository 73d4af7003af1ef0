package app

import (
	"testing"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultSetRoundTrip(t *testing.T) {
	models := []heirloom.Model{
		heirloom.Pair([]byte("one"), []byte("first")),
		heirloom.Pair([]byte("two"), []byte("second")),
	}

	kbz, err := ResultsFromKeys(models).Marshal()
	require.NoError(t, err)
	vbz, err := ResultsFromValues(models).Marshal()
	require.NoError(t, err)

	var keys, values ResultSet
	require.NoError(t, keys.Unmarshal(kbz))
	require.NoError(t, values.Unmarshal(vbz))

	got, err := JoinResults(&keys, &values)
	require.NoError(t, err)
	assert.Equal(t, models, got)

	values.Results = values.Results[:1]
	_, err = JoinResults(&keys, &values)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestUnmarshalOneResult(t *testing.T) {
	inner := ResultSet{Results: []Result{{Data: []byte("payload")}}}
	innerBz, err := inner.Marshal()
	require.NoError(t, err)

	outer, err := ResultsFromValues([]heirloom.Model{heirloom.Pair(nil, innerBz)}).Marshal()
	require.NoError(t, err)

	var got ResultSet
	require.NoError(t, UnmarshalOneResult(outer, &got))
	assert.Equal(t, inner, got)

	empty, err := (&ResultSet{}).Marshal()
	require.NoError(t, err)
	var untouched ResultSet
	require.NoError(t, UnmarshalOneResult(empty, &untouched))
	assert.Len(t, untouched.Results, 0)
}
