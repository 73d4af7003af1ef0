package orm

import (
	"bytes"
	"testing"

	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/store"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()
	alice := NewSequence("wills", "alice")
	bob := NewSequence("wills", "bob")

	for want := uint64(0); want < 3; want++ {
		got, err := alice.NextInt(db)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	first, err := bob.NextVal(db)
	require.NoError(t, err)
	require.Equal(t, EncodeSequence(0), first)
	second, err := bob.NextVal(db)
	require.NoError(t, err)
	require.Equal(t, -1, bytes.Compare(first, second))

	next, err := alice.Peek(db)
	require.NoError(t, err)
	require.Equal(t, uint64(3), next)
}

func TestDecodeSequence(t *testing.T) {
	v, err := DecodeSequence(nil)
	require.NoError(t, err)
	require.Equal(t, uint64(0), v)

	v, err = DecodeSequence(EncodeSequence(1 << 40))
	require.NoError(t, err)
	require.Equal(t, uint64(1<<40), v)

	_, err = DecodeSequence([]byte{1, 2})
	require.True(t, errors.ErrInput.Is(err))
}

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix    []byte
		wantStart []byte
		wantEnd   []byte
	}{
		"simple":        {[]byte("ab"), []byte("ab"), []byte("ac")},
		"trailing 0xff": {[]byte{'a', 0xff}, []byte{'a', 0xff}, []byte("b")},
		"all 0xff":      {[]byte{0xff, 0xff}, []byte{0xff, 0xff}, nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			start, end := PrefixRange(tc.prefix)
			require.Equal(t, tc.wantStart, start)
			require.Equal(t, tc.wantEnd, end)
		})
	}
}
