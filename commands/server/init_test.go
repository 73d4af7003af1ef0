package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/heirloom-labs/heirloom/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

// setupHome creates a home directory with a genesis file as written by
// tendermint init.
func setupHome(t *testing.T, genesis string) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "heirloom-server")
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(home, "config"), 0755))
	require.NoError(t, ioutil.WriteFile(GenesisPath(home), []byte(genesis), 0644))
	return home, func() { os.RemoveAll(home) }
}

const tmGenesis = `{
  "genesis_time": "2019-04-01T10:00:00Z",
  "chain_id": "test-chain-Qm7s0F",
  "validators": [{"power": "10", "name": ""}],
  "app_hash": ""
}`

func staticOptions(state string) GenOptions {
	return func(args []string) (json.RawMessage, error) {
		return json.RawMessage(state), nil
	}
}

func readGenesis(t *testing.T, home string) genesisDoc {
	t.Helper()
	bz, err := ioutil.ReadFile(GenesisPath(home))
	require.NoError(t, err)
	var doc genesisDoc
	require.NoError(t, json.Unmarshal(bz, &doc))
	return doc
}

func TestInit(t *testing.T) {
	home, cleanup := setupHome(t, tmGenesis)
	defer cleanup()

	logger := log.NewNopLogger()
	err := InitCmd(staticOptions(`{"registry": {}}`), logger, home, nil)
	require.NoError(t, err)

	doc := readGenesis(t, home)
	// keep old values, and add our values
	assert.Equal(t, json.RawMessage(`"test-chain-Qm7s0F"`), doc["chain_id"])
	assert.NotEmpty(t, doc["validators"])
	assert.JSONEq(t, `{"registry": {}}`, string(doc[appStateKey]))

	// app state is not silently replaced
	err = InitCmd(staticOptions(`{"registry": null}`), logger, home, nil)
	assert.True(t, errors.ErrState.Is(err))

	err = InitCmd(staticOptions(`{"registry": null}`), logger, home, []string{"-i"})
	require.NoError(t, err)
	doc = readGenesis(t, home)
	assert.JSONEq(t, `{"registry": null}`, string(doc[appStateKey]))
}

func TestInitPassesArguments(t *testing.T) {
	home, cleanup := setupHome(t, tmGenesis)
	defer cleanup()

	var got []string
	gen := func(args []string) (json.RawMessage, error) {
		got = args
		return json.RawMessage(`{}`), nil
	}
	err := InitCmd(gen, log.NewNopLogger(), home, []string{"-i", "first", "second"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestInitFailures(t *testing.T) {
	home, cleanup := setupHome(t, `not json`)
	defer cleanup()

	err := InitCmd(staticOptions(`{}`), log.NewNopLogger(), home, nil)
	assert.True(t, errors.ErrInput.Is(err))

	err = InitCmd(staticOptions(`{}`), log.NewNopLogger(), filepath.Join(home, "missing"), nil)
	assert.Error(t, err)

	err = InitCmd(staticOptions(`{}`), log.NewNopLogger(), home, []string{"-unknown"})
	assert.True(t, errors.ErrInput.Is(err))
}

func TestParseFlags(t *testing.T) {
	addr, debug, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, "tcp://localhost:26658", addr)
	assert.False(t, debug)

	addr, debug, err = parseFlags([]string{"-bind", "unix:///tmp/heirloom.sock", "-debug"})
	require.NoError(t, err)
	assert.Equal(t, "unix:///tmp/heirloom.sock", addr)
	assert.True(t, debug)
}
