package registry

import (
	"encoding/json"
	"testing"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/heirloomtest"
	"github.com/heirloom-labs/heirloom/heirloomtest/assert"
	"github.com/heirloom-labs/heirloom/store"
)

func TestGenesis(t *testing.T) {
	const genesis = `
		{
			"registry": {
				"holdings": [
					{"holder": "seq:test/alice", "asset_id": "house", "amount": 7},
					{"holder": "hex:0000000000000000000000000000000000000001", "asset_id": "house", "amount": 3}
				],
				"operators": [
					{"owner": "hex:0000000000000000000000000000000000000001", "operator": "hex:0000000000000000000000000000000000000002"}
				]
			}
		}
	`
	var opts heirloom.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	err := Initializer{}.FromGenesis(opts, db)
	// The first holder uses an unknown address format.
	assert.IsErr(t, errors.ErrInput, err)

	const valid = `
		{
			"registry": {
				"holdings": [
					{"holder": "hex:0000000000000000000000000000000000000001", "asset_id": "house", "amount": 3}
				],
				"operators": [
					{"owner": "hex:0000000000000000000000000000000000000001", "operator": "hex:0000000000000000000000000000000000000002"}
				]
			}
		}
	`
	assert.Nil(t, json.Unmarshal([]byte(valid), &opts))
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	owner := heirloomtest.ParseAddress(t, "hex:0000000000000000000000000000000000000001")
	operator := heirloomtest.ParseAddress(t, "hex:0000000000000000000000000000000000000002")

	ctrl := NewController()
	balance, err := ctrl.Balance(db, owner, "house")
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), balance)

	ok, err := ctrl.IsAuthorized(db, owner, operator)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)
}

func TestGenesisEmpty(t *testing.T) {
	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(heirloom.Options{}, db))
}
