package server

import (
	"testing"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/stretchr/testify/assert"
)

// nameInitializer requires a non empty "name" option.
type nameInitializer struct{}

func (nameInitializer) FromGenesis(opts heirloom.Options, kv heirloom.KVStore) error {
	var name string
	if err := opts.ReadOptions("name", &name); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return kv.Set([]byte("name"), []byte(name))
}

func TestValidateGenesis(t *testing.T) {
	valid, cleanValid := setupHome(t, `{"chain_id": "x", "app_state": {"name": "heirloom"}}`)
	defer cleanValid()
	invalid, cleanInvalid := setupHome(t, `{"chain_id": "x", "app_state": {}}`)
	defer cleanInvalid()
	broken, cleanBroken := setupHome(t, `{"app_state": `)
	defer cleanBroken()

	assert.NoError(t, ValidateGenesis(nameInitializer{}, []string{GenesisPath(valid)}))

	err := ValidateGenesis(nameInitializer{}, []string{GenesisPath(valid), GenesisPath(invalid)})
	assert.True(t, errors.ErrEmpty.Is(err))

	err = ValidateGenesis(nameInitializer{}, []string{GenesisPath(broken)})
	assert.True(t, errors.ErrInput.Is(err))

	err = ValidateGenesis(nameInitializer{}, nil)
	assert.True(t, errors.ErrEmpty.Is(err))
}
