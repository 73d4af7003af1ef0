package app

import (
	"github.com/heirloom-labs/heirloom"
)

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...heirloom.Initializer) heirloom.Initializer {
	return chainInitializer{inits: inits}
}

type chainInitializer struct {
	inits []heirloom.Initializer
}

// FromGenesis will pass opts to all Initializers in the list, aborting at
// the first error.
func (c chainInitializer) FromGenesis(opts heirloom.Options, kv heirloom.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
