package liveness

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/gconf"
)

// Initializer fulfils the Initializer interface to load the configuration
// from the genesis file.
type Initializer struct{}

var _ heirloom.Initializer = Initializer{}

// FromGenesis reads the configuration from app_state.conf.liveness.
func (Initializer) FromGenesis(opts heirloom.Options, db heirloom.KVStore) error {
	return gconf.InitConfig(db, opts, packageName, &Configuration{})
}
