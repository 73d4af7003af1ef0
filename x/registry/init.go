package registry

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
)

const optKey = "registry"

// Genesis is used to parse the json from genesis file.
type Genesis struct {
	Holdings  []GenesisHolding  `json:"holdings"`
	Operators []GenesisOperator `json:"operators"`
}

// GenesisHolding is an initial balance of an asset.
type GenesisHolding struct {
	Holder  heirloom.Address `json:"holder"`
	AssetID string           `json:"asset_id"`
	Amount  uint64           `json:"amount"`
}

// GenesisOperator is an initial operator authorization.
type GenesisOperator struct {
	Owner    heirloom.Address `json:"owner"`
	Operator heirloom.Address `json:"operator"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ heirloom.Initializer = Initializer{}

// FromGenesis will parse initial holdings and authorizations from genesis
// and save them to the database.
func (Initializer) FromGenesis(opts heirloom.Options, db heirloom.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController()
	for i, h := range gen.Holdings {
		if h.Amount == 0 {
			return errors.Wrapf(errors.ErrAmount, "holding %d", i)
		}
		if err := ctrl.Issue(db, h.Holder, h.AssetID, h.Amount); err != nil {
			return errors.Wrapf(err, "holding %d", i)
		}
	}
	for i, o := range gen.Operators {
		if err := ctrl.Authorize(db, o.Owner, o.Operator, true); err != nil {
			return errors.Wrapf(err, "operator %d", i)
		}
	}
	return nil
}
