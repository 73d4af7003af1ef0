package registry

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/orm"
)

type holdingBucket struct {
	orm.ModelBucket
}

// load returns the holding of given asset, a zero holding if none exists.
func (b holdingBucket) load(db heirloom.ReadOnlyKVStore, holder heirloom.Address, assetID string) (*Holding, error) {
	var h Holding
	switch err := b.One(db, HoldingKey(holder, assetID), &h); {
	case err == nil:
		return &h, nil
	case errors.ErrNotFound.Is(err):
		return &Holding{
			Metadata: &heirloom.Metadata{Schema: 1},
			Holder:   holder,
			AssetID:  assetID,
		}, nil
	default:
		return nil, err
	}
}

func (b holdingBucket) save(db heirloom.KVStore, h *Holding) error {
	return b.Put(db, HoldingKey(h.Holder, h.AssetID), h)
}

type assetBucket struct {
	orm.ModelBucket
}

// load returns the asset, an asset without holders if it does not exist.
func (b assetBucket) load(db heirloom.ReadOnlyKVStore, assetID string) (*Asset, error) {
	var a Asset
	switch err := b.One(db, []byte(assetID), &a); {
	case err == nil:
		return &a, nil
	case errors.ErrNotFound.Is(err):
		return &Asset{
			Metadata: &heirloom.Metadata{Schema: 1},
			ID:       assetID,
		}, nil
	default:
		return nil, err
	}
}

type operatorBucket struct {
	orm.ModelBucket
}
