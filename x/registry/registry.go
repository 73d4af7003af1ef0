package registry

import (
	"github.com/heirloom-labs/heirloom"
)

// Registry is the capability surface the succession engines require from
// an asset book.
type Registry interface {
	// Balance returns the amount of given asset held by the holder.
	Balance(db heirloom.ReadOnlyKVStore, holder heirloom.Address, assetID string) (uint64, error)

	// IsAuthorized returns true if the owner granted the operator a blanket
	// authorization to move any of the owner's assets.
	IsAuthorized(db heirloom.ReadOnlyKVStore, owner, operator heirloom.Address) (bool, error)

	// Transfer moves amount of given asset from one holder to another on
	// behalf of the operator. The operator must be either the source holder
	// or authorized by the source holder.
	Transfer(ctx heirloom.Context, db heirloom.KVStore, operator, from, to heirloom.Address, assetID string, amount uint64) error

	// Holders returns the identities that held given asset, in the order
	// of their first acquisition. Returned holders may have a zero
	// balance.
	Holders(db heirloom.ReadOnlyKVStore, assetID string) ([]heirloom.Address, error)
}

// TransferHook is notified after every successful balance change. A hook
// runs within the transfer and may call back into other extensions. An
// error returned by a hook fails the transfer.
type TransferHook interface {
	OnTransfer(ctx heirloom.Context, db heirloom.KVStore, t Transfer) error
}

// TransferHookFunc is an adapter to allow the use of ordinary functions as
// transfer hooks.
type TransferHookFunc func(heirloom.Context, heirloom.KVStore, Transfer) error

func (fn TransferHookFunc) OnTransfer(ctx heirloom.Context, db heirloom.KVStore, t Transfer) error {
	return fn(ctx, db, t)
}

// Transfer describes a single balance change.
type Transfer struct {
	Operator heirloom.Address
	From     heirloom.Address
	To       heirloom.Address
	AssetID  string
	Amount   uint64
}
