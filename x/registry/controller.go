package registry

import (
	"math"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
)

// Controller is the store backed Registry implementation.
type Controller struct {
	holdings  holdingBucket
	assets    assetBucket
	operators operatorBucket
	hooks     []TransferHook
}

var _ Registry = (*Controller)(nil)

// NewController returns a registry controller. Given hooks are notified of
// every transfer, in order.
func NewController(hooks ...TransferHook) *Controller {
	return &Controller{
		holdings:  holdingBucket{NewHoldingBucket()},
		assets:    assetBucket{NewAssetBucket()},
		operators: operatorBucket{NewOperatorBucket()},
		hooks:     hooks,
	}
}

// AddHook registers another transfer hook.
func (c *Controller) AddHook(h TransferHook) {
	c.hooks = append(c.hooks, h)
}

// Balance returns the amount of given asset held by the holder. Zero is
// returned for an unknown holder or asset.
func (c *Controller) Balance(db heirloom.ReadOnlyKVStore, holder heirloom.Address, assetID string) (uint64, error) {
	h, err := c.holdings.load(db, holder, assetID)
	if err != nil {
		return 0, err
	}
	return h.Amount, nil
}

// IsAuthorized returns true if the owner granted the operator a blanket
// authorization.
func (c *Controller) IsAuthorized(db heirloom.ReadOnlyKVStore, owner, operator heirloom.Address) (bool, error) {
	switch err := c.operators.Has(db, OperatorKey(owner, operator)); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// Authorize grants or revokes a blanket authorization of the operator to
// move any asset of the owner. Granting an existing authorization or
// revoking a missing one is a no-op.
func (c *Controller) Authorize(db heirloom.KVStore, owner, operator heirloom.Address, grant bool) error {
	key := OperatorKey(owner, operator)
	if !grant {
		err := c.operators.Delete(db, key)
		if errors.ErrNotFound.Is(err) {
			return nil
		}
		return err
	}
	return c.operators.Put(db, key, &Operator{
		Metadata: &heirloom.Metadata{Schema: 1},
		Owner:    owner,
		Operator: operator,
	})
}

// Holders returns the identities that held given asset, in the order they
// first received it. Identities with a zero balance stay on the list until
// their slot is needed for a new holder.
func (c *Controller) Holders(db heirloom.ReadOnlyKVStore, assetID string) ([]heirloom.Address, error) {
	a, err := c.assets.load(db, assetID)
	if err != nil {
		return nil, err
	}
	res := make([]heirloom.Address, len(a.Holders))
	for i, h := range a.Holders {
		res[i] = h.Address
	}
	return res, nil
}

// Transfer moves amount of an asset between holders on behalf of the
// operator.
func (c *Controller) Transfer(ctx heirloom.Context, db heirloom.KVStore, operator, from, to heirloom.Address, assetID string, amount uint64) error {
	if err := ValidateAssetID(assetID); err != nil {
		return err
	}
	if err := from.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "transfer amount must be positive")
	}
	if !operator.Equals(from) {
		ok, err := c.IsAuthorized(db, from, operator)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(errors.ErrUnauthorized, "operator %s not authorized by %s", operator, from)
		}
	}

	src, err := c.holdings.load(db, from, assetID)
	if err != nil {
		return err
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds %d of %s, %d required", from, src.Amount, assetID, amount)
	}
	if from.Equals(to) {
		return c.notify(ctx, db, Transfer{Operator: operator, From: from, To: to, AssetID: assetID, Amount: amount})
	}
	src.Amount -= amount
	if err := c.holdings.save(db, src); err != nil {
		return err
	}
	if err := c.credit(db, to, assetID, amount); err != nil {
		return err
	}

	heirloom.GetLogger(ctx).Debug("asset transferred",
		"asset", assetID, "from", from, "to", to, "amount", amount)
	return c.notify(ctx, db, Transfer{Operator: operator, From: from, To: to, AssetID: assetID, Amount: amount})
}

// Issue creates amount of an asset out of thin air and credits it to the
// holder. It is only used when loading the genesis.
func (c *Controller) Issue(db heirloom.KVStore, holder heirloom.Address, assetID string, amount uint64) error {
	if err := ValidateAssetID(assetID); err != nil {
		return err
	}
	if err := holder.Validate(); err != nil {
		return errors.Wrap(err, "holder")
	}
	return c.credit(db, holder, assetID, amount)
}

func (c *Controller) credit(db heirloom.KVStore, holder heirloom.Address, assetID string, amount uint64) error {
	dst, err := c.holdings.load(db, holder, assetID)
	if err != nil {
		return err
	}
	if math.MaxUint64-dst.Amount < amount {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", assetID)
	}
	dst.Amount += amount
	if err := c.holdings.save(db, dst); err != nil {
		return err
	}

	asset, err := c.assets.load(db, assetID)
	if err != nil {
		return err
	}
	if asset.hasHolder(holder) {
		return nil
	}
	if len(asset.Holders) >= MaxHolders {
		if asset.Holders, err = c.dropEmpty(db, asset); err != nil {
			return err
		}
	}
	if len(asset.Holders) >= MaxHolders {
		return errors.Wrapf(errors.ErrInput, "asset %s cannot have more than %d holders", assetID, MaxHolders)
	}
	asset.Holders = append(asset.Holders, Holder{Address: holder})
	return c.assets.Put(db, []byte(assetID), asset)
}

// dropEmpty returns the holder list of the asset without the identities
// whose balance dropped to zero.
func (c *Controller) dropEmpty(db heirloom.ReadOnlyKVStore, asset *Asset) ([]Holder, error) {
	kept := asset.Holders[:0]
	for _, h := range asset.Holders {
		balance, err := c.Balance(db, h.Address, asset.ID)
		if err != nil {
			return nil, err
		}
		if balance > 0 {
			kept = append(kept, h)
		}
	}
	return kept, nil
}

func (c *Controller) notify(ctx heirloom.Context, db heirloom.KVStore, t Transfer) error {
	for _, h := range c.hooks {
		if err := h.OnTransfer(ctx, db, t); err != nil {
			return errors.Wrap(err, "transfer hook")
		}
	}
	return nil
}
