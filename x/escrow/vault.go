package escrow

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/orm"
	"github.com/heirloom-labs/heirloom/x/registry"
)

// Vault moves asset shares in and out of escrow.
type Vault struct {
	registry registry.Registry
	bucket   orm.ModelBucket
}

// NewVault returns a vault holding assets of the given registry.
func NewVault(reg registry.Registry) *Vault {
	return &Vault{
		registry: reg,
		bucket:   NewBucket(),
	}
}

// Deposit moves the share from source to the custodian address of the
// escrow, on behalf of the operator. The share can be released to the
// beneficiary at or after the unlock time.
func (v *Vault) Deposit(
	ctx heirloom.Context,
	db heirloom.KVStore,
	escrowID []byte,
	operator, source, beneficiary heirloom.Address,
	assetID string,
	amount uint64,
	unlock heirloom.UnixTime,
) (DepositEvent, error) {
	switch err := v.bucket.Has(db, escrowID); {
	case err == nil:
		return DepositEvent{}, errors.Wrapf(errors.ErrDuplicate, "escrow %X", escrowID)
	case !errors.ErrNotFound.Is(err):
		return DepositEvent{}, err
	}

	e := Escrow{
		Metadata:    &heirloom.Metadata{Schema: 1},
		Source:      source,
		Beneficiary: beneficiary,
		AssetID:     assetID,
		Amount:      amount,
		UnlockTime:  unlock,
		Address:     Condition(escrowID).Address(),
	}
	if err := v.registry.Transfer(ctx, db, operator, source, e.Address, assetID, amount); err != nil {
		return DepositEvent{}, errors.Wrap(err, "deposit")
	}
	if err := v.bucket.Put(db, escrowID, &e); err != nil {
		return DepositEvent{}, errors.Wrap(err, "save escrow")
	}
	heirloom.GetLogger(ctx).Info("escrow deposit",
		"escrow", escrowID, "asset", assetID, "amount", amount, "unlock", unlock)
	return DepositEvent{
		EscrowID:    escrowID,
		Vault:       e.Address,
		Source:      source,
		Beneficiary: beneficiary,
		AssetID:     assetID,
		Amount:      amount,
		UnlockTime:  unlock,
	}, nil
}

// Release moves the held share to the beneficiary and removes the escrow.
// It fails with ErrPrecondition before the unlock time.
func (v *Vault) Release(ctx heirloom.Context, db heirloom.KVStore, escrowID []byte) (ReleaseEvent, error) {
	e, err := v.Get(db, escrowID)
	if err != nil {
		return ReleaseEvent{}, err
	}
	now, err := heirloom.BlockNow(ctx)
	if err != nil {
		return ReleaseEvent{}, err
	}
	if now < e.UnlockTime {
		return ReleaseEvent{}, errors.Wrapf(errors.ErrPrecondition, "escrow locked until %s", e.UnlockTime)
	}
	// The custodian is the operator of its own holding.
	if err := v.registry.Transfer(ctx, db, e.Address, e.Address, e.Beneficiary, e.AssetID, e.Amount); err != nil {
		return ReleaseEvent{}, errors.Wrap(err, "release")
	}
	if err := v.bucket.Delete(db, escrowID); err != nil {
		return ReleaseEvent{}, errors.Wrap(err, "delete escrow")
	}
	heirloom.GetLogger(ctx).Info("escrow released",
		"escrow", escrowID, "beneficiary", e.Beneficiary, "asset", e.AssetID, "amount", e.Amount)
	return ReleaseEvent{
		EscrowID:    escrowID,
		Vault:       e.Address,
		Beneficiary: e.Beneficiary,
		AssetID:     e.AssetID,
		Amount:      e.Amount,
	}, nil
}

// Get returns the escrow with given ID.
func (v *Vault) Get(db heirloom.ReadOnlyKVStore, escrowID []byte) (*Escrow, error) {
	var e Escrow
	if err := v.bucket.One(db, escrowID, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// RegisterQuery will register the escrow bucket as "/escrows".
func RegisterQuery(qr heirloom.QueryRouter) {
	NewBucket().Register("escrows", qr)
}
