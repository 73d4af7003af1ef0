package auth

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
)

// Decorator puts the declared signer of a transaction into the context.
// Transactions that do not declare a signer pass through unauthenticated,
// and any handler requiring a signature will reject them.
type Decorator struct{}

var _ heirloom.Decorator = Decorator{}

func NewDecorator() Decorator {
	return Decorator{}
}

// Check authenticates before calling down the stack.
func (d Decorator) Check(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx, next heirloom.Checker) (*heirloom.CheckResult, error) {
	ctx, err := authenticate(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver authenticates before calling down the stack.
func (d Decorator) Deliver(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx, next heirloom.Deliverer) (*heirloom.DeliverResult, error) {
	ctx, err := authenticate(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func authenticate(ctx heirloom.Context, tx heirloom.Tx) (heirloom.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}
	signer := stx.GetSigner()
	if signer == nil {
		return ctx, nil
	}
	if err := signer.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, err.Error())
	}
	heirloom.GetLogger(ctx).Debug("transaction signer", "address", signer.Address())
	return withSigners(ctx, []heirloom.Condition{signer}), nil
}
