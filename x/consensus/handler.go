package consensus

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/x"
	"github.com/heirloom-labs/heirloom/x/registry"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r heirloom.Registry, auth x.Authenticator, reg registry.Registry, engine *Engine) {
	r.Handle(pathProposeMsg, ProposeHandler{auth: auth, registry: reg, engine: engine})
	r.Handle(pathApproveMsg, ApproveHandler{auth: auth, registry: reg, engine: engine})
	r.Handle(pathExecuteMsg, ExecuteHandler{engine: engine})
}

// RegisterQuery will register the proposal bucket as "/proposals", with the
// "/proposals/recipient" index.
func RegisterQuery(qr heirloom.QueryRouter) {
	NewBucket().Register("proposals", qr)
}

// holderSigner returns the first signer holding the asset. If no signer
// holds it, any signer is returned and the engine rejects it.
func holderSigner(ctx heirloom.Context, db heirloom.ReadOnlyKVStore, auth x.Authenticator, reg registry.Registry, assetID string) (heirloom.Address, error) {
	for _, signer := range x.GetAddresses(ctx, auth) {
		balance, err := reg.Balance(db, signer, assetID)
		if err != nil {
			return nil, err
		}
		if balance > 0 {
			return signer, nil
		}
	}
	return x.AnySigner(ctx, auth)
}

// ProposeHandler opens a whole-asset proposal.
type ProposeHandler struct {
	auth     x.Authenticator
	registry registry.Registry
	engine   *Engine
}

var _ heirloom.Handler = ProposeHandler{}

func (h ProposeHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{}, nil
}

func (h ProposeHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	msg, proposer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	event, err := h.engine.Propose(ctx, db, proposer, msg.AssetID, msg.Recipient)
	if err != nil {
		return nil, err
	}
	res := &heirloom.DeliverResult{Data: []byte(msg.AssetID)}
	res.Emit(event)
	return res, nil
}

func (h ProposeHandler) validate(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*ProposeMsg, heirloom.Address, error) {
	var msg ProposeMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	proposer, err := holderSigner(ctx, db, h.auth, h.registry, msg.AssetID)
	if err != nil {
		return nil, nil, err
	}
	return &msg, proposer, nil
}

// ApproveHandler approves the open proposal of an asset.
type ApproveHandler struct {
	auth     x.Authenticator
	registry registry.Registry
	engine   *Engine
}

var _ heirloom.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{}, nil
}

func (h ApproveHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	msg, holder, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	events, err := h.engine.Approve(ctx, db, holder, msg.AssetID)
	if err != nil {
		return nil, err
	}
	res := &heirloom.DeliverResult{}
	res.Emit(events...)
	return res, nil
}

func (h ApproveHandler) validate(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*ApproveMsg, heirloom.Address, error) {
	var msg ApproveMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	holder, err := holderSigner(ctx, db, h.auth, h.registry, msg.AssetID)
	if err != nil {
		return nil, nil, err
	}
	return &msg, holder, nil
}

// ExecuteHandler executes a proposal. No signature is required.
type ExecuteHandler struct {
	engine *Engine
}

var _ heirloom.Handler = ExecuteHandler{}

func (h ExecuteHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	var msg ExecuteMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &heirloom.CheckResult{}, nil
}

func (h ExecuteHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	var msg ExecuteMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	events, err := h.engine.Execute(ctx, db, msg.AssetID)
	if err != nil {
		return nil, err
	}
	res := &heirloom.DeliverResult{}
	res.Emit(events...)
	return res, nil
}
