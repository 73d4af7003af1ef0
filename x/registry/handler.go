package registry

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r heirloom.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(pathTransferMsg, NewTransferHandler(auth, ctrl))
	r.Handle(pathAuthorizeMsg, NewAuthorizeHandler(auth, ctrl))
}

// RegisterQuery registers holdings under "/holdings" (holder prefixed,
// with an "/holdings/asset" index), asset holder lists under "/assets" and
// operator authorizations under "/operators".
func RegisterQuery(qr heirloom.QueryRouter) {
	NewHoldingBucket().Register("holdings", qr)
	NewAssetBucket().Register("assets", qr)
	NewOperatorBucket().Register("operators", qr)
}

// TransferHandler moves assets between holders.
type TransferHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ heirloom.Handler = TransferHandler{}

func NewTransferHandler(auth x.Authenticator, ctrl *Controller) TransferHandler {
	return TransferHandler{auth: auth, ctrl: ctrl}
}

func (h TransferHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{}, nil
}

func (h TransferHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	msg, operator, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(ctx, db, operator, msg.Source, msg.Destination, msg.AssetID, msg.Amount); err != nil {
		return nil, err
	}
	res := &heirloom.DeliverResult{}
	res.Emit(TransferEvent{
		Operator: operator,
		From:     msg.Source,
		To:       msg.Destination,
		AssetID:  msg.AssetID,
		Amount:   msg.Amount,
	})
	return res, nil
}

// validate returns the message and the signer acting as the operator of the
// transfer.
func (h TransferHandler) validate(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*TransferMsg, heirloom.Address, error) {
	var msg TransferMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if h.auth.HasAddress(ctx, msg.Source) {
		return &msg, msg.Source, nil
	}
	for _, signer := range x.GetAddresses(ctx, h.auth) {
		ok, err := h.ctrl.IsAuthorized(db, msg.Source, signer)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			return &msg, signer, nil
		}
	}
	return nil, nil, errors.Wrap(errors.ErrUnauthorized, "source signature or operator authorization required")
}

// AuthorizeHandler grants and revokes operator authorizations.
type AuthorizeHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ heirloom.Handler = AuthorizeHandler{}

func NewAuthorizeHandler(auth x.Authenticator, ctrl *Controller) AuthorizeHandler {
	return AuthorizeHandler{auth: auth, ctrl: ctrl}
}

func (h AuthorizeHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{}, nil
}

func (h AuthorizeHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Authorize(db, owner, msg.Operator, msg.Grant); err != nil {
		return nil, err
	}
	res := &heirloom.DeliverResult{}
	res.Emit(AuthorizationEvent{
		Owner:    owner,
		Operator: msg.Operator,
		Granted:  msg.Grant,
	})
	return res, nil
}

func (h AuthorizeHandler) validate(ctx heirloom.Context, tx heirloom.Tx) (*AuthorizeMsg, heirloom.Address, error) {
	var msg AuthorizeMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := x.AnySigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	if owner.Equals(msg.Operator) {
		return nil, nil, errors.Wrap(errors.ErrInput, "owner cannot be its own operator")
	}
	return &msg, owner, nil
}
