package will

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r heirloom.Registry, auth x.Authenticator, engine *Engine) {
	r.Handle(pathCreateMsg, CreateHandler{auth: auth, engine: engine})
	r.Handle(pathApproveDeathMsg, ApproveDeathHandler{auth: auth, engine: engine})
	r.Handle(pathExecuteMsg, ExecuteHandler{engine: engine})
	r.Handle(pathClaimMsg, ClaimHandler{auth: auth, engine: engine})
	r.Handle(pathProveLivenessMsg, ProveLivenessHandler{auth: auth, engine: engine})
	r.Handle(pathExecuteBatchMsg, ExecuteBatchHandler{engine: engine})
}

// RegisterQuery will register the will bucket as "/wills", with the
// "/wills/heir" and "/wills/trustee" indexes.
func RegisterQuery(qr heirloom.QueryRouter) {
	NewBucket().Register("wills", qr)
}

// CreateHandler writes a will of the signer.
type CreateHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ heirloom.Handler = CreateHandler{}

func (h CreateHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{}, nil
}

func (h CreateHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	willID, event, err := h.engine.Create(ctx, db, owner, msg)
	if err != nil {
		return nil, err
	}
	res := &heirloom.DeliverResult{Data: WillKey(owner, willID)}
	res.Emit(event)
	return res, nil
}

func (h CreateHandler) validate(ctx heirloom.Context, tx heirloom.Tx) (*CreateMsg, heirloom.Address, error) {
	var msg CreateMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := x.AnySigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	if err := validateHeir(owner, msg.Heir); err != nil {
		return nil, nil, errors.Field("Heir", err, "")
	}
	return &msg, owner, nil
}

// ApproveDeathHandler records a death approval of the signing trustee.
type ApproveDeathHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ heirloom.Handler = ApproveDeathHandler{}

func (h ApproveDeathHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{}, nil
}

func (h ApproveDeathHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	msg, trustee, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	event, err := h.engine.ApproveDeath(ctx, db, trustee, msg.Owner, msg.WillID)
	if err != nil {
		return nil, err
	}
	res := &heirloom.DeliverResult{}
	res.Emit(event)
	return res, nil
}

// validate returns the message and the signer that is a trustee of the
// will. If no trustee signed, any signer is returned and the engine rejects
// it once the will state was checked.
func (h ApproveDeathHandler) validate(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*ApproveDeathMsg, heirloom.Address, error) {
	var msg ApproveDeathMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	w, err := h.engine.Get(db, msg.Owner, msg.WillID)
	if err != nil {
		return nil, nil, err
	}
	for _, t := range w.Trustees {
		if h.auth.HasAddress(ctx, t.Address) {
			return &msg, t.Address, nil
		}
	}
	signer, err := x.AnySigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, signer, nil
}

// ExecuteHandler executes a will. No signature is required.
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
	events, err := h.engine.Execute(ctx, db, msg.Owner, msg.WillID)
	if err != nil {
		return nil, err
	}
	res := &heirloom.DeliverResult{}
	res.Emit(events...)
	return res, nil
}

// ClaimHandler releases an escrowed share to the signing heir.
type ClaimHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ heirloom.Handler = ClaimHandler{}

func (h ClaimHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{}, nil
}

func (h ClaimHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	msg, heir, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	events, err := h.engine.Claim(ctx, db, heir, msg.Owner, msg.WillID)
	if err != nil {
		return nil, err
	}
	res := &heirloom.DeliverResult{}
	res.Emit(events...)
	return res, nil
}

// validate returns the message and the heir of the will, as long as the
// heir signed the transaction. State errors take precedence over a missing
// signature.
func (h ClaimHandler) validate(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*ClaimMsg, heirloom.Address, error) {
	var msg ClaimMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	w, err := h.engine.Get(db, msg.Owner, msg.WillID)
	if err != nil {
		return nil, nil, err
	}
	if !w.Executed || !w.Escrowed || !w.InEscrow {
		return nil, nil, errors.Wrapf(errors.ErrState, "will is %s", w.State())
	}
	if !h.auth.HasAddress(ctx, w.Heir) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "heir signature required")
	}
	return &msg, w.Heir, nil
}

// ProveLivenessHandler refreshes the liveness proof of the signer.
type ProveLivenessHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ heirloom.Handler = ProveLivenessHandler{}

func (h ProveLivenessHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{}, nil
}

func (h ProveLivenessHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	events, err := h.engine.ProveLiveness(ctx, db, owner)
	if err != nil {
		return nil, err
	}
	res := &heirloom.DeliverResult{}
	res.Emit(events...)
	return res, nil
}

func (h ProveLivenessHandler) validate(ctx heirloom.Context, tx heirloom.Tx) (heirloom.Address, error) {
	var msg ProveLivenessMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return x.AnySigner(ctx, h.auth)
}

// ExecuteBatchHandler executes all pending wills of an owner. No signature
// is required. The result data is the serialized BatchResponse.
type ExecuteBatchHandler struct {
	engine *Engine
}

var _ heirloom.Handler = ExecuteBatchHandler{}

func (h ExecuteBatchHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	var msg ExecuteBatchMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &heirloom.CheckResult{}, nil
}

func (h ExecuteBatchHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	var msg ExecuteBatchMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	resp, events, err := h.engine.ExecuteBatch(ctx, db, msg.Owner)
	if err != nil {
		return nil, err
	}
	data, err := resp.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal batch response")
	}
	res := &heirloom.DeliverResult{Data: data}
	res.Emit(events...)
	return res, nil
}
