package consensus

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/orm"
	"github.com/heirloom-labs/heirloom/x/registry"
	"github.com/heirloom-labs/heirloom/x/utils"
)

// Engine executes whole-asset proposals.
type Engine struct {
	registry registry.Registry
	bucket   orm.ModelBucket

	proposeGuard utils.ReentrancyGuard
	approveGuard utils.ReentrancyGuard
	executeGuard utils.ReentrancyGuard
}

// NewEngine returns a consensus engine moving assets of the given registry.
func NewEngine(reg registry.Registry) *Engine {
	return &Engine{
		registry:     reg,
		bucket:       NewBucket(),
		proposeGuard: utils.NewReentrancyGuard("consensus/propose"),
		approveGuard: utils.NewReentrancyGuard("consensus/approve"),
		executeGuard: utils.NewReentrancyGuard("consensus/execute"),
	}
}

// Get returns the latest proposal of given asset.
func (e *Engine) Get(db heirloom.ReadOnlyKVStore, assetID string) (*Proposal, error) {
	var p Proposal
	if err := e.bucket.One(db, []byte(assetID), &p); err != nil {
		return nil, errors.Wrapf(err, "proposal of %q", assetID)
	}
	return &p, nil
}

// Propose opens a proposal to move the whole asset to the recipient. The
// proposer must hold the asset and no other proposal can be open.
func (e *Engine) Propose(ctx heirloom.Context, db heirloom.KVStore, proposer heirloom.Address, assetID string, recipient heirloom.Address) (ProposedEvent, error) {
	var event ProposedEvent
	err := e.proposeGuard.Run(db, func() error {
		if err := recipient.Validate(); err != nil {
			return errors.Field("Recipient", err, "")
		}
		if err := e.requireHolder(db, proposer, assetID); err != nil {
			return err
		}
		switch p, err := e.Get(db, assetID); {
		case err == nil:
			if !p.Executed {
				return errors.Wrap(errors.ErrState, "a proposal is already open")
			}
		case !errors.ErrNotFound.Is(err):
			return err
		}
		now, err := heirloom.BlockNow(ctx)
		if err != nil {
			return err
		}
		p := Proposal{
			Metadata:  &heirloom.Metadata{Schema: 1},
			AssetID:   assetID,
			Proposer:  proposer,
			Recipient: recipient,
			CreatedAt: now,
		}
		if err := e.bucket.Put(db, []byte(assetID), &p); err != nil {
			return errors.Wrap(err, "save proposal")
		}
		heirloom.GetLogger(ctx).Debug("whole asset transfer proposed",
			"asset", assetID, "proposer", proposer, "recipient", recipient)
		event = ProposedEvent{AssetID: assetID, Proposer: proposer, Recipient: recipient}
		return nil
	})
	return event, err
}

func (e *Engine) requireHolder(db heirloom.ReadOnlyKVStore, holder heirloom.Address, assetID string) error {
	balance, err := e.registry.Balance(db, holder, assetID)
	if err != nil {
		return errors.Wrap(err, "balance")
	}
	if balance == 0 {
		return errors.Wrapf(errors.ErrUnauthorized, "%s does not hold %q", holder, assetID)
	}
	return nil
}

// Approve records the consent of a holder. If with this approval every
// current holder approved, the proposal executes at once. A failed
// execution leaves no trace in the store and does not revoke the approval:
// it is reported with an ExecutionFailedEvent and the proposal stays open
// for a later Execute call.
//
// The returned events are the approval progress, followed by the execution
// events or the execution failure.
func (e *Engine) Approve(ctx heirloom.Context, db heirloom.KVStore, holder heirloom.Address, assetID string) ([]heirloom.Event, error) {
	var events []heirloom.Event
	err := e.approveGuard.Run(db, func() error {
		if err := e.requireHolder(db, holder, assetID); err != nil {
			return err
		}
		p, err := e.open(db, assetID)
		if err != nil {
			return err
		}
		if p.HasApproved(holder) {
			return errors.Wrap(errors.ErrState, "already approved")
		}
		now, err := heirloom.BlockNow(ctx)
		if err != nil {
			return err
		}
		p.Approvals = append(p.Approvals, Approval{Holder: holder, ApprovedAt: now})
		p.ApprovalCount++
		if err := e.bucket.Put(db, []byte(assetID), p); err != nil {
			return errors.Wrap(err, "save proposal")
		}

		holders, err := e.liveHolders(db, assetID)
		if err != nil {
			return err
		}
		events = append(events, ApprovalEvent{
			AssetID: assetID,
			Holder:  holder,
			Current: p.ApprovalCount,
			Total:   len(holders),
		})
		heirloom.GetLogger(ctx).Debug("whole asset transfer approved",
			"asset", assetID, "holder", holder, "approvals", p.ApprovalCount, "holders", len(holders))

		if len(p.Missing(holders)) != 0 {
			return nil
		}
		err = utils.InSavepoint(db, func(kv heirloom.KVStore) error {
			executed, err := e.Execute(ctx, kv, assetID)
			if err != nil {
				return err
			}
			events = append(events, executed...)
			return nil
		})
		if err != nil {
			code, reason := errors.ABCIInfo(err, false)
			heirloom.GetLogger(ctx).Info("whole asset transfer not executed",
				"asset", assetID, "err", err)
			events = append(events, ExecutionFailedEvent{AssetID: assetID, Code: code, Error: reason})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// open returns the proposal of the asset, if it is not executed.
func (e *Engine) open(db heirloom.ReadOnlyKVStore, assetID string) (*Proposal, error) {
	p, err := e.Get(db, assetID)
	if err != nil {
		return nil, err
	}
	if p.Executed {
		return nil, errors.Wrap(errors.ErrState, "proposal already executed")
	}
	return p, nil
}

// liveHolders returns the identities holding a positive balance of the
// asset, in the order of the registry holder list.
func (e *Engine) liveHolders(db heirloom.ReadOnlyKVStore, assetID string) ([]heirloom.Address, error) {
	all, err := e.registry.Holders(db, assetID)
	if err != nil {
		return nil, errors.Wrap(err, "holders")
	}
	live := make([]heirloom.Address, 0, len(all))
	for _, h := range all {
		balance, err := e.registry.Balance(db, h, assetID)
		if err != nil {
			return nil, errors.Wrap(err, "balance")
		}
		if balance > 0 {
			live = append(live, h)
		}
	}
	return live, nil
}

// Execute moves the balance of every current holder to the recipient. It
// fails unless every current holder approved and authorized the engine.
// No balance moves unless all of them can.
func (e *Engine) Execute(ctx heirloom.Context, db heirloom.KVStore, assetID string) ([]heirloom.Event, error) {
	var events []heirloom.Event
	err := e.executeGuard.Run(db, func() error {
		p, err := e.open(db, assetID)
		if err != nil {
			return err
		}
		holders, err := e.liveHolders(db, assetID)
		if err != nil {
			return err
		}
		if len(holders) == 0 {
			return errors.Wrapf(errors.ErrPrecondition, "%q has no holders", assetID)
		}
		if missing := p.Missing(holders); len(missing) != 0 {
			return errors.Wrapf(errors.ErrState, "%d of %d holders did not approve", len(missing), len(holders))
		}

		engine := EngineCondition.Address()
		balances := make([]uint64, len(holders))
		for i, h := range holders {
			switch ok, err := e.registry.IsAuthorized(db, h, engine); {
			case err != nil:
				return errors.Wrap(err, "engine authorization")
			case !ok:
				return errors.Wrapf(errors.ErrPrecondition, "consensus engine not authorized by %s", h)
			}
			if balances[i], err = e.registry.Balance(db, h, assetID); err != nil {
				return errors.Wrap(err, "balance")
			}
		}

		var total uint64
		for i, h := range holders {
			if err := e.registry.Transfer(ctx, db, engine, h, p.Recipient, assetID, balances[i]); err != nil {
				return errors.Wrapf(err, "transfer of %s", h)
			}
			total += balances[i]
		}

		p.Executed = true
		if err := e.bucket.Put(db, []byte(assetID), p); err != nil {
			return errors.Wrap(err, "save proposal")
		}
		heirloom.GetLogger(ctx).Info("whole asset transferred",
			"asset", assetID, "recipient", p.Recipient, "holders", len(holders), "amount", total)
		events = append(events, ExecutedEvent{
			AssetID:   assetID,
			Recipient: p.Recipient,
			Holders:   len(holders),
			Amount:    total,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
