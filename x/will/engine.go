package will

import (
	"encoding/binary"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/orm"
	"github.com/heirloom-labs/heirloom/x/escrow"
	"github.com/heirloom-labs/heirloom/x/liveness"
	"github.com/heirloom-labs/heirloom/x/registry"
	"github.com/heirloom-labs/heirloom/x/utils"
)

// Engine executes wills. Every mutating method is guarded against being
// entered again while running, for example from a registry transfer hook.
type Engine struct {
	registry registry.Registry
	tracker  *liveness.Tracker
	vault    *escrow.Vault
	bucket   orm.ModelBucket

	createGuard   utils.ReentrancyGuard
	approveGuard  utils.ReentrancyGuard
	executeGuard  utils.ReentrancyGuard
	claimGuard    utils.ReentrancyGuard
	livenessGuard utils.ReentrancyGuard
	batchGuard    utils.ReentrancyGuard
}

// NewEngine returns a will engine moving assets of the given registry.
func NewEngine(reg registry.Registry, tracker *liveness.Tracker, vault *escrow.Vault) *Engine {
	return &Engine{
		registry:      reg,
		tracker:       tracker,
		vault:         vault,
		bucket:        NewBucket(),
		createGuard:   utils.NewReentrancyGuard("will/create"),
		approveGuard:  utils.NewReentrancyGuard("will/approve_death"),
		executeGuard:  utils.NewReentrancyGuard("will/execute"),
		claimGuard:    utils.NewReentrancyGuard("will/claim"),
		livenessGuard: utils.NewReentrancyGuard("will/prove_liveness"),
		batchGuard:    utils.NewReentrancyGuard("will/execute_batch"),
	}
}

// Get returns the will of the owner at given position.
func (e *Engine) Get(db heirloom.ReadOnlyKVStore, owner heirloom.Address, willID uint64) (*Will, error) {
	var w Will
	if err := e.bucket.One(db, WillKey(owner, willID), &w); err != nil {
		return nil, errors.Wrapf(err, "will %d of %s", willID, owner)
	}
	return &w, nil
}

// Create writes a new will of the owner and returns its position. The owner
// must hold at least the willed amount at creation. The balance is not
// reserved and is checked again on execution.
func (e *Engine) Create(ctx heirloom.Context, db heirloom.KVStore, owner heirloom.Address, msg *CreateMsg) (uint64, CreatedEvent, error) {
	var (
		willID uint64
		event  CreatedEvent
	)
	err := e.createGuard.Run(db, func() error {
		if err := validateHeir(owner, msg.Heir); err != nil {
			return errors.Field("Heir", err, "")
		}
		balance, err := e.registry.Balance(db, owner, msg.AssetID)
		if err != nil {
			return errors.Wrap(err, "balance")
		}
		if balance < msg.Amount {
			return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, willed %d", balance, msg.Amount)
		}
		now, err := heirloom.BlockNow(ctx)
		if err != nil {
			return err
		}

		w := Will{
			Metadata:          &heirloom.Metadata{Schema: 1},
			Owner:             owner,
			Heir:              msg.Heir,
			AssetID:           msg.AssetID,
			ShareAmount:       msg.Amount,
			HeirBirthTime:     msg.HeirBirthTime,
			MinimumHeirAge:    msg.MinimumHeirAge,
			VestingDuration:   msg.VestingDuration,
			LastLivenessProof: now,
			Active:            true,
			Trustees:          msg.Trustees,
			RequiredApprovals: msg.RequiredApprovals,
			CreatedAt:         now,
		}
		willID, err = ownerSequence(owner).NextInt(db)
		if err != nil {
			return errors.Wrap(err, "will sequence")
		}
		if err := e.bucket.Put(db, WillKey(owner, willID), &w); err != nil {
			return errors.Wrap(err, "save will")
		}
		heirloom.GetLogger(ctx).Debug("will created",
			"owner", owner, "will", willID, "asset", msg.AssetID, "amount", msg.Amount)
		event = CreatedEvent{
			Owner:    owner,
			WillID:   willID,
			Heir:     msg.Heir,
			AssetID:  msg.AssetID,
			Amount:   msg.Amount,
			Trustees: len(msg.Trustees),
			Required: msg.RequiredApprovals,
		}
		return nil
	})
	return willID, event, err
}

// ApproveDeath records the vote of a trustee that the owner is dead. A vote
// is accepted only once the owner is presumed deceased.
func (e *Engine) ApproveDeath(ctx heirloom.Context, db heirloom.KVStore, trustee, owner heirloom.Address, willID uint64) (DeathApprovalEvent, error) {
	var event DeathApprovalEvent
	err := e.approveGuard.Run(db, func() error {
		w, err := e.Get(db, owner, willID)
		if err != nil {
			return err
		}
		if !w.Active || w.Executed {
			return errors.Wrap(errors.ErrState, "will is not active")
		}
		if !w.IsTrustee(trustee) {
			return errors.Wrap(errors.ErrUnauthorized, "not a trustee")
		}
		if err := e.requireDeceased(ctx, db, w); err != nil {
			return err
		}
		if w.HasApproved(trustee) {
			return errors.Wrap(errors.ErrState, "already approved")
		}
		now, err := heirloom.BlockNow(ctx)
		if err != nil {
			return err
		}
		w.Approvals = append(w.Approvals, Approval{Trustee: trustee, ApprovedAt: now})
		if err := e.bucket.Put(db, WillKey(owner, willID), w); err != nil {
			return errors.Wrap(err, "save will")
		}
		event = DeathApprovalEvent{
			Owner:    owner,
			WillID:   willID,
			Trustee:  trustee,
			Current:  w.ApprovalCount(),
			Required: w.RequiredApprovals,
		}
		heirloom.GetLogger(ctx).Debug("death approved",
			"owner", owner, "will", willID, "current", event.Current, "required", event.Required)
		return nil
	})
	return event, err
}

// requireDeceased fails unless the owner was not seen, neither through the
// will nor through a heartbeat, for the inactivity threshold.
func (e *Engine) requireDeceased(ctx heirloom.Context, db heirloom.ReadOnlyKVStore, w *Will) error {
	proof, err := e.tracker.LatestProof(db, w.Owner, w.LastLivenessProof)
	if err != nil {
		return errors.Wrap(err, "liveness")
	}
	deceased, err := e.tracker.IsPresumedDeceased(ctx, db, proof)
	if err != nil {
		return errors.Wrap(err, "liveness")
	}
	if !deceased {
		return errors.Wrap(errors.ErrPrecondition, "owner not presumed deceased")
	}
	return nil
}

// Execute moves the willed share to the heir, or to the escrow vault if the
// heir is too young or a vesting period was requested. It can be called by
// anyone once the owner is presumed deceased and enough trustees approved.
//
// The returned events are the escrow deposit, if any, followed by the
// execution event.
func (e *Engine) Execute(ctx heirloom.Context, db heirloom.KVStore, owner heirloom.Address, willID uint64) ([]heirloom.Event, error) {
	var events []heirloom.Event
	err := e.executeGuard.Run(db, func() error {
		w, err := e.Get(db, owner, willID)
		if err != nil {
			return err
		}
		if w.Executed || !w.Active {
			return errors.Wrap(errors.ErrState, "will is not active")
		}
		if err := e.requireDeceased(ctx, db, w); err != nil {
			return err
		}
		if n := w.ApprovalCount(); n < int(w.RequiredApprovals) {
			return errors.Wrapf(errors.ErrPrecondition, "%d of %d approvals", n, w.RequiredApprovals)
		}
		engine := EngineCondition.Address()
		switch ok, err := e.registry.IsAuthorized(db, owner, engine); {
		case err != nil:
			return errors.Wrap(err, "engine authorization")
		case !ok:
			return errors.Wrap(errors.ErrPrecondition, "will engine not authorized by the owner")
		}
		now, err := heirloom.BlockNow(ctx)
		if err != nil {
			return err
		}

		key := WillKey(owner, willID)
		if HeirAge(w.HeirBirthTime, now) >= w.MinimumHeirAge && w.VestingDuration == 0 {
			if err := e.registry.Transfer(ctx, db, engine, owner, w.Heir, w.AssetID, w.ShareAmount); err != nil {
				return errors.Wrap(err, "transfer to heir")
			}
		} else {
			unlock, err := now.AddSeconds(w.VestingDuration)
			if err != nil {
				return errors.Wrap(err, "unlock time")
			}
			deposit, err := e.vault.Deposit(ctx, db, key, engine, owner, w.Heir, w.AssetID, w.ShareAmount, unlock)
			if err != nil {
				return err
			}
			events = append(events, deposit)
			w.InEscrow = true
			w.Escrowed = true
			w.UnlockTime = unlock
		}
		w.Executed = true
		w.Active = false
		if err := e.bucket.Put(db, key, w); err != nil {
			return errors.Wrap(err, "save will")
		}
		heirloom.GetLogger(ctx).Info("will executed",
			"owner", owner, "will", willID, "heir", w.Heir, "escrowed", w.Escrowed)
		events = append(events, ExecutedEvent{
			Owner:      owner,
			WillID:     willID,
			Heir:       w.Heir,
			AssetID:    w.AssetID,
			Amount:     w.ShareAmount,
			Escrowed:   w.Escrowed,
			UnlockTime: w.UnlockTime,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Claim releases an escrowed share to the heir once the unlock time is
// reached. Only the heir can claim and a share can be claimed only once.
//
// The returned events are the escrow release followed by the claim event.
func (e *Engine) Claim(ctx heirloom.Context, db heirloom.KVStore, caller, owner heirloom.Address, willID uint64) ([]heirloom.Event, error) {
	var events []heirloom.Event
	err := e.claimGuard.Run(db, func() error {
		w, err := e.Get(db, owner, willID)
		if err != nil {
			return err
		}
		if !w.Executed || !w.Escrowed || !w.InEscrow {
			return errors.Wrapf(errors.ErrState, "will is %s", w.State())
		}
		if !caller.Equals(w.Heir) {
			return errors.Wrap(errors.ErrUnauthorized, "only the heir can claim")
		}
		key := WillKey(owner, willID)
		release, err := e.vault.Release(ctx, db, key)
		if err != nil {
			return err
		}
		w.InEscrow = false
		if err := e.bucket.Put(db, key, w); err != nil {
			return errors.Wrap(err, "save will")
		}
		heirloom.GetLogger(ctx).Info("will claimed",
			"owner", owner, "will", willID, "heir", w.Heir)
		events = append(events, release, ClaimedEvent{
			Owner:   owner,
			WillID:  willID,
			Heir:    w.Heir,
			AssetID: w.AssetID,
			Amount:  w.ShareAmount,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ProveLiveness sets the liveness proof of every pending will of the owner
// to the current block time and records a heartbeat.
func (e *Engine) ProveLiveness(ctx heirloom.Context, db heirloom.KVStore, owner heirloom.Address) ([]heirloom.Event, error) {
	var events []heirloom.Event
	err := e.livenessGuard.Run(db, func() error {
		keys, wills, err := e.pending(db, owner)
		if err != nil {
			return err
		}
		now, err := e.tracker.Heartbeat(ctx, db, owner)
		if err != nil {
			return errors.Wrap(err, "heartbeat")
		}
		for i, w := range wills {
			w.LastLivenessProof = now
			if err := e.bucket.Put(db, keys[i], w); err != nil {
				return errors.Wrap(err, "save will")
			}
		}
		heirloom.GetLogger(ctx).Debug("liveness proved", "owner", owner, "wills", len(wills))
		events = append(events,
			liveness.HeartbeatEvent{Owner: owner, At: now},
			LivenessEvent{Owner: owner, At: now, Wills: len(wills)},
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// pending returns all active, not executed wills of the owner with their
// keys, in creation order. All wills are loaded before the caller modifies
// any of them so that the iterator never observes its own writes.
func (e *Engine) pending(db heirloom.ReadOnlyKVStore, owner heirloom.Address) ([][]byte, []*Will, error) {
	it, err := e.bucket.Scan(db, owner, false)
	if err != nil {
		return nil, nil, errors.Wrap(err, "scan wills")
	}
	defer it.Release()

	var (
		keys  [][]byte
		wills []*Will
	)
	for {
		var w Will
		switch key, err := it.LoadNext(&w); {
		case err == nil:
			// Addresses have a fixed length, but the owner must still be
			// compared so that a prefix never matches a longer address.
			if len(key) != len(owner)+8 || !w.Owner.Equals(owner) {
				continue
			}
			if w.Active && !w.Executed {
				keys = append(keys, key)
				wills = append(wills, &w)
			}
		case errors.ErrIteratorDone.Is(err):
			return keys, wills, nil
		default:
			return nil, nil, err
		}
	}
}

// willPosition returns the position of the will with given key in the
// list of its owner.
func willPosition(key []byte) uint64 {
	return binary.BigEndian.Uint64(key[len(key)-8:])
}
