package liveness

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/orm"
	"github.com/heirloom-labs/heirloom/x/registry"
)

// Tracker evaluates the liveness of owners against the configured
// inactivity threshold.
type Tracker struct {
	heartbeats orm.ModelBucket
}

// NewTracker returns a tracker using the store held configuration.
func NewTracker() *Tracker {
	return &Tracker{heartbeats: NewHeartbeatBucket()}
}

// Threshold returns the current inactivity threshold in seconds.
func (t *Tracker) Threshold(db heirloom.ReadOnlyKVStore) (int64, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return 0, err
	}
	return conf.InactivityThreshold, nil
}

// IsPresumedDeceased returns true if at least the inactivity threshold
// elapsed between the last proof of life and the current block time.
func (t *Tracker) IsPresumedDeceased(ctx heirloom.Context, db heirloom.ReadOnlyKVStore, lastProof heirloom.UnixTime) (bool, error) {
	threshold, err := t.Threshold(db)
	if err != nil {
		return false, err
	}
	now, err := heirloom.BlockNow(ctx)
	if err != nil {
		return false, err
	}
	return Elapsed(now, lastProof, threshold), nil
}

// Elapsed returns true if now is at least threshold seconds after
// lastProof.
func Elapsed(now, lastProof heirloom.UnixTime, threshold int64) bool {
	return now.Since(lastProof) >= threshold
}

// Heartbeat records that the owner was seen at the current block time and
// returns that time.
func (t *Tracker) Heartbeat(ctx heirloom.Context, db heirloom.KVStore, owner heirloom.Address) (heirloom.UnixTime, error) {
	now, err := heirloom.BlockNow(ctx)
	if err != nil {
		return 0, err
	}
	hb := Heartbeat{
		Metadata: &heirloom.Metadata{Schema: 1},
		Owner:    owner,
		LastSeen: now,
	}
	if err := t.heartbeats.Put(db, owner, &hb); err != nil {
		return 0, errors.Wrap(err, "save heartbeat")
	}
	return now, nil
}

// LastSeen returns the time of the last heartbeat of the owner.
// ErrNotFound is returned if the owner was never seen.
func (t *Tracker) LastSeen(db heirloom.ReadOnlyKVStore, owner heirloom.Address) (heirloom.UnixTime, error) {
	var hb Heartbeat
	if err := t.heartbeats.One(db, owner, &hb); err != nil {
		return 0, err
	}
	return hb.LastSeen, nil
}

// LatestProof returns the later of the given proof of life and the last
// heartbeat of the owner.
func (t *Tracker) LatestProof(db heirloom.ReadOnlyKVStore, owner heirloom.Address, proof heirloom.UnixTime) (heirloom.UnixTime, error) {
	switch seen, err := t.LastSeen(db, owner); {
	case errors.ErrNotFound.Is(err):
		return proof, nil
	case err != nil:
		return 0, errors.Wrap(err, "heartbeat")
	case seen > proof:
		return seen, nil
	}
	return proof, nil
}

// ActivityHook returns a registry hook that records a heartbeat of every
// holder moving its own asset. Transfers executed by an operator on behalf
// of a holder are not a sign of life of that holder.
func (t *Tracker) ActivityHook() registry.TransferHook {
	return registry.TransferHookFunc(func(ctx heirloom.Context, db heirloom.KVStore, tr registry.Transfer) error {
		if !tr.Operator.Equals(tr.From) {
			return nil
		}
		_, err := t.Heartbeat(ctx, db, tr.From)
		return err
	})
}
