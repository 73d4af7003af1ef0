package liveness

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/codec"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/orm"
)

// Heartbeat is the time an owner was last seen.
type Heartbeat struct {
	Metadata *heirloom.Metadata `json:"metadata"`
	Owner    heirloom.Address   `json:"owner"`
	LastSeen heirloom.UnixTime  `json:"last_seen"`
}

var _ orm.Model = (*Heartbeat)(nil)

func (h *Heartbeat) Marshal() ([]byte, error)  { return codec.Marshal(h) }
func (h *Heartbeat) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, h) }

func (h *Heartbeat) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", h.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", h.Owner.Validate())
	if h.LastSeen.IsZero() {
		errs = errors.AppendField(errs, "LastSeen", errors.ErrEmpty)
	}
	return errs
}

// NewHeartbeatBucket returns a bucket of heartbeats keyed by owner address.
func NewHeartbeatBucket() orm.ModelBucket {
	return orm.NewModelBucket("heartbeat", &Heartbeat{})
}
