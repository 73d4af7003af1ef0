package consensus

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/codec"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/orm"
	"github.com/heirloom-labs/heirloom/x/registry"
)

// EngineCondition is the identity of the consensus engine. Every holder
// authorizes it in the registry to let the engine move the whole asset.
var EngineCondition = heirloom.NewCondition("consensus", "engine", []byte("unanimity"))

// Proposal is a request to move a whole asset to the recipient.
type Proposal struct {
	Metadata  *heirloom.Metadata `json:"metadata"`
	AssetID   string             `json:"asset_id"`
	Proposer  heirloom.Address   `json:"proposer"`
	Recipient heirloom.Address   `json:"recipient"`
	Executed  bool               `json:"executed"`
	Approvals []Approval         `json:"approvals"`
	// ApprovalCount is the number of approvals recorded, including those
	// of identities that no longer hold the asset.
	ApprovalCount uint32            `json:"approval_count"`
	CreatedAt     heirloom.UnixTime `json:"created_at"`
}

// Approval is the consent of a holder.
type Approval struct {
	Holder     heirloom.Address  `json:"holder"`
	ApprovedAt heirloom.UnixTime `json:"approved_at"`
}

var _ orm.Model = (*Proposal)(nil)

func (p *Proposal) Marshal() ([]byte, error)  { return codec.Marshal(p) }
func (p *Proposal) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, p) }

func (p *Proposal) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", p.Metadata.Validate())
	errs = errors.AppendField(errs, "AssetID", registry.ValidateAssetID(p.AssetID))
	errs = errors.AppendField(errs, "Proposer", p.Proposer.Validate())
	errs = errors.AppendField(errs, "Recipient", p.Recipient.Validate())
	if int(p.ApprovalCount) != len(p.Approvals) {
		errs = errors.AppendField(errs, "ApprovalCount",
			errors.Wrapf(errors.ErrState, "%d approvals recorded", len(p.Approvals)))
	}
	if p.CreatedAt.IsZero() {
		errs = errors.AppendField(errs, "CreatedAt", errors.ErrEmpty)
	}
	return errs
}

// approved returns the set of holders that approved.
func (p *Proposal) approved() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Approvals))
	for _, a := range p.Approvals {
		set[string(a.Holder)] = struct{}{}
	}
	return set
}

// HasApproved returns true if given holder approved the proposal.
func (p *Proposal) HasApproved(holder heirloom.Address) bool {
	_, ok := p.approved()[string(holder)]
	return ok
}

// Missing returns the holders that did not approve yet, in the order of
// the given list.
func (p *Proposal) Missing(holders []heirloom.Address) []heirloom.Address {
	approved := p.approved()
	var missing []heirloom.Address
	for _, h := range holders {
		if _, ok := approved[string(h)]; !ok {
			missing = append(missing, h)
		}
	}
	return missing
}

func proposalByRecipient(m orm.Model) ([][]byte, error) {
	p, ok := m.(*Proposal)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return [][]byte{p.Recipient}, nil
}

// NewBucket returns a bucket of proposals keyed by asset ID and indexed by
// recipient.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("proposal", &Proposal{},
		orm.WithIndex("recipient", proposalByRecipient),
	)
}
