package will

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/codec"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/x/registry"
)

func init() {
	codec.RegisterMsg(&CreateMsg{}, "heirloom/will/create")
	codec.RegisterMsg(&ApproveDeathMsg{}, "heirloom/will/approve_death")
	codec.RegisterMsg(&ExecuteMsg{}, "heirloom/will/execute")
	codec.RegisterMsg(&ClaimMsg{}, "heirloom/will/claim")
	codec.RegisterMsg(&ProveLivenessMsg{}, "heirloom/will/prove_liveness")
	codec.RegisterMsg(&ExecuteBatchMsg{}, "heirloom/will/execute_batch")
}

const (
	pathCreateMsg        = "will/create"
	pathApproveDeathMsg  = "will/approve_death"
	pathExecuteMsg       = "will/execute"
	pathClaimMsg         = "will/claim"
	pathProveLivenessMsg = "will/prove_liveness"
	pathExecuteBatchMsg  = "will/execute_batch"
)

// CreateMsg creates a will of the signer.
type CreateMsg struct {
	Metadata          *heirloom.Metadata `json:"metadata"`
	Heir              heirloom.Address   `json:"heir"`
	HeirBirthTime     heirloom.UnixTime  `json:"heir_birth_time"`
	MinimumHeirAge    uint32             `json:"minimum_heir_age"`
	VestingDuration   int64              `json:"vesting_duration"`
	AssetID           string             `json:"asset_id"`
	Amount            uint64             `json:"amount"`
	Trustees          []Trustee          `json:"trustees"`
	RequiredApprovals uint32             `json:"required_approvals"`
}

var _ heirloom.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string { return pathCreateMsg }

func (m *CreateMsg) Marshal() ([]byte, error)  { return codec.Marshal(m) }
func (m *CreateMsg) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, m) }

// Validate checks the message alone. Whether the heir differs from the owner
// depends on the signer and is checked by the handler.
func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Heir", m.Heir.Validate())
	errs = errors.AppendField(errs, "AssetID", registry.ValidateAssetID(m.AssetID))
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	if m.MinimumHeirAge > MaxHeirAge {
		errs = errors.AppendField(errs, "MinimumHeirAge", errors.Wrapf(errors.ErrInput, "more than %d", MaxHeirAge))
	}
	if m.VestingDuration < 0 {
		errs = errors.AppendField(errs, "VestingDuration", errors.Wrap(errors.ErrInput, "negative"))
	}
	errs = errors.Append(errs, validateTrustees(m.Trustees, m.RequiredApprovals))
	return errs
}

// ApproveDeathMsg is a trustee vote that the owner of the will is dead.
type ApproveDeathMsg struct {
	Metadata *heirloom.Metadata `json:"metadata"`
	Owner    heirloom.Address   `json:"owner"`
	WillID   uint64             `json:"will_id"`
}

var _ heirloom.Msg = (*ApproveDeathMsg)(nil)

func (ApproveDeathMsg) Path() string { return pathApproveDeathMsg }

func (m *ApproveDeathMsg) Marshal() ([]byte, error)  { return codec.Marshal(m) }
func (m *ApproveDeathMsg) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, m) }

func (m *ApproveDeathMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	return errs
}

// ExecuteMsg executes a will. Anyone can send it.
type ExecuteMsg struct {
	Metadata *heirloom.Metadata `json:"metadata"`
	Owner    heirloom.Address   `json:"owner"`
	WillID   uint64             `json:"will_id"`
}

var _ heirloom.Msg = (*ExecuteMsg)(nil)

func (ExecuteMsg) Path() string { return pathExecuteMsg }

func (m *ExecuteMsg) Marshal() ([]byte, error)  { return codec.Marshal(m) }
func (m *ExecuteMsg) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, m) }

func (m *ExecuteMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	return errs
}

// ClaimMsg releases an escrowed share to the heir. It must be signed by the
// heir.
type ClaimMsg struct {
	Metadata *heirloom.Metadata `json:"metadata"`
	Owner    heirloom.Address   `json:"owner"`
	WillID   uint64             `json:"will_id"`
}

var _ heirloom.Msg = (*ClaimMsg)(nil)

func (ClaimMsg) Path() string { return pathClaimMsg }

func (m *ClaimMsg) Marshal() ([]byte, error)  { return codec.Marshal(m) }
func (m *ClaimMsg) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, m) }

func (m *ClaimMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	return errs
}

// ProveLivenessMsg refreshes the liveness proof of all pending wills of
// the signer.
type ProveLivenessMsg struct {
	Metadata *heirloom.Metadata `json:"metadata"`
}

var _ heirloom.Msg = (*ProveLivenessMsg)(nil)

func (ProveLivenessMsg) Path() string { return pathProveLivenessMsg }

func (m *ProveLivenessMsg) Marshal() ([]byte, error)  { return codec.Marshal(m) }
func (m *ProveLivenessMsg) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, m) }

func (m *ProveLivenessMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

// ExecuteBatchMsg executes every pending will of the owner. A will that
// cannot be executed does not stop the others.
type ExecuteBatchMsg struct {
	Metadata *heirloom.Metadata `json:"metadata"`
	Owner    heirloom.Address   `json:"owner"`
}

var _ heirloom.Msg = (*ExecuteBatchMsg)(nil)

func (ExecuteBatchMsg) Path() string { return pathExecuteBatchMsg }

func (m *ExecuteBatchMsg) Marshal() ([]byte, error)  { return codec.Marshal(m) }
func (m *ExecuteBatchMsg) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, m) }

func (m *ExecuteBatchMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	return errs
}
