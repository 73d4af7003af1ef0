package consensus

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/codec"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/x/registry"
)

func init() {
	codec.RegisterMsg(&ProposeMsg{}, "heirloom/consensus/propose")
	codec.RegisterMsg(&ApproveMsg{}, "heirloom/consensus/approve")
	codec.RegisterMsg(&ExecuteMsg{}, "heirloom/consensus/execute")
}

const (
	pathProposeMsg = "consensus/propose"
	pathApproveMsg = "consensus/approve"
	pathExecuteMsg = "consensus/execute"
)

// ProposeMsg proposes to move the whole asset to the recipient. It must be
// signed by a holder of the asset.
type ProposeMsg struct {
	Metadata  *heirloom.Metadata `json:"metadata"`
	AssetID   string             `json:"asset_id"`
	Recipient heirloom.Address   `json:"recipient"`
}

var _ heirloom.Msg = (*ProposeMsg)(nil)

func (ProposeMsg) Path() string { return pathProposeMsg }

func (m *ProposeMsg) Marshal() ([]byte, error)  { return codec.Marshal(m) }
func (m *ProposeMsg) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, m) }

func (m *ProposeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "AssetID", registry.ValidateAssetID(m.AssetID))
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	return errs
}

// ApproveMsg approves the open proposal of an asset on behalf of the
// signing holder.
type ApproveMsg struct {
	Metadata *heirloom.Metadata `json:"metadata"`
	AssetID  string             `json:"asset_id"`
}

var _ heirloom.Msg = (*ApproveMsg)(nil)

func (ApproveMsg) Path() string { return pathApproveMsg }

func (m *ApproveMsg) Marshal() ([]byte, error)  { return codec.Marshal(m) }
func (m *ApproveMsg) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, m) }

func (m *ApproveMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "AssetID", registry.ValidateAssetID(m.AssetID))
	return errs
}

// ExecuteMsg executes a unanimously approved proposal. Anyone can send it.
type ExecuteMsg struct {
	Metadata *heirloom.Metadata `json:"metadata"`
	AssetID  string             `json:"asset_id"`
}

var _ heirloom.Msg = (*ExecuteMsg)(nil)

func (ExecuteMsg) Path() string { return pathExecuteMsg }

func (m *ExecuteMsg) Marshal() ([]byte, error)  { return codec.Marshal(m) }
func (m *ExecuteMsg) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, m) }

func (m *ExecuteMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "AssetID", registry.ValidateAssetID(m.AssetID))
	return errs
}
