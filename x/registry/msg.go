package registry

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/codec"
	"github.com/heirloom-labs/heirloom/errors"
)

func init() {
	codec.RegisterMsg(&TransferMsg{}, "heirloom/registry/transfer")
	codec.RegisterMsg(&AuthorizeMsg{}, "heirloom/registry/authorize")
}

const (
	pathTransferMsg  = "registry/transfer"
	pathAuthorizeMsg = "registry/authorize"
)

// TransferMsg moves an amount of an asset held by the signer, or by an owner
// that authorized the signer, to the destination.
type TransferMsg struct {
	Metadata    *heirloom.Metadata `json:"metadata"`
	Source      heirloom.Address   `json:"source"`
	Destination heirloom.Address   `json:"destination"`
	AssetID     string             `json:"asset_id"`
	Amount      uint64             `json:"amount"`
}

var _ heirloom.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string { return pathTransferMsg }

func (m *TransferMsg) Marshal() ([]byte, error)  { return codec.Marshal(m) }
func (m *TransferMsg) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, m) }

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	errs = errors.AppendField(errs, "AssetID", ValidateAssetID(m.AssetID))
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

// AuthorizeMsg grants or revokes a blanket authorization of an operator to
// move any asset held by the signer.
type AuthorizeMsg struct {
	Metadata *heirloom.Metadata `json:"metadata"`
	Operator heirloom.Address   `json:"operator"`
	Grant    bool               `json:"grant"`
}

var _ heirloom.Msg = (*AuthorizeMsg)(nil)

func (AuthorizeMsg) Path() string { return pathAuthorizeMsg }

func (m *AuthorizeMsg) Marshal() ([]byte, error)  { return codec.Marshal(m) }
func (m *AuthorizeMsg) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, m) }

func (m *AuthorizeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Operator", m.Operator.Validate())
	return errs
}
