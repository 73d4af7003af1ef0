package liveness

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/codec"
	"github.com/heirloom-labs/heirloom/errors"
)

func init() {
	codec.RegisterMsg(&UpdateConfigurationMsg{}, "heirloom/liveness/update_configuration")
}

const pathUpdateConfigurationMsg = "liveness/update_configuration"

// UpdateConfigurationMsg changes the liveness configuration. Zero value
// fields of the patch are left unchanged.
type UpdateConfigurationMsg struct {
	Metadata *heirloom.Metadata `json:"metadata"`
	Patch    *Configuration     `json:"patch"`
}

var _ heirloom.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string { return pathUpdateConfigurationMsg }

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error)  { return codec.Marshal(m) }
func (m *UpdateConfigurationMsg) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, m) }

func (m *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Patch == nil {
		return errors.AppendField(errs, "Patch", errors.ErrEmpty)
	}
	if len(m.Patch.Owner) != 0 {
		errs = errors.AppendField(errs, "Patch.Owner", m.Patch.Owner.Validate())
	}
	if m.Patch.InactivityThreshold < 0 {
		errs = errors.AppendField(errs, "Patch.InactivityThreshold", errors.ErrInput)
	}
	return errs
}
