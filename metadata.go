package heirloom

import "github.com/heirloom-labs/heirloom/errors"

// Metadata is embedded in every model and configuration. Schema is the
// version of the serialized structure and starts at 1.
type Metadata struct {
	Schema uint32 `json:"schema"`
}

// Validate returns an error if the schema version is not set.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrEmpty, "metadata")
	}
	if m.Schema < 1 {
		return errors.Field("Schema", errors.ErrModel, "schema version must be at least 1")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when
// implementing orm.CloneableData.
func (m *Metadata) Copy() *Metadata {
	cpy := *m
	return &cpy
}
