package liveness

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/codec"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/gconf"
)

const packageName = "liveness"

// Configuration holds the inactivity threshold.
type Configuration struct {
	Metadata *heirloom.Metadata `json:"metadata"`
	// Owner is the address allowed to change the configuration.
	Owner heirloom.Address `json:"owner"`
	// InactivityThreshold is the number of seconds without a proof of life
	// after which an owner is presumed deceased.
	InactivityThreshold int64 `json:"inactivity_threshold"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error)  { return codec.Marshal(c) }
func (c *Configuration) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, c) }

func (c *Configuration) GetOwner() heirloom.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	if c.InactivityThreshold <= 0 {
		errs = errors.AppendField(errs, "InactivityThreshold",
			errors.Wrap(errors.ErrInput, "must be positive"))
	}
	return errs
}

// LoadConfiguration returns the current configuration.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load liveness configuration")
	}
	return &conf, nil
}
