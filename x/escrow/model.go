package escrow

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/codec"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/orm"
)

// Escrow is an asset share held by the vault until the unlock time.
type Escrow struct {
	Metadata *heirloom.Metadata `json:"metadata"`
	// Source is the original holder of the share.
	Source heirloom.Address `json:"source"`
	// Beneficiary receives the share on release.
	Beneficiary heirloom.Address  `json:"beneficiary"`
	AssetID     string            `json:"asset_id"`
	Amount      uint64            `json:"amount"`
	UnlockTime  heirloom.UnixTime `json:"unlock_time"`
	// Address is the custodian address holding the share.
	Address heirloom.Address `json:"address"`
}

var _ orm.Model = (*Escrow)(nil)

func (e *Escrow) Marshal() ([]byte, error)  { return codec.Marshal(e) }
func (e *Escrow) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, e) }

// Validate ensures the escrow is valid
func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", e.Metadata.Validate())
	errs = errors.AppendField(errs, "Source", e.Source.Validate())
	errs = errors.AppendField(errs, "Beneficiary", e.Beneficiary.Validate())
	errs = errors.AppendField(errs, "Address", e.Address.Validate())
	if e.AssetID == "" {
		errs = errors.AppendField(errs, "AssetID", errors.ErrEmpty)
	}
	if e.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

// Condition calculates the custodian condition of an escrow given the key.
func Condition(key []byte) heirloom.Condition {
	return heirloom.NewCondition("escrow", "seq", key)
}

func escrowByBeneficiary(m orm.Model) ([][]byte, error) {
	e, ok := m.(*Escrow)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return [][]byte{e.Beneficiary}, nil
}

func escrowBySource(m orm.Model) ([][]byte, error) {
	e, ok := m.(*Escrow)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return [][]byte{e.Source}, nil
}

// NewBucket returns a bucket of escrows keyed by ID and indexed by source
// and beneficiary.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("escrow", &Escrow{},
		orm.WithIndex("beneficiary", escrowByBeneficiary),
		orm.WithIndex("source", escrowBySource),
	)
}
