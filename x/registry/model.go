package registry

import (
	"regexp"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/codec"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/orm"
)

// MaxHolders is the maximum number of distinct identities holding a positive
// balance of a single asset.
const MaxHolders = 20

// IsAssetID returns true if given value is a valid asset identifier.
var IsAssetID = regexp.MustCompile(`^[a-zA-Z0-9_.\-]{3,64}$`).MatchString

// ValidateAssetID returns an error if id is not a valid asset identifier.
func ValidateAssetID(id string) error {
	if id == "" {
		return errors.Wrap(errors.ErrEmpty, "asset ID")
	}
	if !IsAssetID(id) {
		return errors.Wrapf(errors.ErrInput, "asset ID %q", id)
	}
	return nil
}

// Holding is the balance of a single asset held by a single identity.
type Holding struct {
	Metadata *heirloom.Metadata `json:"metadata"`
	Holder   heirloom.Address   `json:"holder"`
	AssetID  string             `json:"asset_id"`
	Amount   uint64             `json:"amount"`
}

var _ orm.Model = (*Holding)(nil)

func (h *Holding) Marshal() ([]byte, error)  { return codec.Marshal(h) }
func (h *Holding) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, h) }

func (h *Holding) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", h.Metadata.Validate())
	errs = errors.AppendField(errs, "Holder", h.Holder.Validate())
	errs = errors.AppendField(errs, "AssetID", ValidateAssetID(h.AssetID))
	return errs
}

// HoldingKey returns the key of the holding of given asset.
func HoldingKey(holder heirloom.Address, assetID string) []byte {
	key := make([]byte, 0, len(holder)+len(assetID))
	key = append(key, holder...)
	return append(key, assetID...)
}

func holdingByAsset(m orm.Model) ([][]byte, error) {
	h, ok := m.(*Holding)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return [][]byte{[]byte(h.AssetID)}, nil
}

// NewHoldingBucket returns a bucket for holdings, indexed by asset.
func NewHoldingBucket() orm.ModelBucket {
	return orm.NewModelBucket("holding", &Holding{},
		orm.WithIndex("asset", holdingByAsset),
	)
}

// Asset keeps the list of identities that held an asset. Entries with a zero
// balance are dropped only when the list is full.
type Asset struct {
	Metadata *heirloom.Metadata `json:"metadata"`
	ID       string             `json:"id"`
	Holders  []Holder           `json:"holders"`
}

// Holder is a single entry of the asset holder list.
type Holder struct {
	Address heirloom.Address `json:"address"`
}

var _ orm.Model = (*Asset)(nil)

func (a *Asset) Marshal() ([]byte, error)  { return codec.Marshal(a) }
func (a *Asset) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, a) }

func (a *Asset) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", a.Metadata.Validate())
	errs = errors.AppendField(errs, "ID", ValidateAssetID(a.ID))
	if len(a.Holders) > MaxHolders {
		errs = errors.AppendField(errs, "Holders", errors.Wrapf(errors.ErrInput, "more than %d holders", MaxHolders))
	}
	seen := make(map[string]struct{}, len(a.Holders))
	for _, h := range a.Holders {
		if err := h.Address.Validate(); err != nil {
			errs = errors.AppendField(errs, "Holders", err)
			continue
		}
		if _, ok := seen[string(h.Address)]; ok {
			errs = errors.AppendField(errs, "Holders", errors.Wrapf(errors.ErrDuplicate, "holder %s", h.Address))
		}
		seen[string(h.Address)] = struct{}{}
	}
	return errs
}

// hasHolder returns true if given address is on the holder list.
func (a *Asset) hasHolder(addr heirloom.Address) bool {
	for _, h := range a.Holders {
		if h.Address.Equals(addr) {
			return true
		}
	}
	return false
}

// NewAssetBucket returns a bucket for asset holder lists, keyed by asset ID.
func NewAssetBucket() orm.ModelBucket {
	return orm.NewModelBucket("asset", &Asset{})
}

// Operator is a blanket authorization of an operator to move any asset of
// the owner.
type Operator struct {
	Metadata *heirloom.Metadata `json:"metadata"`
	Owner    heirloom.Address   `json:"owner"`
	Operator heirloom.Address   `json:"operator"`
}

var _ orm.Model = (*Operator)(nil)

func (o *Operator) Marshal() ([]byte, error)  { return codec.Marshal(o) }
func (o *Operator) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, o) }

func (o *Operator) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", o.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", o.Owner.Validate())
	errs = errors.AppendField(errs, "Operator", o.Operator.Validate())
	if o.Owner.Equals(o.Operator) {
		errs = errors.AppendField(errs, "Operator", errors.Wrap(errors.ErrInput, "owner cannot be its own operator"))
	}
	return errs
}

// OperatorKey returns the key of the authorization granted by the owner.
func OperatorKey(owner, operator heirloom.Address) []byte {
	key := make([]byte, 0, len(owner)+len(operator))
	key = append(key, owner...)
	return append(key, operator...)
}

func operatorByOperator(m orm.Model) ([][]byte, error) {
	o, ok := m.(*Operator)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return [][]byte{o.Operator}, nil
}

// NewOperatorBucket returns a bucket for operator authorizations, keyed by
// owner and operator and indexed by operator.
func NewOperatorBucket() orm.ModelBucket {
	return orm.NewModelBucket("operator", &Operator{},
		orm.WithIndex("operator", operatorByOperator),
	)
}
