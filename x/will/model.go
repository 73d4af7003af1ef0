package will

import (
	"encoding/binary"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/codec"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/orm"
	"github.com/heirloom-labs/heirloom/x/registry"
)

const (
	// MaxTrustees is the maximum number of trustees of a single will.
	MaxTrustees = 20

	// MaxHeirAge is the age at which the heir age computation saturates.
	MaxHeirAge = 255

	// secondsPerYear is the length of a year used to compute the heir age.
	secondsPerYear = 365 * 24 * 60 * 60
)

// EngineCondition is the identity of the will engine. An owner authorizes
// it in the registry to let the engine move the willed share.
var EngineCondition = heirloom.NewCondition("will", "engine", []byte("succession"))

// Will leaves a share of an asset to an heir.
type Will struct {
	Metadata    *heirloom.Metadata `json:"metadata"`
	Owner       heirloom.Address   `json:"owner"`
	Heir        heirloom.Address   `json:"heir"`
	AssetID     string             `json:"asset_id"`
	ShareAmount uint64             `json:"share_amount"`
	// HeirBirthTime is used to compute the age of the heir at execution.
	HeirBirthTime heirloom.UnixTime `json:"heir_birth_time"`
	// MinimumHeirAge in years.
	MinimumHeirAge uint32 `json:"minimum_heir_age"`
	// VestingDuration in seconds.
	VestingDuration   int64             `json:"vesting_duration"`
	LastLivenessProof heirloom.UnixTime `json:"last_liveness_proof"`
	Active            bool              `json:"active"`
	Executed          bool              `json:"executed"`
	Trustees          []Trustee         `json:"trustees"`
	RequiredApprovals uint32            `json:"required_approvals"`
	Approvals         []Approval        `json:"approvals"`
	InEscrow          bool              `json:"in_escrow"`
	// Escrowed is set when the execution went through escrow. Unlike
	// InEscrow it is not cleared by the claim.
	Escrowed   bool              `json:"escrowed"`
	UnlockTime heirloom.UnixTime `json:"unlock_time"`
	CreatedAt  heirloom.UnixTime `json:"created_at"`
}

// Trustee is an identity allowed to approve the death of the owner.
type Trustee struct {
	Address heirloom.Address `json:"address"`
}

// Approval is a death approval of a trustee.
type Approval struct {
	Trustee    heirloom.Address  `json:"trustee"`
	ApprovedAt heirloom.UnixTime `json:"approved_at"`
}

var _ orm.Model = (*Will)(nil)

func (w *Will) Marshal() ([]byte, error)  { return codec.Marshal(w) }
func (w *Will) Unmarshal(bz []byte) error { return codec.Unmarshal(bz, w) }

func (w *Will) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", w.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", w.Owner.Validate())
	errs = errors.AppendField(errs, "Heir", validateHeir(w.Owner, w.Heir))
	errs = errors.AppendField(errs, "AssetID", registry.ValidateAssetID(w.AssetID))
	if w.ShareAmount == 0 {
		errs = errors.AppendField(errs, "ShareAmount", errors.ErrAmount)
	}
	if w.MinimumHeirAge > MaxHeirAge {
		errs = errors.AppendField(errs, "MinimumHeirAge", errors.Wrapf(errors.ErrInput, "more than %d", MaxHeirAge))
	}
	if w.VestingDuration < 0 {
		errs = errors.AppendField(errs, "VestingDuration", errors.Wrap(errors.ErrInput, "negative"))
	}
	errs = errors.Append(errs, validateTrustees(w.Trustees, w.RequiredApprovals))
	if w.Active && w.Executed {
		errs = errors.AppendField(errs, "Active", errors.Wrap(errors.ErrState, "executed will cannot be active"))
	}
	if w.InEscrow && !w.Escrowed {
		errs = errors.AppendField(errs, "InEscrow", errors.Wrap(errors.ErrState, "not escrowed"))
	}
	if w.LastLivenessProof.IsZero() {
		errs = errors.AppendField(errs, "LastLivenessProof", errors.ErrEmpty)
	}
	return errs
}

func validateHeir(owner, heir heirloom.Address) error {
	if err := heir.Validate(); err != nil {
		return err
	}
	if heir.Equals(owner) {
		return errors.Wrap(errors.ErrInput, "owner cannot be the heir")
	}
	return nil
}

func validateTrustees(trustees []Trustee, required uint32) error {
	var errs error
	switch n := len(trustees); {
	case n == 0:
		errs = errors.AppendField(errs, "Trustees", errors.ErrEmpty)
	case n > MaxTrustees:
		errs = errors.AppendField(errs, "Trustees", errors.Wrapf(errors.ErrInput, "more than %d trustees", MaxTrustees))
	}
	seen := make(map[string]struct{}, len(trustees))
	for _, t := range trustees {
		if err := t.Address.Validate(); err != nil {
			errs = errors.AppendField(errs, "Trustees", err)
			continue
		}
		if _, ok := seen[string(t.Address)]; ok {
			errs = errors.AppendField(errs, "Trustees", errors.Wrapf(errors.ErrDuplicate, "trustee %s", t.Address))
		}
		seen[string(t.Address)] = struct{}{}
	}
	if required == 0 || int(required) > len(trustees) {
		errs = errors.AppendField(errs, "RequiredApprovals",
			errors.Wrapf(errors.ErrInput, "must be between 1 and %d", len(trustees)))
	}
	return errs
}

// IsTrustee returns true if given address is one of the trustees.
func (w *Will) IsTrustee(addr heirloom.Address) bool {
	for _, t := range w.Trustees {
		if t.Address.Equals(addr) {
			return true
		}
	}
	return false
}

// HasApproved returns true if given trustee already approved.
func (w *Will) HasApproved(addr heirloom.Address) bool {
	for _, a := range w.Approvals {
		if a.Trustee.Equals(addr) {
			return true
		}
	}
	return false
}

// ApprovalCount counts the trustees that approved. The count is recomputed
// from the trustee roster and the approval set on every call.
func (w *Will) ApprovalCount() int {
	approved := make(map[string]struct{}, len(w.Approvals))
	for _, a := range w.Approvals {
		approved[string(a.Trustee)] = struct{}{}
	}
	var n int
	for _, t := range w.Trustees {
		if _, ok := approved[string(t.Address)]; ok {
			n++
		}
	}
	return n
}

// Will lifecycle states as returned by State.
const (
	StateActive   = "active"
	StateExecuted = "executed"
	StateEscrowed = "escrowed"
	StateClaimed  = "claimed"
)

// State returns the lifecycle state of the will.
func (w *Will) State() string {
	switch {
	case !w.Executed:
		return StateActive
	case w.InEscrow:
		return StateEscrowed
	case w.Escrowed:
		return StateClaimed
	default:
		return StateExecuted
	}
}

// HeirAge returns the age in full years of someone born at birth, at now.
// The age is zero if now is not after birth and saturates at MaxHeirAge.
func HeirAge(birth, now heirloom.UnixTime) uint32 {
	if now <= birth {
		return 0
	}
	years := uint64(now.Since(birth)) / secondsPerYear
	if years > MaxHeirAge {
		return MaxHeirAge
	}
	return uint32(years)
}

// WillKey returns the key of the will at given position of the owner list.
func WillKey(owner heirloom.Address, position uint64) []byte {
	key := make([]byte, len(owner)+8)
	copy(key, owner)
	binary.BigEndian.PutUint64(key[len(owner):], position)
	return key
}

func willByHeir(m orm.Model) ([][]byte, error) {
	w, ok := m.(*Will)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return [][]byte{w.Heir}, nil
}

func willByTrustee(m orm.Model) ([][]byte, error) {
	w, ok := m.(*Will)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	res := make([][]byte, len(w.Trustees))
	for i, t := range w.Trustees {
		res[i] = t.Address
	}
	return res, nil
}

// NewBucket returns a bucket of wills, indexed by heir and trustee.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("will", &Will{},
		orm.WithIndex("heir", willByHeir),
		orm.WithIndex("trustee", willByTrustee),
	)
}

// ownerSequence allocates positions in the will list of the owner.
func ownerSequence(owner heirloom.Address) orm.Sequence {
	return orm.NewSequence("will", owner.String())
}
