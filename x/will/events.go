package will

import "github.com/heirloom-labs/heirloom"

// CreatedEvent is emitted when a will is written.
type CreatedEvent struct {
	Owner    heirloom.Address `json:"owner"`
	WillID   uint64           `json:"will_id"`
	Heir     heirloom.Address `json:"heir"`
	AssetID  string           `json:"asset_id"`
	Amount   uint64           `json:"amount"`
	Trustees int              `json:"trustees"`
	Required uint32           `json:"required"`
}

func (CreatedEvent) Kind() string { return "will/created" }

// LivenessEvent is emitted when an owner refreshes the liveness proof of
// its pending wills.
type LivenessEvent struct {
	Owner heirloom.Address  `json:"owner"`
	At    heirloom.UnixTime `json:"at"`
	Wills int               `json:"wills"`
}

func (LivenessEvent) Kind() string { return "will/liveness" }

// DeathApprovalEvent reports the approval progress of a will.
type DeathApprovalEvent struct {
	Owner    heirloom.Address `json:"owner"`
	WillID   uint64           `json:"will_id"`
	Trustee  heirloom.Address `json:"trustee"`
	Current  int              `json:"current"`
	Required uint32           `json:"required"`
}

func (DeathApprovalEvent) Kind() string { return "will/death_approval" }

// ExecutedEvent is emitted when a will executes. Escrowed is set when the
// share went to the vault instead of the heir.
type ExecutedEvent struct {
	Owner      heirloom.Address  `json:"owner"`
	WillID     uint64            `json:"will_id"`
	Heir       heirloom.Address  `json:"heir"`
	AssetID    string            `json:"asset_id"`
	Amount     uint64            `json:"amount"`
	Escrowed   bool              `json:"escrowed"`
	UnlockTime heirloom.UnixTime `json:"unlock_time,omitempty"`
}

func (ExecutedEvent) Kind() string { return "will/executed" }

// ClaimedEvent is emitted when the heir claims an escrowed share.
type ClaimedEvent struct {
	Owner   heirloom.Address `json:"owner"`
	WillID  uint64           `json:"will_id"`
	Heir    heirloom.Address `json:"heir"`
	AssetID string           `json:"asset_id"`
	Amount  uint64           `json:"amount"`
}

func (ClaimedEvent) Kind() string { return "will/claimed" }
