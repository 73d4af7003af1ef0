package escrow

import "github.com/heirloom-labs/heirloom"

// DepositEvent is emitted when a share enters the vault.
type DepositEvent struct {
	EscrowID    []byte            `json:"escrow_id"`
	Vault       heirloom.Address  `json:"vault"`
	Source      heirloom.Address  `json:"source"`
	Beneficiary heirloom.Address  `json:"beneficiary"`
	AssetID     string            `json:"asset_id"`
	Amount      uint64            `json:"amount"`
	UnlockTime  heirloom.UnixTime `json:"unlock_time"`
}

func (DepositEvent) Kind() string { return "escrow/deposit" }

// ReleaseEvent is emitted when a share leaves the vault.
type ReleaseEvent struct {
	EscrowID    []byte           `json:"escrow_id"`
	Vault       heirloom.Address `json:"vault"`
	Beneficiary heirloom.Address `json:"beneficiary"`
	AssetID     string           `json:"asset_id"`
	Amount      uint64           `json:"amount"`
}

func (ReleaseEvent) Kind() string { return "escrow/release" }
