package registry

import "github.com/heirloom-labs/heirloom"

// TransferEvent is emitted when a holder moves an asset.
type TransferEvent struct {
	Operator heirloom.Address `json:"operator"`
	From     heirloom.Address `json:"from"`
	To       heirloom.Address `json:"to"`
	AssetID  string           `json:"asset_id"`
	Amount   uint64           `json:"amount"`
}

func (TransferEvent) Kind() string { return "registry/transfer" }

// AuthorizationEvent is emitted when an owner grants or revokes an operator
// authorization.
type AuthorizationEvent struct {
	Owner    heirloom.Address `json:"owner"`
	Operator heirloom.Address `json:"operator"`
	Granted  bool             `json:"granted"`
}

func (AuthorizationEvent) Kind() string { return "registry/authorization" }
