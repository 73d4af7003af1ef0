package consensus

import "github.com/heirloom-labs/heirloom"

// ProposedEvent is emitted when a whole-asset transfer is proposed.
type ProposedEvent struct {
	AssetID   string           `json:"asset_id"`
	Proposer  heirloom.Address `json:"proposer"`
	Recipient heirloom.Address `json:"recipient"`
}

func (ProposedEvent) Kind() string { return "consensus/proposed" }

// ApprovalEvent reports the progress of a proposal. Total is the number of
// identities holding the asset at the time of the approval.
type ApprovalEvent struct {
	AssetID string           `json:"asset_id"`
	Holder  heirloom.Address `json:"holder"`
	Current uint32           `json:"current"`
	Total   int              `json:"total"`
}

func (ApprovalEvent) Kind() string { return "consensus/approval" }

// ExecutedEvent is emitted when the whole asset moved to the recipient.
type ExecutedEvent struct {
	AssetID   string           `json:"asset_id"`
	Recipient heirloom.Address `json:"recipient"`
	Holders   int              `json:"holders"`
	Amount    uint64           `json:"amount"`
}

func (ExecutedEvent) Kind() string { return "consensus/executed" }

// ExecutionFailedEvent is emitted when the approval completing a proposal
// could not execute it. Code and Error describe the failure.
type ExecutionFailedEvent struct {
	AssetID string `json:"asset_id"`
	Code    uint32 `json:"code"`
	Error   string `json:"error"`
}

func (ExecutionFailedEvent) Kind() string { return "consensus/execution_failed" }
