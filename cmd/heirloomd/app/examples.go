package app

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/commands"
	"github.com/heirloom-labs/heirloom/crypto"
	"github.com/heirloom-labs/heirloom/x/consensus"
	"github.com/heirloom-labs/heirloom/x/registry"
	"github.com/heirloom-labs/heirloom/x/will"
)

// Examples generates some example structs to dump out with testgen.
func Examples() []commands.Example {
	owner := crypto.GenPrivateKey().PublicKey()
	heir := crypto.GenPrivateKey().PublicKey().Address()
	trustee := crypto.GenPrivateKey().PublicKey().Address()
	meta := &heirloom.Metadata{Schema: 1}

	createMsg := &will.CreateMsg{
		Metadata:          meta,
		Heir:              heir,
		HeirBirthTime:     heirloom.UnixTime(946684800),
		MinimumHeirAge:    21,
		VestingDuration:   365 * 24 * 60 * 60,
		AssetID:           "house",
		Amount:            1,
		Trustees:          []will.Trustee{{Address: trustee}},
		RequiredApprovals: 1,
	}
	approveMsg := &will.ApproveDeathMsg{
		Metadata: meta,
		Owner:    owner.Address(),
		WillID:   0,
	}
	proposeMsg := &consensus.ProposeMsg{
		Metadata:  meta,
		AssetID:   "house",
		Recipient: heir,
	}
	authorizeMsg := &registry.AuthorizeMsg{
		Metadata: meta,
		Operator: will.EngineCondition.Address(),
		Grant:    true,
	}

	tx := &Tx{
		Msg:    createMsg,
		Signer: owner.Condition(),
	}

	return []commands.Example{
		{Filename: "create_will_msg", Obj: createMsg},
		{Filename: "approve_death_msg", Obj: approveMsg},
		{Filename: "propose_msg", Obj: proposeMsg},
		{Filename: "authorize_msg", Obj: authorizeMsg},
		{Filename: "create_will_tx", Obj: tx},
	}
}
