package consensus

import (
	"testing"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/app"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/heirloomtest"
	"github.com/heirloom-labs/heirloom/heirloomtest/assert"
)

func TestHandlers(t *testing.T) {
	f := newFixture(t)
	alice := heirloomtest.NewCondition()
	bob := heirloomtest.NewCondition()
	for _, c := range []heirloom.Condition{alice, bob} {
		assert.Nil(t, f.reg.Issue(f.db, c.Address(), asset, 5))
		assert.Nil(t, f.reg.Authorize(f.db, c.Address(), EngineCondition.Address(), true))
	}

	auth := &heirloomtest.CtxAuth{Key: "auth"}
	rt := app.NewRouter()
	RegisterRoutes(rt, auth, f.reg, f.engine)

	propose := &heirloomtest.Tx{Msg: &ProposeMsg{
		Metadata:  &heirloom.Metadata{Schema: 1},
		AssetID:   asset,
		Recipient: f.recipient,
	}}
	stranger := heirloomtest.NewCondition()
	_, err := rt.Deliver(auth.SetConditions(f.ctx, stranger), f.db, propose)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// The signer holding the asset is the proposer.
	res, err := rt.Deliver(auth.SetConditions(f.ctx, stranger, alice), f.db, propose)
	assert.Nil(t, err)
	assert.Equal(t, []byte(asset), res.Data)
	assert.Equal(t, []heirloom.Event{ProposedEvent{
		AssetID:   asset,
		Proposer:  alice.Address(),
		Recipient: f.recipient,
	}}, res.Events)

	approve := &heirloomtest.Tx{Msg: &ApproveMsg{
		Metadata: &heirloom.Metadata{Schema: 1},
		AssetID:  asset,
	}}
	res, err = rt.Deliver(auth.SetConditions(f.ctx, alice), f.db, approve)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res.Events))

	execute := &heirloomtest.Tx{Msg: &ExecuteMsg{
		Metadata: &heirloom.Metadata{Schema: 1},
		AssetID:  asset,
	}}
	_, err = rt.Deliver(f.ctx, f.db, execute)
	assert.IsErr(t, errors.ErrState, err)

	res, err = rt.Deliver(auth.SetConditions(f.ctx, bob), f.db, approve)
	assert.Nil(t, err)
	assert.Equal(t, "consensus/executed", res.Events[1].Kind())
	assert.Equal(t, uint64(10), f.balance(t, f.recipient))

	invalid := &heirloomtest.Tx{Msg: &ApproveMsg{
		Metadata: &heirloom.Metadata{Schema: 1},
		AssetID:  "x",
	}}
	_, err = rt.Check(auth.SetConditions(f.ctx, bob), f.db, invalid)
	assert.IsErr(t, errors.ErrInput, err)
}
