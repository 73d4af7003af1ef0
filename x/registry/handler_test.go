package registry

import (
	"context"
	"testing"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/app"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/heirloomtest"
	"github.com/heirloom-labs/heirloom/heirloomtest/assert"
	"github.com/heirloom-labs/heirloom/store"
)

func TestTransferHandler(t *testing.T) {
	alice := heirloomtest.NewCondition()
	bob := heirloomtest.NewCondition()
	operator := heirloomtest.NewCondition()

	cases := map[string]struct {
		signer    heirloom.Condition
		msg       heirloom.Msg
		wantCheck *errors.Error
		wantBob   uint64
	}{
		"owner transfers": {
			signer: alice,
			msg: &TransferMsg{
				Metadata:    &heirloom.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
				AssetID:     "house",
				Amount:      3,
			},
			wantBob: 3,
		},
		"authorized operator transfers": {
			signer: operator,
			msg: &TransferMsg{
				Metadata:    &heirloom.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
				AssetID:     "house",
				Amount:      2,
			},
			wantBob: 2,
		},
		"stranger cannot transfer": {
			signer: bob,
			msg: &TransferMsg{
				Metadata:    &heirloom.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
				AssetID:     "house",
				Amount:      2,
			},
			wantCheck: errors.ErrUnauthorized,
		},
		"invalid message": {
			signer: alice,
			msg: &TransferMsg{
				Metadata: &heirloom.Metadata{Schema: 1},
				Source:   alice.Address(),
				AssetID:  "house",
				Amount:   2,
			},
			wantCheck: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			assert.Nil(t, ctrl.Issue(db, alice.Address(), "house", 10))
			assert.Nil(t, ctrl.Authorize(db, alice.Address(), operator.Address(), true))

			auth := &heirloomtest.Auth{Signer: tc.signer}
			rt := app.NewRouter()
			RegisterRoutes(rt, auth, ctrl)

			tx := &heirloomtest.Tx{Msg: tc.msg}
			ctx := context.Background()
			if _, err := rt.Check(ctx, db, tx); !tc.wantCheck.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			if tc.wantCheck != nil {
				return
			}
			res, err := rt.Deliver(ctx, db, tx)
			assert.Nil(t, err)
			assert.Equal(t, 1, len(res.Events))
			assert.Equal(t, "registry/transfer", res.Events[0].Kind())

			got, err := ctrl.Balance(db, bob.Address(), "house")
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}

func TestAuthorizeHandler(t *testing.T) {
	owner := heirloomtest.NewCondition()
	operator := heirloomtest.NewCondition().Address()

	db := store.MemStore()
	ctrl := NewController()
	rt := app.NewRouter()
	RegisterRoutes(rt, &heirloomtest.Auth{Signer: owner}, ctrl)
	ctx := context.Background()

	grant := &heirloomtest.Tx{Msg: &AuthorizeMsg{
		Metadata: &heirloom.Metadata{Schema: 1},
		Operator: operator,
		Grant:    true,
	}}
	res, err := rt.Deliver(ctx, db, grant)
	assert.Nil(t, err)
	assert.Equal(t, []heirloom.Event{AuthorizationEvent{
		Owner:    owner.Address(),
		Operator: operator,
		Granted:  true,
	}}, res.Events)

	ok, err := ctrl.IsAuthorized(db, owner.Address(), operator)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	revoke := &heirloomtest.Tx{Msg: &AuthorizeMsg{
		Metadata: &heirloom.Metadata{Schema: 1},
		Operator: operator,
	}}
	_, err = rt.Deliver(ctx, db, revoke)
	assert.Nil(t, err)
	ok, err = ctrl.IsAuthorized(db, owner.Address(), operator)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	self := &heirloomtest.Tx{Msg: &AuthorizeMsg{
		Metadata: &heirloom.Metadata{Schema: 1},
		Operator: owner.Address(),
		Grant:    true,
	}}
	_, err = rt.Check(ctx, db, self)
	assert.IsErr(t, errors.ErrInput, err)

	unsigned := NewAuthorizeHandler(&heirloomtest.Auth{}, ctrl)
	_, err = unsigned.Check(ctx, db, grant)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}
