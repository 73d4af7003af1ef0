package gconf

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/heirloomtest"
	"github.com/heirloom-labs/heirloom/heirloomtest/assert"
	"github.com/heirloom-labs/heirloom/store"
)

type myconfigMsg struct {
	Patch *myconfig
}

var _ heirloom.Msg = (*myconfigMsg)(nil)

func (msg *myconfigMsg) Marshal() ([]byte, error)   { return json.Marshal(msg) }
func (msg *myconfigMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, msg) }
func (msg *myconfigMsg) Path() string               { return "mypkg/update_configuration" }

func (msg *myconfigMsg) Validate() error {
	if msg.Patch == nil {
		return nil
	}
	return msg.Patch.Validate()
}

func TestUpdateConfigurationHandler(t *testing.T) {
	cond := heirloomtest.NewCondition()
	admin := heirloomtest.NewCondition()

	cases := map[string]struct {
		// If Init is provided, initialize the database before running
		// handler code. Use nil to not provide initial state.
		Init      ValidMarshaler
		InitAdmin heirloom.Address

		Msg            heirloom.Msg
		MsgConditions  []heirloom.Condition
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error

		// When not nil database state will be tested to contain the
		// exact version of the configuration.
		WantConfig *myconfig
	}{
		"success": {
			Init: &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar"},
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Num: 333, Str: "boing!"},
			},
			MsgConditions: []heirloom.Condition{cond},
			WantConfig:    &myconfig{Owner: cond.Address(), Num: 333, Str: "boing!"},
		},
		"message must be signed by the configuration owner": {
			Init: &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar"},
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Num: 333},
			},
			MsgConditions:  []heirloom.Condition{heirloomtest.NewCondition()},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"zero values are not updating the configuration": {
			Init: &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar"},
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Num: 0, Str: "new"},
			},
			MsgConditions: []heirloom.Condition{cond},
			WantConfig:    &myconfig{Owner: cond.Address(), Num: 5125, Str: "new"},
		},
		"ownership can be handed over": {
			Init: &myconfig{Owner: cond.Address(), Num: 1},
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: admin.Address()},
			},
			MsgConditions: []heirloom.Condition{cond},
			WantConfig:    &myconfig{Owner: admin.Address(), Num: 1},
		},
		"invalid configuration is not accepted": {
			Init: &myconfig{Owner: cond.Address(), Num: 5125},
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Num: -1},
			},
			MsgConditions:  []heirloom.Condition{cond},
			WantCheckErr:   errors.ErrInput,
			WantDeliverErr: errors.ErrInput,
		},
		"patch is required": {
			Init:           &myconfig{Owner: cond.Address(), Num: 5125},
			Msg:            &myconfigMsg{},
			MsgConditions:  []heirloom.Condition{cond},
			WantCheckErr:   errors.ErrEmpty,
			WantDeliverErr: errors.ErrEmpty,
		},
		"missing configuration cannot be created without an admin": {
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Num: 1},
			},
			MsgConditions:  []heirloom.Condition{cond},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"missing configuration created by the admin": {
			InitAdmin: admin.Address(),
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Num: 7},
			},
			MsgConditions: []heirloom.Condition{admin},
			WantConfig:    &myconfig{Owner: cond.Address(), Num: 7},
		},
		"missing configuration requires the admin signature": {
			InitAdmin: admin.Address(),
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Num: 7},
			},
			MsgConditions:  []heirloom.Condition{cond},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()

			if tc.Init != nil {
				if err := Save(db, "mypkg", tc.Init); err != nil {
					t.Fatalf("cannot save initial configuration: %s", err)
				}
			}

			var initAdmin func(heirloom.ReadOnlyKVStore) (heirloom.Address, error)
			if tc.InitAdmin != nil {
				initAdmin = func(heirloom.ReadOnlyKVStore) (heirloom.Address, error) {
					return tc.InitAdmin, nil
				}
			}

			auth := &heirloomtest.CtxAuth{Key: "auth"}
			handler := NewUpdateConfigurationHandler("mypkg",
				func() OwnedConfig { return &myconfig{} }, auth, initAdmin)

			ctx := heirloom.WithHeight(context.Background(), 999)
			ctx = heirloom.WithChainID(ctx, "mychain-123")
			ctx = auth.SetConditions(ctx, tc.MsgConditions...)

			tx := &heirloomtest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			if _, err := handler.Check(ctx, cache, tx); !tc.WantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()

			if _, err := handler.Deliver(ctx, db, tx); !tc.WantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			if tc.WantConfig != nil {
				var got myconfig
				if err := Load(db, "mypkg", &got); err != nil {
					t.Fatalf("cannot load configuration from the database: %s", err)
				}
				assert.Equal(t, tc.WantConfig, &got)
			}
		})
	}
}
