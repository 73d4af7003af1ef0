package x_test

import (
	"context"
	"testing"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/heirloomtest"
	"github.com/heirloom-labs/heirloom/heirloomtest/assert"
	"github.com/heirloom-labs/heirloom/x"
)

func TestAuth(t *testing.T) {
	a := heirloomtest.NewCondition()
	b := heirloomtest.NewCondition()
	c := heirloomtest.NewCondition()
	d := heirloomtest.NewCondition()

	ctx := context.Background()
	ctxAuth := &heirloomtest.CtxAuth{Key: "authin"}
	ctx = ctxAuth.SetConditions(ctx, a, b)
	chain := x.ChainAuth(ctxAuth, &heirloomtest.Auth{Signers: []heirloom.Condition{b, c}})

	cases := map[string]struct {
		auth       x.Authenticator
		mainSigner heirloom.Condition
		all        []heirloom.Address
		allOk      bool
		n          int
		nOk        bool
	}{
		"no signers": {
			auth:  &heirloomtest.Auth{},
			all:   []heirloom.Address{a.Address()},
			allOk: false,
			n:     1,
			nOk:   false,
		},
		"context authenticator": {
			auth:       ctxAuth,
			mainSigner: a,
			all:        []heirloom.Address{a.Address(), b.Address()},
			allOk:      true,
			n:          2,
			nOk:        true,
		},
		"chained authenticators": {
			auth:       chain,
			mainSigner: a,
			all:        []heirloom.Address{a.Address(), b.Address(), c.Address()},
			allOk:      true,
			n:          3,
			nOk:        true,
		},
		"missing signer": {
			auth:       chain,
			mainSigner: a,
			all:        []heirloom.Address{a.Address(), d.Address()},
			allOk:      false,
			n:          2,
			nOk:        false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			signer := x.MainSigner(ctx, tc.auth)
			if tc.mainSigner == nil {
				assert.Nil(t, signer)
			} else {
				assert.Equal(t, tc.mainSigner, signer)
			}
			assert.Equal(t, tc.allOk, x.HasAllAddresses(ctx, tc.auth, tc.all))
			assert.Equal(t, tc.nOk, x.HasNAddresses(ctx, tc.auth, tc.all, tc.n))
		})
	}
}

func TestChainAuthDeduplicates(t *testing.T) {
	a := heirloomtest.NewCondition()
	b := heirloomtest.NewCondition()
	chain := x.ChainAuth(
		&heirloomtest.Auth{Signers: []heirloom.Condition{a, b}},
		&heirloomtest.Auth{Signer: b},
	)
	addrs := x.GetAddresses(context.Background(), chain)
	assert.Equal(t, []heirloom.Address{a.Address(), b.Address()}, addrs)
}

func TestAnySigner(t *testing.T) {
	_, err := x.AnySigner(context.Background(), &heirloomtest.Auth{})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	c := heirloomtest.NewCondition()
	addr, err := x.AnySigner(context.Background(), &heirloomtest.Auth{Signer: c})
	assert.Nil(t, err)
	assert.Equal(t, c.Address(), addr)
}
