package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/heirloomtest"
	"github.com/heirloom-labs/heirloom/store"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := heirloom.WithLogger(context.Background(), log.NewTMLogger(&buf))
	db := store.MemStore()
	tx := &heirloomtest.Tx{Msg: &heirloomtest.Msg{RoutePath: "will/create"}}
	l := NewLogging()

	_, err := l.Deliver(ctx, db, tx, &heirloomtest.Handler{
		DeliverResult: heirloom.DeliverResult{Log: "all good"},
	})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "all good")
	assert.Contains(t, buf.String(), "path=will/create")

	buf.Reset()
	_, err = l.Check(ctx, db, tx, &heirloomtest.Handler{CheckErr: errors.ErrUnauthorized})
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Contains(t, buf.String(), "unauthorized")
}
