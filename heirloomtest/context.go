package heirloomtest

import (
	"context"
	"time"

	"github.com/heirloom-labs/heirloom"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BlockContext returns a context of a block at given height and time.
func BlockContext(height int64, now time.Time) heirloom.Context {
	ctx := heirloom.WithHeader(context.Background(), abci.Header{
		Height: height,
		Time:   now,
	})
	return heirloom.WithHeight(ctx, height)
}
