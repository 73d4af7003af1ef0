package app

import (
	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage and query
// functionality of StoreApp.
type BaseApp struct {
	*StoreApp
	decoder heirloom.TxDecoder
	handler heirloom.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application.
func NewBaseApp(
	store *StoreApp,
	decoder heirloom.TxDecoder,
	handler heirloom.Handler,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx implements abci.Application. It dispatches to the handler.
// Events of the result are returned as tags.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return heirloom.DeliverTxError(err, b.debug)
	}

	ctx := heirloom.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", heirloom.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return heirloom.DeliverOrError(res, err, b.debug)
}

// CheckTx implements abci.Application. It dispatches to the handler.
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return heirloom.CheckTxError(err, b.debug)
	}

	ctx := heirloom.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", heirloom.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return heirloom.CheckOrError(res, err, b.debug)
}

// loadTx calls the decoder, and captures any panics.
func (b BaseApp) loadTx(txBytes []byte) (tx heirloom.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
