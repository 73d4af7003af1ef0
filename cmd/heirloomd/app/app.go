/*
Package app links together all the various components to construct the
heirloom application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/app"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/store/iavl"
	"github.com/heirloom-labs/heirloom/x"
	"github.com/heirloom-labs/heirloom/x/auth"
	"github.com/heirloom-labs/heirloom/x/consensus"
	"github.com/heirloom-labs/heirloom/x/escrow"
	"github.com/heirloom-labs/heirloom/x/liveness"
	"github.com/heirloom-labs/heirloom/x/registry"
	"github.com/heirloom-labs/heirloom/x/utils"
	"github.com/heirloom-labs/heirloom/x/will"
)

// Authenticator returns the authentication used by all extensions.
func Authenticator() x.Authenticator {
	return auth.Authenticate{}
}

// Chain returns a chain of decorators, to handle logging, recovery and
// authentication. Both check and deliver run in a savepoint, so a failed
// transaction never leaves partial state behind.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		auth.NewDecorator(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	)
}

// Router returns a router dispatching to all extensions. The asset
// registry, the liveness tracker and the escrow vault are shared by the
// engines.
func Router(authFn x.Authenticator) *app.Router {
	tracker := liveness.NewTracker()
	ctrl := registry.NewController(tracker.ActivityHook())
	vault := escrow.NewVault(ctrl)

	r := app.NewRouter()
	registry.RegisterRoutes(r, authFn, ctrl)
	liveness.RegisterRoutes(r, authFn)
	will.RegisterRoutes(r, authFn, will.NewEngine(ctrl, tracker, vault))
	consensus.RegisterRoutes(r, authFn, ctrl, consensus.NewEngine(ctrl))
	return r
}

// QueryRouter returns a query router exposing the buckets of all
// extensions.
func QueryRouter() heirloom.QueryRouter {
	r := heirloom.NewQueryRouter()
	r.RegisterAll(
		registry.RegisterQuery,
		liveness.RegisterQuery,
		escrow.RegisterQuery,
		will.RegisterQuery,
		consensus.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() heirloom.Initializer {
	return app.ChainInitializers(
		registry.Initializer{},
		liveness.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator chain. This
// can be passed into BaseApp.
func Stack() heirloom.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with the given arguments.
// If you are not sure what to use for the Handler, just use Stack().
func Application(name string, h heirloom.Handler, tx heirloom.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background()).
		WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists the data to
// the named path. An empty path gives an in memory store.
func CommitKVStore(dbPath string) (heirloom.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is removed.
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	kv, err := iavl.NewCommitStore(dir, name)
	if err != nil {
		return nil, err
	}
	return kv, nil
}
