package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/commands/server"
	"github.com/heirloom-labs/heirloom/crypto"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/x/liveness"
	"github.com/heirloom-labs/heirloom/x/registry"
	abci "github.com/tendermint/tendermint/abci/types"
)

// DefaultInactivityThreshold is one year, in seconds.
const DefaultInactivityThreshold = 365 * 24 * 60 * 60

// GenInitOptions will produce some basic options for one account, to use
// for dev mode. The account administers the liveness configuration and
// holds one unit of the "genesis" asset.
//
// The address of the account can be given as the first argument. If not
// given, a new key is generated and its seed printed out.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr heirloom.Address
	if len(args) > 0 {
		a, err := heirloom.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "owner address")
		}
		addr = a
	} else {
		key := crypto.GenPrivateKey()
		addr = key.PublicKey().Address()
		out, err := json.MarshalIndent(struct {
			Address heirloom.Address `json:"address"`
			Seed    string           `json:"seed"`
		}{addr, hex.EncodeToString(key.Seed())}, "", "  ")
		if err != nil {
			return nil, err
		}
		fmt.Println(string(out))
	}
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner address")
	}

	state := map[string]interface{}{
		"registry": registry.Genesis{
			Holdings: []registry.GenesisHolding{
				{Holder: addr, AssetID: "genesis", Amount: 1},
			},
		},
		"conf": map[string]interface{}{
			"liveness": liveness.Configuration{
				Metadata:            &heirloom.Metadata{Schema: 1},
				Owner:               addr,
				InactivityThreshold: DefaultInactivityThreshold,
			},
		},
	}
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command.
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "heirloom.db")
	}

	application, err := Application("heirloom", Stack(), TxDecoder, dbPath, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(options.Logger)
	return application, nil
}
