package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/app"
	"github.com/heirloom-labs/heirloom/crypto"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/x/consensus"
	"github.com/heirloom-labs/heirloom/x/registry"
	"github.com/heirloom-labs/heirloom/x/will"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

var meta = &heirloom.Metadata{Schema: 1}

func newTestApp(t *testing.T, owner heirloom.Address, start time.Time) app.BaseApp {
	t.Helper()

	myApp, err := Application("heirloom", Stack(), TxDecoder, "", false)
	require.NoError(t, err)

	state, err := GenInitOptions([]string{owner.String()})
	require.NoError(t, err)
	myApp.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain-1",
		AppStateBytes: state,
	})
	myApp.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{Height: 1, Time: start},
	})
	return myApp
}

func signedTx(t *testing.T, signer heirloom.Condition, msg heirloom.Msg) []byte {
	t.Helper()
	bz, err := (&Tx{Msg: msg, Signer: signer}).Marshal()
	require.NoError(t, err)
	return bz
}

func deliver(t *testing.T, a app.BaseApp, signer heirloom.Condition, msg heirloom.Msg) abci.ResponseDeliverTx {
	t.Helper()
	res := a.DeliverTx(signedTx(t, signer, msg))
	require.EqualValues(t, errors.SuccessABCICode, res.Code, res.Log)
	return res
}

func tagKeys(res abci.ResponseDeliverTx) []string {
	keys := make([]string, len(res.Tags))
	for i, tag := range res.Tags {
		keys[i] = string(tag.Key)
	}
	return keys
}

func nextBlock(a app.BaseApp, height int64, now time.Time) {
	a.EndBlock(abci.RequestEndBlock{Height: height - 1})
	a.Commit()
	a.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{Height: height, Time: now},
	})
}

func TestWillLifecycle(t *testing.T) {
	start := time.Date(2019, time.April, 1, 10, 0, 0, 0, time.UTC)

	owner := crypto.GenPrivateKey().PublicKey()
	heir := crypto.GenPrivateKey().PublicKey()
	trustee := crypto.GenPrivateKey().PublicKey()

	myApp := newTestApp(t, owner.Address(), start)

	res := deliver(t, myApp, owner.Condition(), &registry.AuthorizeMsg{
		Metadata: meta,
		Operator: will.EngineCondition.Address(),
		Grant:    true,
	})
	assert.Equal(t, []string{"registry/authorization"}, tagKeys(res))

	res = deliver(t, myApp, owner.Condition(), &will.CreateMsg{
		Metadata:          meta,
		Heir:              heir.Address(),
		HeirBirthTime:     heirloom.AsUnixTime(start.AddDate(-30, 0, 0)),
		MinimumHeirAge:    18,
		AssetID:           "genesis",
		Amount:            1,
		Trustees:          []will.Trustee{{Address: trustee.Address()}},
		RequiredApprovals: 1,
	})
	assert.Equal(t, []string{"will/created"}, tagKeys(res))
	assert.Equal(t, will.WillKey(owner.Address(), 0), res.Data)

	// the owner is alive, no trustee can approve the death yet
	bad := myApp.DeliverTx(signedTx(t, trustee.Condition(), &will.ApproveDeathMsg{
		Metadata: meta,
		Owner:    owner.Address(),
		WillID:   0,
	}))
	assert.Equal(t, errors.ErrPrecondition.ABCICode(), bad.Code)

	nextBlock(myApp, 2, start.AddDate(2, 0, 0))

	res = deliver(t, myApp, trustee.Condition(), &will.ApproveDeathMsg{
		Metadata: meta,
		Owner:    owner.Address(),
		WillID:   0,
	})
	assert.Equal(t, []string{"will/death_approval"}, tagKeys(res))

	// anyone can trigger the execution
	res = deliver(t, myApp, nil, &will.ExecuteMsg{
		Metadata: meta,
		Owner:    owner.Address(),
		WillID:   0,
	})
	assert.Contains(t, tagKeys(res), "will/executed")

	balance, err := registry.NewController().Balance(myApp.DeliverStore(), heir.Address(), "genesis")
	require.NoError(t, err)
	assert.EqualValues(t, 1, balance)

	nextBlock(myApp, 3, start.AddDate(2, 0, 1))

	// committed state is visible to queries
	qres := myApp.Query(abci.RequestQuery{Path: "/wills/heir", Data: heir.Address()})
	require.EqualValues(t, errors.SuccessABCICode, qres.Code, qres.Log)
	var values app.ResultSet
	require.NoError(t, values.Unmarshal(qres.Value))
	require.Len(t, values.Results, 1)
	var w will.Will
	require.NoError(t, w.Unmarshal(values.Results[0].Data))
	assert.True(t, w.Executed)
	assert.Equal(t, "executed", w.State())

	// executed will cannot be executed again
	bad = myApp.DeliverTx(signedTx(t, nil, &will.ExecuteMsg{
		Metadata: meta,
		Owner:    owner.Address(),
		WillID:   0,
	}))
	assert.Equal(t, errors.ErrState.ABCICode(), bad.Code)
}

func TestWholeAssetTransfer(t *testing.T) {
	start := time.Date(2019, time.April, 1, 10, 0, 0, 0, time.UTC)

	owner := crypto.GenPrivateKey().PublicKey()
	recipient := crypto.GenPrivateKey().PublicKey().Address()

	myApp := newTestApp(t, owner.Address(), start)

	deliver(t, myApp, owner.Condition(), &registry.AuthorizeMsg{
		Metadata: meta,
		Operator: consensus.EngineCondition.Address(),
		Grant:    true,
	})
	res := deliver(t, myApp, owner.Condition(), &consensus.ProposeMsg{
		Metadata:  meta,
		AssetID:   "genesis",
		Recipient: recipient,
	})
	assert.Equal(t, []string{"consensus/proposed"}, tagKeys(res))

	// the only holder approves, which executes the transfer
	res = deliver(t, myApp, owner.Condition(), &consensus.ApproveMsg{
		Metadata: meta,
		AssetID:  "genesis",
	})
	assert.Contains(t, tagKeys(res), "consensus/executed")

	ctrl := registry.NewController()
	balance, err := ctrl.Balance(myApp.DeliverStore(), recipient, "genesis")
	require.NoError(t, err)
	assert.EqualValues(t, 1, balance)
	balance, err = ctrl.Balance(myApp.DeliverStore(), owner.Address(), "genesis")
	require.NoError(t, err)
	assert.EqualValues(t, 0, balance)
}

func TestRejectedTransactions(t *testing.T) {
	owner := crypto.GenPrivateKey().PublicKey()
	myApp := newTestApp(t, owner.Address(), time.Now())

	res := myApp.DeliverTx([]byte("not a transaction"))
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)

	res = myApp.DeliverTx(nil)
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)

	// creating a will requires a signature
	res = myApp.DeliverTx(signedTx(t, nil, &will.CreateMsg{
		Metadata:          meta,
		Heir:              crypto.GenPrivateKey().PublicKey().Address(),
		AssetID:           "genesis",
		Amount:            1,
		Trustees:          []will.Trustee{{Address: crypto.GenPrivateKey().PublicKey().Address()}},
		RequiredApprovals: 1,
	}))
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)
}

func TestGenInitOptions(t *testing.T) {
	owner := crypto.GenPrivateKey().PublicKey().Address()

	state, err := GenInitOptions([]string{owner.String()})
	require.NoError(t, err)

	var opts heirloom.Options
	require.NoError(t, json.Unmarshal(state, &opts))

	var gen registry.Genesis
	require.NoError(t, opts.ReadOptions("registry", &gen))
	require.Len(t, gen.Holdings, 1)
	assert.Equal(t, owner, gen.Holdings[0].Holder)

	_, err = GenInitOptions([]string{"zz"})
	assert.Error(t, err)
}

func TestCommitKVStore(t *testing.T) {
	kv, err := CommitKVStore("")
	require.NoError(t, err)
	assert.NotNil(t, kv)
}

func TestTxRoundTrip(t *testing.T) {
	signer := crypto.GenPrivateKey().PublicKey().Condition()
	msg := &will.ExecuteBatchMsg{Metadata: meta, Owner: signer.Address()}

	tx, err := TxDecoder(signedTx(t, signer, msg))
	require.NoError(t, err)

	got, err := tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, msg, got)
	assert.Equal(t, "will/execute_batch", heirloom.GetPath(tx))
}
