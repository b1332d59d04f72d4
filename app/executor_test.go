package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/paysplittest"
	"github.com/iov-one/paysplit/paysplittest/assert"
	"github.com/iov-one/paysplit/store/iavl"
	"github.com/iov-one/paysplit/x/cash"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

func newTestExecutor(t *testing.T, h paysplit.Handler) (*Executor, *Codec) {
	t.Helper()
	codec := NewCodec()
	codec.Register(&cash.SendMsg{})
	exec, err := NewExecutor(iavl.NewMemCommitStore(), h, codec, nil, false)
	require.NoError(t, err)
	return exec, codec
}

func encodeSend(t *testing.T, codec *Codec) []byte {
	t.Helper()
	tx, err := codec.NewTx(&cash.SendMsg{Amount: 1})
	require.NoError(t, err)
	raw, err := codec.Encode(tx)
	require.NoError(t, err)
	return raw
}

func queryKey(t *testing.T, exec *Executor, key []byte) []byte {
	t.Helper()
	var val []byte
	err := exec.Query(func(db paysplit.ReadOnlyKVStore) error {
		var err error
		val, err = db.Get(key)
		return err
	})
	require.NoError(t, err)
	return val
}

func TestExecutorInitChain(t *testing.T) {
	h := &paysplittest.Handler{}
	exec, _ := newTestExecutor(t, h)
	assert.Equal(t, "", exec.ChainID())
	assert.Equal(t, int64(1), exec.Height())

	var got []byte
	greeter := initFunc(func(opts paysplit.Options, db paysplit.KVStore) error {
		var v string
		if err := opts.ReadOptions("greeting", &v); err != nil {
			return err
		}
		got = []byte(v)
		return db.Set([]byte("greeting"), got)
	})
	gen := &Genesis{
		ChainID:  "paysplit-test",
		AppState: paysplit.Options{"greeting": json.RawMessage(`"hello"`)},
	}
	require.NoError(t, exec.InitChain(gen, ChainInitializers(greeter)))
	assert.Equal(t, "paysplit-test", exec.ChainID())
	assert.Equal(t, int64(2), exec.Height())
	assert.Equal(t, []byte("hello"), queryKey(t, exec, []byte("greeting")))

	err := exec.InitChain(gen, ChainInitializers())
	assert.IsErr(t, errors.ErrState, err)
}

func TestExecutorInvalidGenesis(t *testing.T) {
	exec, _ := newTestExecutor(t, &paysplittest.Handler{})

	err := exec.InitChain(&Genesis{ChainID: "x"}, ChainInitializers())
	assert.IsErr(t, errors.ErrInput, err)

	failing := initFunc(func(paysplit.Options, paysplit.KVStore) error {
		return errors.Wrap(errors.ErrState, "broken")
	})
	err = exec.InitChain(&Genesis{ChainID: "paysplit-test"}, failing)
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, "", exec.ChainID())
}

func TestExecutorDeliver(t *testing.T) {
	h := &paysplittest.Handler{
		WriteKey:      []byte("written"),
		WriteValue:    []byte("value"),
		DeliverResult: paysplit.DeliverResult{Data: []byte("data")},
		Events:        []paysplit.Event{paysplit.NewEvent("EthSplit", "amount", 5)},
	}
	exec, codec := newTestExecutor(t, h)
	raw := encodeSend(t, codec)

	res := exec.DeliverTx(raw)
	assert.Equal(t, abci.CodeTypeOK, res.Code)
	assert.Equal(t, []byte("data"), res.Data)
	require.Equal(t, 1, len(res.Tags))
	assert.Equal(t, []byte("EthSplit.amount"), res.Tags[0].Key)
	assert.Equal(t, []byte("5"), res.Tags[0].Value)
	assert.Equal(t, []byte("value"), queryKey(t, exec, []byte("written")))

	id, err := exec.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.Equal(t, int64(2), exec.Height())
}

func TestExecutorRollback(t *testing.T) {
	h := &paysplittest.Handler{
		WriteKey:   []byte("written"),
		WriteValue: []byte("value"),
		DeliverErr: errors.Wrap(errors.ErrTransfer, "rejected"),
		Events:     []paysplit.Event{paysplit.NewEvent("EthSplit", "amount", 5)},
	}
	exec, codec := newTestExecutor(t, h)

	res := exec.DeliverTx(encodeSend(t, codec))
	assert.Equal(t, errors.ErrTransfer.ABCICode(), res.Code)
	assert.Equal(t, 0, len(res.Tags))
	assert.Nil(t, queryKey(t, exec, []byte("written")))
}

func TestExecutorCheckDoesNotWrite(t *testing.T) {
	h := &paysplittest.Handler{CheckResult: paysplit.CheckResult{GasAllocated: 42}}
	exec, codec := newTestExecutor(t, h)

	res := exec.CheckTx(encodeSend(t, codec))
	assert.Equal(t, abci.CodeTypeOK, res.Code)
	assert.Equal(t, int64(42), res.GasWanted)

	res = exec.CheckTx([]byte{0xff, 0xff})
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)
	assert.Equal(t, 1, h.CheckCallCount())
}

func TestExecutorChainIDWithinQuery(t *testing.T) {
	exec, _ := newTestExecutor(t, &paysplittest.Handler{})
	require.NoError(t, exec.InitChain(&Genesis{ChainID: "paysplit-test"}, ChainInitializers()))

	got := make(chan string, 1)
	go func() {
		_ = exec.Query(func(paysplit.ReadOnlyKVStore) error {
			got <- exec.ChainID()
			return nil
		})
	}()

	select {
	case id := <-got:
		assert.Equal(t, "paysplit-test", id)
	case <-time.After(3 * time.Second):
		t.Fatal("chain ID not readable while a query is running")
	}
}

type initFunc func(paysplit.Options, paysplit.KVStore) error

func (fn initFunc) FromGenesis(opts paysplit.Options, db paysplit.KVStore) error {
	return fn(opts, db)
}
