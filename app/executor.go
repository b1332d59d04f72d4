package app

import (
	"context"
	"sync"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Executor runs transactions against a committed store, one at a time.
//
// Every transaction is executed in its own savepoint. Changes and events
// of a failed transaction are discarded, successful ones are written to
// the working state and persisted by Commit.
type Executor struct {
	mu      sync.Mutex
	store   paysplit.CommitKVStore
	handler paysplit.Handler
	codec   *Codec
	logger  log.Logger
	debug   bool

	// chainID is written once by InitChain. It has its own lock so that
	// it can be read while mu is held.
	idMu    sync.RWMutex
	chainID string
}

// NewExecutor returns an executor using the latest committed state of the
// store.
func NewExecutor(store paysplit.CommitKVStore, handler paysplit.Handler, codec *Codec, logger log.Logger, debug bool) (*Executor, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "cannot load state")
	}
	chainID, err := loadChainID(store)
	if err != nil {
		return nil, err
	}
	return &Executor{
		store:   store,
		handler: handler,
		codec:   codec,
		logger:  logger,
		debug:   debug,
		chainID: chainID,
	}, nil
}

// ChainID returns the chain ID the state was initialized with, or an empty
// string before InitChain.
func (e *Executor) ChainID() string {
	e.idMu.RLock()
	defer e.idMu.RUnlock()
	return e.chainID
}

// Height returns the height next transactions are executed at.
func (e *Executor) Height() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.height()
}

func (e *Executor) height() int64 {
	return e.store.LatestVersion().Version + 1
}

// InitChain stores the chain ID, loads the app state using the
// initializer and commits the result. A state can be initialized only once.
func (e *Executor) InitChain(gen *Genesis, initializer paysplit.Initializer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.chainID != "" {
		return errors.Wrapf(errors.ErrState, "already initialized for chain %s", e.chainID)
	}
	cache := e.store.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if err := initializer.FromGenesis(gen.AppState, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "cannot write genesis")
	}
	if _, err := e.store.Commit(); err != nil {
		return errors.Wrap(err, "cannot commit genesis")
	}
	e.idMu.Lock()
	e.chainID = gen.ChainID
	e.idMu.Unlock()
	e.logger.Info("chain initialized", "chain_id", gen.ChainID)
	return nil
}

func (e *Executor) context(call string, events *paysplit.EventLog) paysplit.Context {
	height := e.height()
	ctx := paysplit.WithHeight(context.Background(), height)
	if e.chainID != "" {
		ctx = paysplit.WithChainID(ctx, e.chainID)
	}
	ctx = paysplit.WithLogger(ctx, e.logger.With("call", call, "height", height))
	return paysplit.WithEventLog(ctx, events)
}

// CheckTx validates a transaction without modifying the state.
func (e *Executor) CheckTx(raw []byte) abci.ResponseCheckTx {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.codec.Decode(raw)
	if err != nil {
		return CheckTxResult(nil, err, e.debug)
	}
	cache := e.store.CacheWrap()
	defer cache.Discard()

	var events paysplit.EventLog
	res, err := e.handler.Check(e.context("check_tx", &events), cache, tx)
	return CheckTxResult(res, err, e.debug)
}

// DeliverTx executes a transaction. All changes are kept in the working
// state only if the execution succeeds.
func (e *Executor) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.codec.Decode(raw)
	if err != nil {
		return DeliverTxResult(nil, nil, err, e.debug)
	}
	cache := e.store.CacheWrap()
	var events paysplit.EventLog
	res, err := e.handler.Deliver(e.context("deliver_tx", &events), cache, tx)
	if err != nil {
		cache.Discard()
		return DeliverTxResult(nil, nil, err, e.debug)
	}
	if err := cache.Write(); err != nil {
		return DeliverTxResult(nil, nil, errors.Wrap(err, "cannot write state"), e.debug)
	}
	return DeliverTxResult(res, events.Events(), nil, e.debug)
}

// Commit persists the working state as a new version.
func (e *Executor) Commit() (paysplit.CommitID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, err := e.store.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	e.logger.Debug("committed", "version", id.Version)
	return id, nil
}

// Query runs fn against the working state. The state must not be modified.
// Only ChainID may be called on the executor from within fn.
func (e *Executor) Query(fn func(db paysplit.ReadOnlyKVStore) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache := e.store.CacheWrap()
	defer cache.Discard()
	return fn(cache)
}
