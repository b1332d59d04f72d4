package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/app"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/std"
	"github.com/iov-one/paysplit/store/iavl"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	configFile  = "config.toml"
	genesisFile = "genesis.json"
	dataDir     = "data"
	keysDir     = "keys"
)

// node is an application opened on the state stored in a home directory.
type node struct {
	home   string
	cfg    Config
	kv     *iavl.CommitStore
	exec   *app.Executor
	ctrl   std.Controllers
	codec  *app.Codec
	logger log.Logger
}

func openNode(home string, logOut io.Writer) (*node, error) {
	cfg, err := loadConfig(filepath.Join(home, configFile))
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.LogLevel, logOut)
	if err != nil {
		return nil, err
	}

	dbPath := ""
	if cfg.DBBackend == backendLevelDB {
		dbPath = filepath.Join(home, dataDir, "state.db")
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "data dir: %s", err)
		}
	}
	kv, err := std.CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	exec, ctrl, err := std.Application(kv, logger, cfg.Debug)
	if err != nil {
		kv.Close()
		return nil, err
	}
	return &node{
		home:   home,
		cfg:    cfg,
		kv:     kv,
		exec:   exec,
		ctrl:   ctrl,
		codec:  std.Codec(),
		logger: logger,
	}, nil
}

func (n *node) Close() {
	n.kv.Close()
}

// query runs fn against the current state.
func (n *node) query(fn func(db paysplit.ReadOnlyKVStore) error) error {
	return n.exec.Query(fn)
}

func newLogger(level string, w io.Writer) (log.Logger, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w))
	return log.NewFilter(logger, opt).With("module", "paysplit"), nil
}
