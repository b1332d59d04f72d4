package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

// Genesis file format. Each extension reads its own key of the app state.
type Genesis struct {
	ChainID  string           `json:"chain_id"`
	AppState paysplit.Options `json:"app_state"`
}

// LoadGenesis reads a genesis file.
func LoadGenesis(path string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot parse genesis: %s", err)
	}
	if !paysplit.IsValidChainID(gen.ChainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", gen.ChainID)
	}
	return &gen, nil
}

// ChainInitializers lets you initialize many extensions with one
// initializer. Initializers are called in order, aborting at the first
// error.
func ChainInitializers(inits ...paysplit.Initializer) paysplit.Initializer {
	return chainInitializer(inits)
}

type chainInitializer []paysplit.Initializer

func (c chainInitializer) FromGenesis(opts paysplit.Options, kv paysplit.KVStore) error {
	for _, i := range c {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

// _ps: is a prefix for internal data
const chainIDKey = "_ps:chainID"

type getter interface {
	Get(key []byte) ([]byte, error)
}

func loadChainID(kv getter) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv paysplit.KVStore, chainID string) error {
	if !paysplit.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
