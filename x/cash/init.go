package cash

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use paysplit.Address, so address in hex, not base64
type GenesisAccount struct {
	Address paysplit.Address `json:"address"`
	Amount  coin.Amount      `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ paysplit.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts paysplit.Options, kv paysplit.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController()
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return err
		}
		if err := ctrl.Issue(kv, acct.Address, acct.Amount); err != nil {
			return err
		}
	}
	return nil
}
