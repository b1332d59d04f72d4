package token

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
)

const optKey = "token"

// GenesisToken describes a token created at genesis, together with its
// initial holders. Tokens are created in the declared order, so the token
// address is known upfront.
type GenesisToken struct {
	Name    string          `json:"name"`
	Symbol  string          `json:"symbol"`
	Holders []GenesisHolder `json:"holders"`
}

// GenesisHolder is a single initial token balance.
type GenesisHolder struct {
	Address paysplit.Address `json:"address"`
	Amount  coin.Amount      `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ paysplit.Initializer = Initializer{}

// FromGenesis creates all declared tokens and their balances.
func (Initializer) FromGenesis(opts paysplit.Options, kv paysplit.KVStore) error {
	var tokens []GenesisToken
	if err := opts.ReadOptions(optKey, &tokens); err != nil {
		return err
	}
	ctrl := NewController()
	for i, t := range tokens {
		addr, err := ctrl.Create(kv, &Token{Name: t.Name, Symbol: t.Symbol}, nil)
		if err != nil {
			return errors.Wrapf(err, "token %d", i)
		}
		for _, h := range t.Holders {
			if err := h.Address.Validate(); err != nil {
				return errors.Wrapf(err, "token %d holder", i)
			}
			if err := ctrl.Mint(kv, addr, h.Address, h.Amount); err != nil {
				return errors.Wrapf(err, "token %d holder", i)
			}
		}
	}
	return nil
}
