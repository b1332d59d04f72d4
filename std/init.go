package std

import (
	"encoding/json"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/app"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/crypto"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/x/cash"
	"github.com/iov-one/paysplit/x/sigs"
	"github.com/iov-one/paysplit/x/splitter"
)

// DevGenesis returns a genesis with one rich account and a simple factory,
// to use for dev mode.
func DevGenesis(chainID string, rich paysplit.Address, amount coin.Amount) (*app.Genesis, error) {
	if !paysplit.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	accounts, err := json.Marshal([]cash.GenesisAccount{
		{Address: rich, Amount: amount},
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	splitters, err := json.Marshal(splitter.Genesis{
		Factories: []splitter.GenesisFactory{{Clonable: false}},
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &app.Genesis{
		ChainID: chainID,
		AppState: paysplit.Options{
			"cash":     accounts,
			"splitter": splitters,
		},
	}, nil
}

// SignedTx serializes msg into a transaction signed by the key with its
// next sequence, as read from db.
func SignedTx(codec *app.Codec, db paysplit.ReadOnlyKVStore, chainID string, key *crypto.PrivateKey, msg paysplit.Msg) ([]byte, error) {
	tx, err := codec.NewTx(msg)
	if err != nil {
		return nil, err
	}
	seq, err := sigs.NextSequence(db, key.PublicKey())
	if err != nil {
		return nil, errors.Wrap(err, "sequence")
	}
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	tx.Signatures = append(tx.Signatures, sig)
	return codec.Encode(tx)
}
