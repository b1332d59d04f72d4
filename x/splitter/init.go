package splitter

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

const optKey = "splitter"

// Genesis declares splitters and factories created at genesis. Templates,
// instances and factories are created in the declared order, so their
// addresses are known upfront.
type Genesis struct {
	Splitters []GenesisSplitter `json:"splitters"`
	Factories []GenesisFactory  `json:"factories"`
}

// GenesisSplitter is an instance with its initial recipients.
type GenesisSplitter struct {
	Owner         paysplit.Address   `json:"owner"`
	MaxRecipients int32              `json:"max_recipients"`
	Recipients    []paysplit.Address `json:"recipients"`
}

// GenesisFactory is a factory. A clonable factory gets its own template,
// created right before the factory.
type GenesisFactory struct {
	Clonable      bool  `json:"clonable"`
	MaxRecipients int32 `json:"max_recipients"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ paysplit.Initializer = Initializer{}

// FromGenesis creates all declared splitters and factories.
func (Initializer) FromGenesis(opts paysplit.Options, kv paysplit.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	ctrl := NewController(nil, nil)
	for i, s := range gen.Splitters {
		addr, err := ctrl.Deploy(kv, s.Owner, s.MaxRecipients)
		if err != nil {
			return errors.Wrapf(err, "splitter %d", i)
		}
		reg := NewRegistry(addr, s.MaxRecipients)
		for _, r := range s.Recipients {
			if err := reg.Add(kv, r); err != nil {
				return errors.Wrapf(err, "splitter %d recipient %s", i, r)
			}
		}
	}
	for i, f := range gen.Factories {
		if !f.Clonable {
			if _, err := ctrl.CreateFactory(kv, nil, f.MaxRecipients); err != nil {
				return errors.Wrapf(err, "factory %d", i)
			}
			continue
		}
		tpl, err := ctrl.CreateTemplate(kv, f.MaxRecipients)
		if err != nil {
			return errors.Wrapf(err, "factory %d template", i)
		}
		if _, err := ctrl.CreateFactory(kv, tpl, 0); err != nil {
			return errors.Wrapf(err, "factory %d", i)
		}
	}
	return nil
}
