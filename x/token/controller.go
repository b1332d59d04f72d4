package token

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
)

// Transfer describes a single movement of tokens.
type Transfer struct {
	Token  paysplit.Address
	From   paysplit.Address
	To     paysplit.Address
	Amount coin.Amount
	// Data is the payload given to TransferAndCall.
	Data []byte
	// Call is set when the transfer was made using TransferAndCall and
	// the recipient is expected to react.
	Call bool
}

// Receiver is notified about every token transfer, after the balances were
// updated. Returning an error rejects the transfer.
type Receiver interface {
	ReceiveTokens(ctx paysplit.Context, db paysplit.KVStore, tr Transfer) error
}

// ReceiverFunc adapts a function to the Receiver interface.
type ReceiverFunc func(ctx paysplit.Context, db paysplit.KVStore, tr Transfer) error

func (fn ReceiverFunc) ReceiveTokens(ctx paysplit.Context, db paysplit.KVStore, tr Transfer) error {
	return fn(ctx, db, tr)
}

// Controller manages tokens and their balances.
type Controller struct {
	tokens    orm.ModelBucket
	holdings  HoldingBucket
	receivers []Receiver
}

// NewController returns a token controller without any receivers.
func NewController() *Controller {
	return &Controller{
		tokens:   NewTokenBucket(),
		holdings: NewHoldingBucket(),
	}
}

// AddReceiver registers a receiver that is notified about every transfer.
// Receivers are notified in registration order.
func (c *Controller) AddReceiver(r Receiver) {
	c.receivers = append(c.receivers, r)
}

// Create registers a new token and assigns its whole supply to the holder.
// The address of the new token is returned.
func (c *Controller) Create(db paysplit.KVStore, t *Token, holder paysplit.Address) (paysplit.Address, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	key, err := tokenSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "token sequence")
	}
	addr := Address(key)
	if _, err := c.tokens.Put(db, addr, t); err != nil {
		return nil, errors.Wrap(err, "cannot save token")
	}
	if t.Supply > 0 {
		if err := c.credit(db, addr, holder, t.Supply); err != nil {
			return nil, err
		}
	}
	return addr, nil
}

// Token returns the description of the token with given address.
func (c *Controller) Token(db paysplit.ReadOnlyKVStore, tok paysplit.Address) (*Token, error) {
	var t Token
	if err := c.tokens.One(db, tok, &t); err != nil {
		return nil, errors.Wrap(err, "token")
	}
	return &t, nil
}

// Balance returns the amount of given token held by the account.
func (c *Controller) Balance(db paysplit.ReadOnlyKVStore, tok, holder paysplit.Address) (coin.Amount, error) {
	h, err := c.holdings.GetOrCreate(db, tok, holder)
	if err != nil {
		return 0, errors.Wrap(err, "cannot load holding")
	}
	return h.Amount, nil
}

// Transfer moves tokens between accounts. Receivers are notified, but the
// transfer is not flagged as a call.
// On failure the caller must discard all changes made to db.
func (c *Controller) Transfer(ctx paysplit.Context, db paysplit.KVStore, tok, from, to paysplit.Address, amount coin.Amount) error {
	return c.transfer(ctx, db, Transfer{Token: tok, From: from, To: to, Amount: amount})
}

// TransferAndCall moves tokens between accounts and flags the transfer as
// a call, so that a receiver responsible for the destination reacts to it.
// On failure the caller must discard all changes made to db.
func (c *Controller) TransferAndCall(ctx paysplit.Context, db paysplit.KVStore, tok, from, to paysplit.Address, amount coin.Amount, data []byte) error {
	return c.transfer(ctx, db, Transfer{Token: tok, From: from, To: to, Amount: amount, Data: data, Call: true})
}

func (c *Controller) transfer(ctx paysplit.Context, db paysplit.KVStore, tr Transfer) error {
	if tr.Amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	if err := tr.To.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := c.tokens.Has(db, tr.Token); err != nil {
		return errors.Wrap(err, "token")
	}

	sender, err := c.holdings.GetOrCreate(db, tr.Token, tr.From)
	if err != nil {
		return err
	}
	if sender.Amount, err = sender.Amount.Sub(tr.Amount); err != nil {
		return err
	}
	if err := c.holdings.Save(db, tr.Token, tr.From, sender); err != nil {
		return err
	}
	if err := c.credit(db, tr.Token, tr.To, tr.Amount); err != nil {
		return err
	}

	for _, r := range c.receivers {
		if err := r.ReceiveTokens(ctx, db, tr); err != nil {
			return errors.Wrap(err, "transfer rejected")
		}
	}
	return nil
}

func (c *Controller) credit(db paysplit.KVStore, tok, holder paysplit.Address, amount coin.Amount) error {
	h, err := c.holdings.GetOrCreate(db, tok, holder)
	if err != nil {
		return err
	}
	if h.Amount, err = h.Amount.Add(amount); err != nil {
		return err
	}
	return c.holdings.Save(db, tok, holder, h)
}

// Mint creates new tokens and assigns them to the holder. The token supply
// is increased accordingly.
func (c *Controller) Mint(db paysplit.KVStore, tok, holder paysplit.Address, amount coin.Amount) error {
	t, err := c.Token(db, tok)
	if err != nil {
		return err
	}
	if t.Supply, err = t.Supply.Add(amount); err != nil {
		return errors.Wrap(err, "supply")
	}
	if _, err := c.tokens.Put(db, tok, t); err != nil {
		return errors.Wrap(err, "cannot save token")
	}
	return c.credit(db, tok, holder, amount)
}
