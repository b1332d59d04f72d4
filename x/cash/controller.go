package cash

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
)

// Receiver is notified about every transfer of the native value, after the
// balances were updated. Returning an error rejects the transfer.
type Receiver interface {
	ReceiveCash(ctx paysplit.Context, db paysplit.KVStore, src, dest paysplit.Address, amount coin.Amount) error
}

// ReceiverFunc adapts a function to the Receiver interface.
type ReceiverFunc func(ctx paysplit.Context, db paysplit.KVStore, src, dest paysplit.Address, amount coin.Amount) error

func (fn ReceiverFunc) ReceiveCash(ctx paysplit.Context, db paysplit.KVStore, src, dest paysplit.Address, amount coin.Amount) error {
	return fn(ctx, db, src, dest, amount)
}

// Controller is the functionality needed by cash.Handler and other
// extensions that move the native value.
type Controller struct {
	bucket    WalletBucket
	receivers []Receiver
}

// NewController returns a controller that notifies given receivers about
// every transfer, in the given order.
func NewController(receivers ...Receiver) Controller {
	return Controller{
		bucket:    NewBucket(),
		receivers: receivers,
	}
}

// Balance returns the amount held by given account. An unknown account
// holds nothing.
func (c Controller) Balance(db paysplit.ReadOnlyKVStore, addr paysplit.Address) (coin.Amount, error) {
	w, err := c.bucket.GetOrCreate(db, addr)
	if err != nil {
		return 0, errors.Wrap(err, "cannot load wallet")
	}
	return w.Amount, nil
}

// Issue adds the given amount to the destination account. Fails if it
// overflows the wallet.
func (c Controller) Issue(db paysplit.KVStore, dest paysplit.Address, amount coin.Amount) error {
	w, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if w.Amount, err = w.Amount.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, w)
}

// Transfer moves the given amount from src to dest. If src doesn't have
// sufficient funds, or any receiver rejects the transfer, it fails.
// On failure the caller must discard all changes made to db.
func (c Controller) Transfer(ctx paysplit.Context, db paysplit.KVStore, src, dest paysplit.Address, amount coin.Amount) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.bucket.GetOrCreate(db, src)
	if err != nil {
		return err
	}
	if sender.Amount, err = sender.Amount.Sub(amount); err != nil {
		return err
	}
	if err := c.bucket.Save(db, src, sender); err != nil {
		return err
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if recipient.Amount, err = recipient.Amount.Add(amount); err != nil {
		return err
	}
	if err := c.bucket.Save(db, dest, recipient); err != nil {
		return err
	}

	for _, r := range c.receivers {
		if err := r.ReceiveCash(ctx, db, src, dest, amount); err != nil {
			return errors.Wrap(err, "transfer rejected")
		}
	}
	return nil
}
