package splitter

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/store"
	"github.com/iov-one/paysplit/x/token"
)

// Ledger is an asset that can be split. cash.Controller is a Ledger of the
// native value, TokenLedger adapts a single token.
type Ledger interface {
	Balance(db paysplit.ReadOnlyKVStore, holder paysplit.Address) (coin.Amount, error)
	Transfer(ctx paysplit.Context, db paysplit.KVStore, from, to paysplit.Address, amount coin.Amount) error
}

// TokenLedger returns a Ledger moving given token.
func TokenLedger(ctrl *token.Controller, tok paysplit.Address) Ledger {
	return tokenLedger{ctrl: ctrl, tok: tok}
}

type tokenLedger struct {
	ctrl *token.Controller
	tok  paysplit.Address
}

func (l tokenLedger) Balance(db paysplit.ReadOnlyKVStore, holder paysplit.Address) (coin.Amount, error) {
	return l.ctrl.Balance(db, l.tok, holder)
}

func (l tokenLedger) Transfer(ctx paysplit.Context, db paysplit.KVStore, from, to paysplit.Address, amount coin.Amount) error {
	return l.ctrl.Transfer(ctx, db, l.tok, from, to, amount)
}

// Split distributes the balance held by the instance evenly among the
// recipients, in the given order. The remainder of the division stays with
// the instance. The distributed amount is returned.
//
// Nothing is transferred when there are no recipients or the balance is
// too small to pay each recipient at least one unit.
//
// Either all transfers succeed or none of them is written to db. Any
// failure is reported as ErrTransfer.
func Split(ctx paysplit.Context, db paysplit.KVStore, ledger Ledger, instance paysplit.Address, recipients []paysplit.Address) (coin.Amount, error) {
	if len(recipients) == 0 {
		return 0, nil
	}
	balance, err := ledger.Balance(db, instance)
	if err != nil {
		return 0, errors.Wrap(err, "balance")
	}
	share, rest, err := balance.Split(len(recipients))
	if err != nil {
		return 0, err
	}
	if share.IsZero() {
		return 0, nil
	}

	log := paysplit.GetLogger(ctx)
	err = store.Atomic(db, func(kv store.KVStore) error {
		for _, r := range recipients {
			if err := ledger.Transfer(ctx, kv, instance, r, share); err != nil {
				log.Debug("split transfer failed", "splitter", instance, "recipient", r, "err", err)
				return errors.Wrapf(errors.ErrTransfer, "to %s: %s", r, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	total := balance - rest
	log.Debug("split", "splitter", instance, "recipients", len(recipients), "share", share, "total", total, "rest", rest)
	return total, nil
}
