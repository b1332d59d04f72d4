package splitter

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/x/token"
)

// TokenReceiver splits tokens sent to a splitter instance using the
// transfer and call primitive. Register it with the token controller.
type TokenReceiver struct {
	ctrl *Controller
}

var _ token.Receiver = TokenReceiver{}

// NewTokenReceiver returns a receiver splitting tokens using given
// controller.
func NewTokenReceiver(ctrl *Controller) TokenReceiver {
	return TokenReceiver{ctrl: ctrl}
}

// ReceiveTokens runs a token split when the transfer is a call to a
// splitter. Other transfers are ignored. A failed split rejects the
// transfer.
func (r TokenReceiver) ReceiveTokens(ctx paysplit.Context, db paysplit.KVStore, tr token.Transfer) error {
	if !tr.Call {
		return nil
	}
	ok, err := r.ctrl.IsSplitter(db, tr.To)
	if err != nil || !ok {
		return err
	}
	if _, err := r.ctrl.SplitTokens(ctx, db, tr.To, tr.Token); err != nil {
		return errors.Wrap(err, "split on receive")
	}
	return nil
}
