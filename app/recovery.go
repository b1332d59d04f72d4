package app

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ paysplit.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx paysplit.Context, store paysplit.KVStore, tx paysplit.Tx, next paysplit.Checker) (_ *paysplit.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx paysplit.Context, store paysplit.KVStore, tx paysplit.Tx, next paysplit.Deliverer) (_ *paysplit.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
