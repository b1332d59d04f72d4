package paysplittest

import "github.com/iov-one/paysplit"

// Decorator counts the calls passing through it. When CheckErr or
// DeliverErr is set, the matching call fails with it and the next handler
// is not called. Failed calls are counted as well.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	checks   int
	delivers int
}

var _ paysplit.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx, next paysplit.Checker) (*paysplit.CheckResult, error) {
	d.checks++
	if d.CheckErr != nil {
		return &paysplit.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx, next paysplit.Deliverer) (*paysplit.DeliverResult, error) {
	d.delivers++
	if d.DeliverErr != nil {
		return &paysplit.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int   { return d.checks }
func (d *Decorator) DeliverCallCount() int { return d.delivers }
func (d *Decorator) CallCount() int        { return d.checks + d.delivers }
