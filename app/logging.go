package app

import (
	"time"

	"github.com/iov-one/paysplit"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ paysplit.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug
func (Logging) Check(ctx paysplit.Context, store paysplit.KVStore, tx paysplit.Tx, next paysplit.Checker) (*paysplit.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	logResult(ctx, tx, start, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (Logging) Deliver(ctx paysplit.Context, store paysplit.KVStore, tx paysplit.Tx, next paysplit.Deliverer) (*paysplit.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	logResult(ctx, tx, start, err, false)
	return res, err
}

func logResult(ctx paysplit.Context, tx paysplit.Tx, start time.Time, err error, check bool) {
	logger := paysplit.GetLogger(ctx).With(
		"path", paysplit.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond)
	switch {
	case err != nil && check:
		logger.Info("check failed", "err", err)
	case err != nil:
		logger.Error("deliver failed", "err", err)
	case check:
		logger.Debug("checked")
	default:
		logger.Info("delivered")
	}
}
