package paysplittest

import "github.com/iov-one/paysplit"

// Handler is a mock implementation of the paysplit.Handler interface.
//
// Each method call is counted. Set the error attributes to force an error
// response. When WriteKey is set, Deliver stores WriteValue under it before
// returning, which allows to test store rollback.
type Handler struct {
	checkCall   int
	CheckResult paysplit.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult paysplit.DeliverResult
	DeliverErr    error

	WriteKey   []byte
	WriteValue []byte
	// Events are emitted on every Deliver call, regardless of the result.
	Events []paysplit.Event
}

var _ paysplit.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	h.checkCall++
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	h.deliverCall++
	if h.WriteKey != nil {
		if err := db.Set(h.WriteKey, h.WriteValue); err != nil {
			return nil, err
		}
	}
	for _, e := range h.Events {
		paysplit.Emit(ctx, e)
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// PanicHandler panics with given value on every call.
type PanicHandler struct {
	Value interface{}
}

var _ paysplit.Handler = PanicHandler{}

func (p PanicHandler) Check(paysplit.Context, paysplit.KVStore, paysplit.Tx) (*paysplit.CheckResult, error) {
	panic(p.Value)
}

func (p PanicHandler) Deliver(paysplit.Context, paysplit.KVStore, paysplit.Tx) (*paysplit.DeliverResult, error) {
	panic(p.Value)
}
