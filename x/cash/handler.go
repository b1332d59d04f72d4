package cash

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r paysplit.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ paysplit.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx paysplit.Context, store paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the value from source to destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx paysplit.Context, store paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(ctx, store, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx paysplit.Context, tx paysplit.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
