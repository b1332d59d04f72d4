package token

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/x"
)

const (
	createTokenCost int64 = 100
	transferCost    int64 = 10
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r paysplit.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(pathCreateMsg, &createHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathTransferMsg, &transferHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathTransferAndCallMsg, &transferAndCallHandler{auth: auth, ctrl: ctrl})
}

type createHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ paysplit.Handler = (*createHandler)(nil)

func (h *createHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: createTokenCost}, nil
}

func (h *createHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, holder, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.ctrl.Create(db, &Token{
		Name:   msg.Name,
		Symbol: msg.Symbol,
		Supply: msg.Supply,
	}, holder)
	if err != nil {
		return nil, err
	}
	paysplit.Emit(ctx, paysplit.NewEvent("TokenCreated",
		"token", addr,
		"holder", holder,
		"supply", msg.Supply))
	return &paysplit.DeliverResult{Data: addr}, nil
}

func (h *createHandler) validate(ctx paysplit.Context, tx paysplit.Tx) (*CreateMsg, paysplit.Address, error) {
	var msg CreateMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return &msg, signer.Address(), nil
}

type transferHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ paysplit.Handler = (*transferHandler)(nil)

func (h *transferHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: transferCost}, nil
}

func (h *transferHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(ctx, db, msg.Token, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{}, nil
}

func (h *transferHandler) validate(ctx paysplit.Context, tx paysplit.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return &msg, nil
}

type transferAndCallHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ paysplit.Handler = (*transferAndCallHandler)(nil)

func (h *transferAndCallHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: transferCost}, nil
}

func (h *transferAndCallHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.TransferAndCall(ctx, db, msg.Token, msg.Source, msg.Destination, msg.Amount, msg.Data); err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{}, nil
}

func (h *transferAndCallHandler) validate(ctx paysplit.Context, tx paysplit.Tx) (*TransferAndCallMsg, error) {
	var msg TransferAndCallMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return &msg, nil
}
