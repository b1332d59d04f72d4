package splitter

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/x"
)

const (
	createTemplateCost  int64 = 200
	createFactoryCost   int64 = 200
	createSplitterCost  int64 = 100
	updateRecipientCost int64 = 20
	ownershipCost       int64 = 10
	splitCost           int64 = 50
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r paysplit.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(pathCreateTemplateMsg, &createTemplateHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathCreateFactoryMsg, &createFactoryHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathCreateSplitterMsg, &createSplitterHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathAddRecipientMsg, &addRecipientHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathRemoveRecipientMsg, &removeRecipientHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathProposeOwnerMsg, &proposeOwnerHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathClaimOwnershipMsg, &claimOwnershipHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathSplitMsg, &splitHandler{ctrl: ctrl})
	r.Handle(pathSplitTokensMsg, &splitTokensHandler{ctrl: ctrl})
}

func requireSigner(ctx paysplit.Context, auth x.Authenticator) (paysplit.Address, error) {
	signer := x.MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return signer.Address(), nil
}

type createTemplateHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ paysplit.Handler = (*createTemplateHandler)(nil)

func (h *createTemplateHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: createTemplateCost}, nil
}

func (h *createTemplateHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.ctrl.CreateTemplate(db, msg.MaxRecipients)
	if err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{Data: addr}, nil
}

func (h *createTemplateHandler) validate(ctx paysplit.Context, tx paysplit.Tx) (*CreateTemplateMsg, error) {
	var msg CreateTemplateMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := requireSigner(ctx, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}

type createFactoryHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ paysplit.Handler = (*createFactoryHandler)(nil)

func (h *createFactoryHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: createFactoryCost}, nil
}

func (h *createFactoryHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.ctrl.CreateFactory(db, msg.Template, msg.MaxRecipients)
	if err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{Data: addr}, nil
}

func (h *createFactoryHandler) validate(ctx paysplit.Context, tx paysplit.Tx) (*CreateFactoryMsg, error) {
	var msg CreateFactoryMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := requireSigner(ctx, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}

type createSplitterHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ paysplit.Handler = (*createSplitterHandler)(nil)

func (h *createSplitterHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: createSplitterCost}, nil
}

func (h *createSplitterHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, creator, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.ctrl.Create(ctx, db, msg.Factory, creator)
	if err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{Data: addr}, nil
}

func (h *createSplitterHandler) validate(ctx paysplit.Context, tx paysplit.Tx) (*CreateSplitterMsg, paysplit.Address, error) {
	var msg CreateSplitterMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	creator, err := requireSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, creator, nil
}

type addRecipientHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ paysplit.Handler = (*addRecipientHandler)(nil)

func (h *addRecipientHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	var msg AddRecipientMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.administrated(ctx, h.auth, db, msg.Splitter); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: updateRecipientCost}, nil
}

func (h *addRecipientHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	var msg AddRecipientMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.AddRecipient(ctx, h.auth, db, msg.Splitter, msg.Recipient); err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{}, nil
}

type removeRecipientHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ paysplit.Handler = (*removeRecipientHandler)(nil)

func (h *removeRecipientHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	var msg RemoveRecipientMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.administrated(ctx, h.auth, db, msg.Splitter); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: updateRecipientCost}, nil
}

func (h *removeRecipientHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	var msg RemoveRecipientMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.RemoveRecipient(ctx, h.auth, db, msg.Splitter, msg.Recipient); err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{}, nil
}

type proposeOwnerHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ paysplit.Handler = (*proposeOwnerHandler)(nil)

func (h *proposeOwnerHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	var msg ProposeOwnerMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.administrated(ctx, h.auth, db, msg.Splitter); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: ownershipCost}, nil
}

func (h *proposeOwnerHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	var msg ProposeOwnerMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.ProposeOwner(ctx, h.auth, db, msg.Splitter, msg.Candidate); err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{}, nil
}

type claimOwnershipHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ paysplit.Handler = (*claimOwnershipHandler)(nil)

func (h *claimOwnershipHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	var msg ClaimOwnershipMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	s, err := h.ctrl.Splitter(db, msg.Splitter)
	if err != nil {
		return nil, err
	}
	// Claiming a loaded copy does not modify the store.
	if err := s.Gate.Claim(ctx, h.auth); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: ownershipCost}, nil
}

func (h *claimOwnershipHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	var msg ClaimOwnershipMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.ClaimOwnership(ctx, h.auth, db, msg.Splitter); err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{}, nil
}

type splitHandler struct {
	ctrl *Controller
}

var _ paysplit.Handler = (*splitHandler)(nil)

func (h *splitHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	var msg SplitMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.Splitter(db, msg.Splitter); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: splitCost}, nil
}

func (h *splitHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	var msg SplitMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	amount, err := h.ctrl.SplitValue(ctx, db, msg.Splitter)
	if err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{Data: amount.Bytes()}, nil
}

type splitTokensHandler struct {
	ctrl *Controller
}

var _ paysplit.Handler = (*splitTokensHandler)(nil)

func (h *splitTokensHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	var msg SplitTokensMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.Splitter(db, msg.Splitter); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: splitCost}, nil
}

func (h *splitTokensHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	var msg SplitTokensMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	amount, err := h.ctrl.SplitTokens(ctx, db, msg.Splitter, msg.Token)
	if err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{Data: amount.Bytes()}, nil
}
