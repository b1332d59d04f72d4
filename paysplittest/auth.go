package paysplittest

import (
	"context"
	"fmt"

	"github.com/iov-one/paysplit"
)

// Auth authenticates a fixed set of conditions: Signers followed by
// Signer, when set.
type Auth struct {
	Signer  paysplit.Condition
	Signers []paysplit.Condition
}

func (a *Auth) GetConditions(paysplit.Context) []paysplit.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append(a.Signers, a.Signer)
}

func (a *Auth) HasAddress(ctx paysplit.Context, addr paysplit.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context under Key.
type CtxAuth struct {
	Key string
}

// SetConditions returns a context authenticating given conditions.
func (a *CtxAuth) SetConditions(ctx paysplit.Context, conds ...paysplit.Condition) paysplit.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx paysplit.Context) []paysplit.Condition {
	switch v := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []paysplit.Condition:
		return v
	default:
		panic(fmt.Sprintf("context key %q holds %T", a.Key, v))
	}
}

func (a *CtxAuth) HasAddress(ctx paysplit.Context, addr paysplit.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []paysplit.Condition, addr paysplit.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
