package x

import (
	"github.com/iov-one/paysplit"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want GetAddresses helper
	GetConditions(paysplit.Context) []paysplit.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(paysplit.Context, paysplit.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx paysplit.Context) []paysplit.Condition {
	var res []paysplit.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx paysplit.Context, addr paysplit.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator
func GetAddresses(ctx paysplit.Context, auth Authenticator) []paysplit.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]paysplit.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first permission if any, otherwise nil
func MainSigner(ctx paysplit.Context, auth Authenticator) paysplit.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// IsCaller returns true if addr is not the null identity and one of the
// authenticated conditions resolves to it. The null identity is never a
// caller.
func IsCaller(ctx paysplit.Context, auth Authenticator, addr paysplit.Address) bool {
	if addr.IsNull() {
		return false
	}
	return auth.HasAddress(ctx, addr)
}
