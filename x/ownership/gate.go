package ownership

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/x"
)

// Gate holds the ownership state of a single entity.
type Gate struct {
	// Owner is allowed to administrate the entity. Never null.
	Owner paysplit.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/paysplit.Address" json:"owner,omitempty"`
	// Proposed is the account that may claim the ownership. Null when no
	// proposal is pending.
	Proposed paysplit.Address `protobuf:"bytes,2,opt,name=proposed,proto3,casttype=github.com/iov-one/paysplit.Address" json:"proposed,omitempty"`
}

func (m *Gate) Reset()         { *m = Gate{} }
func (m *Gate) String() string { return proto.CompactTextString(m) }
func (*Gate) ProtoMessage()    {}

// New returns a gate owned by given account, without a pending proposal.
func New(owner paysplit.Address) *Gate {
	return &Gate{Owner: owner.Clone()}
}

// Validate returns an error if the gate state is not valid.
func (g *Gate) Validate() error {
	if g == nil {
		return errors.Wrap(errors.ErrModel, "missing gate")
	}
	if err := g.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if !g.Proposed.IsNull() {
		if err := g.Proposed.Validate(); err != nil {
			return errors.Wrap(err, "proposed")
		}
	}
	return nil
}

// Copy returns an independent copy of the gate.
func (g *Gate) Copy() *Gate {
	if g == nil {
		return nil
	}
	return &Gate{
		Owner:    g.Owner.Clone(),
		Proposed: g.Proposed.Clone(),
	}
}

// Authorize returns ErrUnauthorized unless the caller is the owner. A nil
// gate authorizes nobody.
func (g *Gate) Authorize(ctx paysplit.Context, auth x.Authenticator) error {
	if g == nil || !x.IsCaller(ctx, auth, g.Owner) {
		return errors.Wrap(errors.ErrUnauthorized, "caller is not the owner")
	}
	return nil
}

// Propose sets the candidate that is allowed to claim the ownership. Only
// the owner can propose. Proposing the null identity withdraws a pending
// proposal.
func (g *Gate) Propose(ctx paysplit.Context, auth x.Authenticator, candidate paysplit.Address) error {
	if err := g.Authorize(ctx, auth); err != nil {
		return err
	}
	if !candidate.IsNull() {
		if err := candidate.Validate(); err != nil {
			return errors.Wrap(err, "candidate")
		}
	}
	g.Proposed = candidate.Clone()
	return nil
}

// Claim transfers the ownership to the proposed account. Only the proposed
// account can claim and a missing proposal cannot be claimed by anyone.
func (g *Gate) Claim(ctx paysplit.Context, auth x.Authenticator) error {
	if g == nil || !x.IsCaller(ctx, auth, g.Proposed) {
		return errors.Wrap(errors.ErrUnauthorized, "caller is not the proposed owner")
	}
	g.Owner = g.Proposed
	g.Proposed = nil
	return nil
}
