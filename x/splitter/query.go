package splitter

import (
	"github.com/iov-one/paysplit"
)

// Owner returns the owner of the instance. Templates have no owner.
func (c *Controller) Owner(db paysplit.ReadOnlyKVStore, addr paysplit.Address) (paysplit.Address, error) {
	s, err := c.Splitter(db, addr)
	if err != nil || s.Gate == nil {
		return nil, err
	}
	return s.Gate.Owner, nil
}

// ProposedOwner returns the account allowed to claim the ownership of the
// instance or null if there is no pending proposal.
func (c *Controller) ProposedOwner(db paysplit.ReadOnlyKVStore, addr paysplit.Address) (paysplit.Address, error) {
	s, err := c.Splitter(db, addr)
	if err != nil || s.Gate == nil {
		return nil, err
	}
	return s.Gate.Proposed, nil
}

// Index returns the 1-based position of the recipient in the registry of
// the instance, 0 if it is not a recipient.
func (c *Controller) Index(db paysplit.ReadOnlyKVStore, addr, recipient paysplit.Address) (int64, error) {
	s, err := c.Splitter(db, addr)
	if err != nil {
		return 0, err
	}
	return NewRegistry(addr, s.MaxRecipients).Index(db, recipient)
}

// AllRecipients returns the registry of the instance in order.
func (c *Controller) AllRecipients(db paysplit.ReadOnlyKVStore, addr paysplit.Address) ([]paysplit.Address, error) {
	s, err := c.Splitter(db, addr)
	if err != nil {
		return nil, err
	}
	return NewRegistry(addr, s.MaxRecipients).All(db)
}

// CreatedBy returns the instance created by the creator using given
// factory, or null.
func (c *Controller) CreatedBy(db paysplit.ReadOnlyKVStore, factory, creator paysplit.Address) (paysplit.Address, error) {
	return c.creations.Get(db, factory, creator)
}
