package splitter

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
	"github.com/iov-one/paysplit/x"
	"github.com/iov-one/paysplit/x/ownership"
	"github.com/iov-one/paysplit/x/token"
)

// Controller manages splitter instances, templates and factories.
//
// Every mutating method expects to be executed in a savepoint. On failure
// the caller must discard all changes made to db.
type Controller struct {
	splitters orm.ModelBucket
	factories orm.ModelBucket
	creations CreationBucket
	cash      Ledger
	tokens    *token.Controller
}

// NewController returns a controller splitting the native value using the
// cash ledger and tokens using the token controller.
func NewController(cash Ledger, tokens *token.Controller) *Controller {
	return &Controller{
		splitters: NewSplitterBucket(),
		factories: NewFactoryBucket(),
		creations: NewCreationBucket(),
		cash:      cash,
		tokens:    tokens,
	}
}

// Splitter returns the splitter stored under given address.
func (c *Controller) Splitter(db paysplit.ReadOnlyKVStore, addr paysplit.Address) (*Splitter, error) {
	var s Splitter
	if err := c.splitters.One(db, addr, &s); err != nil {
		return nil, errors.Wrap(err, "splitter")
	}
	return &s, nil
}

// Factory returns the factory stored under given address.
func (c *Controller) Factory(db paysplit.ReadOnlyKVStore, addr paysplit.Address) (*Factory, error) {
	var f Factory
	if err := c.factories.One(db, addr, &f); err != nil {
		return nil, errors.Wrap(err, "factory")
	}
	return &f, nil
}

// IsSplitter returns true if addr belongs to a splitter instance or a
// template.
func (c *Controller) IsSplitter(db paysplit.ReadOnlyKVStore, addr paysplit.Address) (bool, error) {
	switch err := c.splitters.Has(db, addr); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

func (c *Controller) save(db paysplit.KVStore, s *Splitter) (paysplit.Address, error) {
	key, err := instanceSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "splitter sequence")
	}
	addr := InstanceAddress(key)
	if _, err := c.splitters.Put(db, addr, s); err != nil {
		return nil, errors.Wrap(err, "cannot save splitter")
	}
	return addr, nil
}

// CreateTemplate stores a template instance that clonable factories copy.
func (c *Controller) CreateTemplate(db paysplit.KVStore, maxRecipients int32) (paysplit.Address, error) {
	return c.save(db, &Splitter{Template: true, MaxRecipients: maxRecipients})
}

// Deploy stores an instance owned by given account, without any factory
// involved.
func (c *Controller) Deploy(db paysplit.KVStore, owner paysplit.Address, maxRecipients int32) (paysplit.Address, error) {
	return c.save(db, &Splitter{Gate: ownership.New(owner), MaxRecipients: maxRecipients})
}

// CreateFactory stores a factory. A factory with a template creates
// instances by cloning it, otherwise fresh instances limited to
// maxRecipients are created.
func (c *Controller) CreateFactory(db paysplit.KVStore, template paysplit.Address, maxRecipients int32) (paysplit.Address, error) {
	f := &Factory{Template: template.Clone(), MaxRecipients: maxRecipients}
	if f.Clonable() {
		tpl, err := c.Splitter(db, template)
		if err != nil {
			return nil, errors.Wrap(err, "template")
		}
		if !tpl.Template {
			return nil, errors.Wrap(errors.ErrInput, "not a template")
		}
	}
	key, err := factorySeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "factory sequence")
	}
	addr := FactoryAddress(key)
	if _, err := c.factories.Put(db, addr, f); err != nil {
		return nil, errors.Wrap(err, "cannot save factory")
	}
	return addr, nil
}

// Create builds a new instance owned by the creator using given factory.
// Each account can create only one instance per factory, ever.
func (c *Controller) Create(ctx paysplit.Context, db paysplit.KVStore, factory, creator paysplit.Address) (paysplit.Address, error) {
	if err := creator.Validate(); err != nil {
		return nil, errors.Wrap(err, "creator")
	}
	f, err := c.Factory(db, factory)
	if err != nil {
		return nil, err
	}
	switch created, err := c.creations.Get(db, factory, creator); {
	case err != nil:
		return nil, err
	case !created.IsNull():
		return nil, errors.Wrap(errors.ErrState, "every user can only create one splitter")
	}

	var s *Splitter
	if f.Clonable() {
		tpl, err := c.Splitter(db, f.Template)
		if err != nil {
			return nil, errors.Wrap(err, "template")
		}
		s = tpl.Copy().(*Splitter)
		s.Template = false
	} else {
		s = &Splitter{MaxRecipients: f.MaxRecipients}
	}
	s.Gate = ownership.New(creator)
	s.Factory = factory.Clone()

	addr, err := c.save(db, s)
	if err != nil {
		return nil, err
	}
	if err := c.creations.Record(db, factory, creator, addr); err != nil {
		return nil, errors.Wrap(err, "cannot record creation")
	}
	recordCreated(f.Clonable())
	paysplit.Emit(ctx, paysplit.NewEvent("SplitterCreated",
		"splitter", addr,
		"creator", creator,
		"factory", factory))
	return addr, nil
}

// administrated loads the instance and ensures the caller is its owner.
func (c *Controller) administrated(ctx paysplit.Context, auth x.Authenticator, db paysplit.ReadOnlyKVStore, addr paysplit.Address) (*Splitter, error) {
	s, err := c.Splitter(db, addr)
	if err != nil {
		return nil, err
	}
	if err := s.Gate.Authorize(ctx, auth); err != nil {
		return nil, err
	}
	return s, nil
}

// AddRecipient appends a recipient to the registry of the instance. Only
// the owner can add recipients.
func (c *Controller) AddRecipient(ctx paysplit.Context, auth x.Authenticator, db paysplit.KVStore, addr, recipient paysplit.Address) error {
	s, err := c.administrated(ctx, auth, db, addr)
	if err != nil {
		return err
	}
	if err := NewRegistry(addr, s.MaxRecipients).Add(db, recipient); err != nil {
		return err
	}
	paysplit.Emit(ctx, paysplit.NewEvent("AddedRecipient",
		"splitter", addr,
		"recipient", recipient))
	return nil
}

// RemoveRecipient deletes a recipient from the registry of the instance.
// Only the owner can remove recipients.
func (c *Controller) RemoveRecipient(ctx paysplit.Context, auth x.Authenticator, db paysplit.KVStore, addr, recipient paysplit.Address) error {
	s, err := c.administrated(ctx, auth, db, addr)
	if err != nil {
		return err
	}
	if err := NewRegistry(addr, s.MaxRecipients).Remove(db, recipient); err != nil {
		return err
	}
	paysplit.Emit(ctx, paysplit.NewEvent("RemovedRecipient",
		"splitter", addr,
		"recipient", recipient))
	return nil
}

// ProposeOwner sets the account allowed to claim the ownership of the
// instance. Proposing the null address withdraws a pending proposal.
func (c *Controller) ProposeOwner(ctx paysplit.Context, auth x.Authenticator, db paysplit.KVStore, addr, candidate paysplit.Address) error {
	s, err := c.Splitter(db, addr)
	if err != nil {
		return err
	}
	if err := s.Gate.Propose(ctx, auth, candidate); err != nil {
		return err
	}
	if _, err := c.splitters.Put(db, addr, s); err != nil {
		return errors.Wrap(err, "cannot save splitter")
	}
	paysplit.Emit(ctx, paysplit.NewEvent("OwnerProposed",
		"splitter", addr,
		"candidate", candidate))
	return nil
}

// ClaimOwnership makes the proposed account the owner of the instance.
func (c *Controller) ClaimOwnership(ctx paysplit.Context, auth x.Authenticator, db paysplit.KVStore, addr paysplit.Address) error {
	s, err := c.Splitter(db, addr)
	if err != nil {
		return err
	}
	if err := s.Gate.Claim(ctx, auth); err != nil {
		return err
	}
	if _, err := c.splitters.Put(db, addr, s); err != nil {
		return errors.Wrap(err, "cannot save splitter")
	}
	paysplit.Emit(ctx, paysplit.NewEvent("OwnershipClaimed",
		"splitter", addr,
		"owner", s.Gate.Owner))
	return nil
}

// SplitValue distributes the native value held by the instance among its
// recipients. Anybody can trigger a split.
func (c *Controller) SplitValue(ctx paysplit.Context, db paysplit.KVStore, addr paysplit.Address) (coin.Amount, error) {
	s, err := c.Splitter(db, addr)
	if err != nil {
		return 0, err
	}
	amount, err := c.split(ctx, db, c.cash, addr, s)
	recordSplit(assetNative, amount, err)
	if err != nil {
		return 0, err
	}
	if !amount.IsZero() {
		paysplit.Emit(ctx, paysplit.NewEvent("EthSplit",
			"splitter", addr,
			"amount", amount))
	}
	return amount, nil
}

// SplitTokens distributes the given token held by the instance among its
// recipients. Anybody can trigger a split.
func (c *Controller) SplitTokens(ctx paysplit.Context, db paysplit.KVStore, addr, tok paysplit.Address) (coin.Amount, error) {
	s, err := c.Splitter(db, addr)
	if err != nil {
		return 0, err
	}
	if _, err := c.tokens.Token(db, tok); err != nil {
		return 0, err
	}
	amount, err := c.split(ctx, db, TokenLedger(c.tokens, tok), addr, s)
	recordSplit(assetToken, amount, err)
	if err != nil {
		return 0, err
	}
	if !amount.IsZero() {
		paysplit.Emit(ctx, paysplit.NewEvent("TokensSplit",
			"splitter", addr,
			"token", tok,
			"amount", amount))
	}
	return amount, nil
}

func (c *Controller) split(ctx paysplit.Context, db paysplit.KVStore, ledger Ledger, addr paysplit.Address, s *Splitter) (coin.Amount, error) {
	recipients, err := NewRegistry(addr, s.MaxRecipients).All(db)
	if err != nil {
		return 0, err
	}
	return Split(ctx, db, ledger, addr, recipients)
}
