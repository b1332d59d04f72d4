package splitter

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
	"github.com/iov-one/paysplit/x/ownership"
)

// Splitter is the configuration and ownership state of a single instance.
// Recipients are kept by the Registry, balances by the ledgers.
type Splitter struct {
	// Gate is nil for templates. Templates cannot be administrated.
	Gate     *ownership.Gate `protobuf:"bytes,1,opt,name=gate,proto3" json:"gate,omitempty"`
	Template bool            `protobuf:"varint,2,opt,name=template,proto3" json:"template,omitempty"`
	// MaxRecipients limits the registry size. Zero means no limit.
	MaxRecipients int32 `protobuf:"varint,3,opt,name=max_recipients,json=maxRecipients,proto3" json:"max_recipients,omitempty"`
	// Factory that created this instance, if any.
	Factory paysplit.Address `protobuf:"bytes,4,opt,name=factory,proto3,casttype=github.com/iov-one/paysplit.Address" json:"factory,omitempty"`
}

func (m *Splitter) Reset()         { *m = Splitter{} }
func (m *Splitter) String() string { return proto.CompactTextString(m) }
func (*Splitter) ProtoMessage()    {}

var _ orm.Model = (*Splitter)(nil)

func (s *Splitter) Validate() error {
	if s.Template {
		if s.Gate != nil {
			return errors.Wrap(errors.ErrModel, "template cannot have an owner")
		}
	} else if err := s.Gate.Validate(); err != nil {
		return errors.Wrap(err, "gate")
	}
	if s.MaxRecipients < 0 {
		return errors.Wrap(errors.ErrModel, "negative max recipients")
	}
	if !s.Factory.IsNull() {
		if err := s.Factory.Validate(); err != nil {
			return errors.Wrap(err, "factory")
		}
	}
	return nil
}

func (s *Splitter) Copy() orm.Model {
	return &Splitter{
		Gate:          s.Gate.Copy(),
		Template:      s.Template,
		MaxRecipients: s.MaxRecipients,
		Factory:       s.Factory.Clone(),
	}
}

// Factory creates splitter instances, at most one per creator.
type Factory struct {
	// Template is the address of the instance being cloned. Null for a
	// factory that builds fresh instances.
	Template paysplit.Address `protobuf:"bytes,1,opt,name=template,proto3,casttype=github.com/iov-one/paysplit.Address" json:"template,omitempty"`
	// MaxRecipients is used for fresh instances only. Clones inherit the
	// configuration of the template.
	MaxRecipients int32 `protobuf:"varint,2,opt,name=max_recipients,json=maxRecipients,proto3" json:"max_recipients,omitempty"`
}

func (m *Factory) Reset()         { *m = Factory{} }
func (m *Factory) String() string { return proto.CompactTextString(m) }
func (*Factory) ProtoMessage()    {}

var _ orm.Model = (*Factory)(nil)

func (f *Factory) Validate() error {
	if !f.Template.IsNull() {
		if err := f.Template.Validate(); err != nil {
			return errors.Wrap(err, "template")
		}
	}
	if f.MaxRecipients < 0 {
		return errors.Wrap(errors.ErrModel, "negative max recipients")
	}
	return nil
}

func (f *Factory) Copy() orm.Model {
	return &Factory{
		Template:      f.Template.Clone(),
		MaxRecipients: f.MaxRecipients,
	}
}

// Clonable returns true if the factory creates instances by cloning a
// template.
func (f *Factory) Clonable() bool {
	return !f.Template.IsNull()
}

// Creation records the instance created by an account using a factory.
type Creation struct {
	Splitter paysplit.Address `protobuf:"bytes,1,opt,name=splitter,proto3,casttype=github.com/iov-one/paysplit.Address" json:"splitter,omitempty"`
}

func (m *Creation) Reset()         { *m = Creation{} }
func (m *Creation) String() string { return proto.CompactTextString(m) }
func (*Creation) ProtoMessage()    {}

var _ orm.Model = (*Creation)(nil)

func (c *Creation) Validate() error {
	return errors.Wrap(c.Splitter.Validate(), "splitter")
}

func (c *Creation) Copy() orm.Model {
	return &Creation{Splitter: c.Splitter.Clone()}
}

var (
	instanceSeq = orm.NewSequence("splitter", "id")
	factorySeq  = orm.NewSequence("splitfactory", "id")
)

// InstanceAddress returns the address of the splitter with given sequence
// key. Instances and templates share the address space.
func InstanceAddress(key []byte) paysplit.Address {
	return paysplit.NewCondition("split", "instance", key).Address()
}

// FactoryAddress returns the address of the factory with given sequence
// key.
func FactoryAddress(key []byte) paysplit.Address {
	return paysplit.NewCondition("split", "factory", key).Address()
}

// NewSplitterBucket returns a bucket for splitters, keyed by the instance
// address.
func NewSplitterBucket() orm.ModelBucket {
	return orm.NewModelBucket("splitter")
}

// NewFactoryBucket returns a bucket for factories, keyed by the factory
// address.
func NewFactoryBucket() orm.ModelBucket {
	return orm.NewModelBucket("splitfactory")
}

// CreationBucket records which account created which instance.
type CreationBucket struct {
	orm.ModelBucket
}

// NewCreationBucket returns a bucket for creation records.
func NewCreationBucket() CreationBucket {
	return CreationBucket{ModelBucket: orm.NewModelBucket("splitcreated")}
}

func creationKey(factory, creator paysplit.Address) []byte {
	key := make([]byte, 0, len(factory)+len(creator))
	key = append(key, factory...)
	return append(key, creator...)
}

// Get returns the address of the instance created by the creator using
// given factory. Null is returned if the creator did not create one.
func (b CreationBucket) Get(db paysplit.ReadOnlyKVStore, factory, creator paysplit.Address) (paysplit.Address, error) {
	var c Creation
	switch err := b.One(db, creationKey(factory, creator), &c); {
	case err == nil:
		return c.Splitter, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// Record stores the creation. Records are never removed.
func (b CreationBucket) Record(db paysplit.KVStore, factory, creator, splitter paysplit.Address) error {
	_, err := b.Put(db, creationKey(factory, creator), &Creation{Splitter: splitter})
	return err
}
