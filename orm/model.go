package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/paysplit/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
//
// Models are serialized using protocol buffers. Declare the struct fields
// with protobuf tags and implement the proto.Message methods:
//
//   func (m *Foo) Reset()         { *m = Foo{} }
//   func (m *Foo) String() string { return proto.CompactTextString(m) }
//   func (*Foo) ProtoMessage()    {}
type Model interface {
	proto.Message

	// Validate returns an error if the model state is not valid and it
	// must not be persisted.
	Validate() error

	// Copy returns a deep copy of the model. Modifying the copy must not
	// influence the original.
	Copy() Model
}

// Marshal serializes given model. Returned value is never nil.
func Marshal(m Model) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot marshal %T: %s", m, err)
	}
	// A model with all fields set to zero values serializes to nothing,
	// but it must still be distinguishable from a missing value.
	if raw == nil {
		raw = []byte{}
	}
	return raw, nil
}

// Unmarshal deserializes raw data into given model. Destination is reset
// before loading.
func Unmarshal(raw []byte, dest Model) error {
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}
