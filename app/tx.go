package app

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/x/sigs"
)

// Tx is the wire representation of a transaction. The message is kept
// serialized, together with its path, so that it can be decoded by a Codec
// that knows the message type registered for that path.
type Tx struct {
	Path       string               `protobuf:"bytes,1,opt,name=path,proto3" json:"path,omitempty"`
	Msg        []byte               `protobuf:"bytes,2,opt,name=msg,proto3" json:"msg,omitempty"`
	Signatures []*sigs.StdSignature `protobuf:"bytes,3,rep,name=signatures,proto3" json:"signatures,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

var _ sigs.SignedTx = (*Tx)(nil)

// GetSignatures returns all signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Path: tx.Path, Msg: tx.Msg}
	raw, err := proto.Marshal(&unsigned)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return raw, nil
}

// DecodedTx is a transaction with its message already deserialized.
type DecodedTx struct {
	*Tx
	msg paysplit.Msg
}

var _ paysplit.Tx = (*DecodedTx)(nil)
var _ sigs.SignedTx = (*DecodedTx)(nil)

// GetMsg returns the deserialized message.
func (tx *DecodedTx) GetMsg() (paysplit.Msg, error) {
	return tx.msg, nil
}

// Codec knows all message types of an application and translates between
// messages and their wire representation.
type Codec struct {
	msgs map[string]reflect.Type
}

// NewCodec returns a codec without any message registered.
func NewCodec() *Codec {
	return &Codec{msgs: make(map[string]reflect.Type)}
}

// Register declares message types. Each message must be a pointer to a
// protobuf message. Registering two messages with the same path panics.
func (c *Codec) Register(msgs ...paysplit.Msg) {
	for _, msg := range msgs {
		if _, ok := msg.(proto.Message); !ok {
			panic("not a protobuf message: " + reflect.TypeOf(msg).String())
		}
		t := reflect.TypeOf(msg)
		if t.Kind() != reflect.Ptr {
			panic("message must be a pointer: " + t.String())
		}
		if _, ok := c.msgs[msg.Path()]; ok {
			panic("message path registered twice: " + msg.Path())
		}
		c.msgs[msg.Path()] = t.Elem()
	}
}

// NewTx returns an unsigned transaction carrying given message.
func (c *Codec) NewTx(msg paysplit.Msg) (*Tx, error) {
	if _, ok := c.msgs[msg.Path()]; !ok {
		return nil, errors.Wrapf(errors.ErrType, "unknown message %q", msg.Path())
	}
	raw, err := proto.Marshal(msg.(proto.Message))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "cannot marshal: %s", err)
	}
	return &Tx{Path: msg.Path(), Msg: raw}, nil
}

// Encode serializes a transaction.
func (c *Codec) Encode(tx *Tx) ([]byte, error) {
	raw, err := proto.Marshal(tx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot marshal tx: %s", err)
	}
	return raw, nil
}

// Decode deserializes a transaction together with its message. The message
// is not validated.
func (c *Codec) Decode(raw []byte) (tx *DecodedTx, err error) {
	defer errors.Recover(&err)

	var wire Tx
	if err := proto.Unmarshal(raw, &wire); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot unmarshal tx: %s", err)
	}
	t, ok := c.msgs[wire.Path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "unknown message %q", wire.Path)
	}
	msg := reflect.New(t).Interface()
	if err := proto.Unmarshal(wire.Msg, msg.(proto.Message)); err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "cannot unmarshal %s: %s", wire.Path, err)
	}
	return &DecodedTx{Tx: &wire, msg: msg.(paysplit.Msg)}, nil
}
