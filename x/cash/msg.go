package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
)

const (
	pathSendMsg = "cash/send"

	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg moves the native value between two accounts.
type SendMsg struct {
	Source      paysplit.Address `protobuf:"bytes,1,opt,name=source,proto3,casttype=github.com/iov-one/paysplit.Address" json:"source,omitempty"`
	Destination paysplit.Address `protobuf:"bytes,2,opt,name=destination,proto3,casttype=github.com/iov-one/paysplit.Address" json:"destination,omitempty"`
	Amount      coin.Amount      `protobuf:"varint,3,opt,name=amount,proto3,casttype=github.com/iov-one/paysplit/coin.Amount" json:"amount,omitempty"`
	Memo        string           `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

// Ensure we implement the Msg interface
var _ paysplit.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if m.Amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "non-positive SendMsg")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	return nil
}
