package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
)

const (
	pathCreateMsg          = "token/create"
	pathTransferMsg        = "token/transfer"
	pathTransferAndCallMsg = "token/transfer_and_call"

	maxDataSize = 256
)

// CreateMsg registers a new token. The whole supply is assigned to the
// signer of the message.
type CreateMsg struct {
	Name   string      `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Symbol string      `protobuf:"bytes,2,opt,name=symbol,proto3" json:"symbol,omitempty"`
	Supply coin.Amount `protobuf:"varint,3,opt,name=supply,proto3,casttype=github.com/iov-one/paysplit/coin.Amount" json:"supply,omitempty"`
}

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

var _ paysplit.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string {
	return pathCreateMsg
}

func (m *CreateMsg) Validate() error {
	if !isTokenName(m.Name) {
		return errors.Wrapf(errors.ErrMsg, "invalid token name %q", m.Name)
	}
	if !isTokenSymbol(m.Symbol) {
		return errors.Wrapf(errors.ErrMsg, "invalid token symbol %q", m.Symbol)
	}
	return nil
}

// TransferMsg moves tokens between two accounts.
type TransferMsg struct {
	Token       paysplit.Address `protobuf:"bytes,1,opt,name=token,proto3,casttype=github.com/iov-one/paysplit.Address" json:"token,omitempty"`
	Source      paysplit.Address `protobuf:"bytes,2,opt,name=source,proto3,casttype=github.com/iov-one/paysplit.Address" json:"source,omitempty"`
	Destination paysplit.Address `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/iov-one/paysplit.Address" json:"destination,omitempty"`
	Amount      coin.Amount      `protobuf:"varint,4,opt,name=amount,proto3,casttype=github.com/iov-one/paysplit/coin.Amount" json:"amount,omitempty"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

var _ paysplit.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	return validateTransfer(m.Token, m.Source, m.Destination, m.Amount)
}

// TransferAndCallMsg moves tokens between two accounts and notifies the
// destination about it.
type TransferAndCallMsg struct {
	Token       paysplit.Address `protobuf:"bytes,1,opt,name=token,proto3,casttype=github.com/iov-one/paysplit.Address" json:"token,omitempty"`
	Source      paysplit.Address `protobuf:"bytes,2,opt,name=source,proto3,casttype=github.com/iov-one/paysplit.Address" json:"source,omitempty"`
	Destination paysplit.Address `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/iov-one/paysplit.Address" json:"destination,omitempty"`
	Amount      coin.Amount      `protobuf:"varint,4,opt,name=amount,proto3,casttype=github.com/iov-one/paysplit/coin.Amount" json:"amount,omitempty"`
	Data        []byte           `protobuf:"bytes,5,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *TransferAndCallMsg) Reset()         { *m = TransferAndCallMsg{} }
func (m *TransferAndCallMsg) String() string { return proto.CompactTextString(m) }
func (*TransferAndCallMsg) ProtoMessage()    {}

var _ paysplit.Msg = (*TransferAndCallMsg)(nil)

func (TransferAndCallMsg) Path() string {
	return pathTransferAndCallMsg
}

func (m *TransferAndCallMsg) Validate() error {
	if err := validateTransfer(m.Token, m.Source, m.Destination, m.Amount); err != nil {
		return err
	}
	if len(m.Data) > maxDataSize {
		return errors.Wrap(errors.ErrMsg, "data too long")
	}
	return nil
}

func validateTransfer(tok, src, dest paysplit.Address, amount coin.Amount) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	if err := tok.Validate(); err != nil {
		return errors.Wrap(err, "token")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	return nil
}
