package splitter

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

const (
	pathCreateTemplateMsg  = "split/create_template"
	pathCreateFactoryMsg   = "split/create_factory"
	pathCreateSplitterMsg  = "split/create"
	pathAddRecipientMsg    = "split/add_recipient"
	pathRemoveRecipientMsg = "split/remove_recipient"
	pathSplitMsg           = "split/split"
	pathSplitTokensMsg     = "split/split_tokens"
	pathProposeOwnerMsg    = "split/propose_owner"
	pathClaimOwnershipMsg  = "split/claim_ownership"
)

// CreateTemplateMsg stores a template that clonable factories copy.
type CreateTemplateMsg struct {
	MaxRecipients int32 `protobuf:"varint,1,opt,name=max_recipients,json=maxRecipients,proto3" json:"max_recipients,omitempty"`
}

func (m *CreateTemplateMsg) Reset()         { *m = CreateTemplateMsg{} }
func (m *CreateTemplateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateTemplateMsg) ProtoMessage()    {}

var _ paysplit.Msg = (*CreateTemplateMsg)(nil)

func (CreateTemplateMsg) Path() string {
	return pathCreateTemplateMsg
}

func (m *CreateTemplateMsg) Validate() error {
	return validateMaxRecipients(m.MaxRecipients)
}

// CreateFactoryMsg deploys a factory. With a template set the factory
// clones it, otherwise it builds fresh instances.
type CreateFactoryMsg struct {
	Template      paysplit.Address `protobuf:"bytes,1,opt,name=template,proto3,casttype=github.com/iov-one/paysplit.Address" json:"template,omitempty"`
	MaxRecipients int32            `protobuf:"varint,2,opt,name=max_recipients,json=maxRecipients,proto3" json:"max_recipients,omitempty"`
}

func (m *CreateFactoryMsg) Reset()         { *m = CreateFactoryMsg{} }
func (m *CreateFactoryMsg) String() string { return proto.CompactTextString(m) }
func (*CreateFactoryMsg) ProtoMessage()    {}

var _ paysplit.Msg = (*CreateFactoryMsg)(nil)

func (CreateFactoryMsg) Path() string {
	return pathCreateFactoryMsg
}

func (m *CreateFactoryMsg) Validate() error {
	if !m.Template.IsNull() {
		if err := m.Template.Validate(); err != nil {
			return errors.Wrap(err, "template")
		}
		if m.MaxRecipients != 0 {
			return errors.Wrap(errors.ErrMsg, "clones use the template configuration")
		}
	}
	return validateMaxRecipients(m.MaxRecipients)
}

// CreateSplitterMsg creates an instance owned by the signer using given
// factory.
type CreateSplitterMsg struct {
	Factory paysplit.Address `protobuf:"bytes,1,opt,name=factory,proto3,casttype=github.com/iov-one/paysplit.Address" json:"factory,omitempty"`
}

func (m *CreateSplitterMsg) Reset()         { *m = CreateSplitterMsg{} }
func (m *CreateSplitterMsg) String() string { return proto.CompactTextString(m) }
func (*CreateSplitterMsg) ProtoMessage()    {}

var _ paysplit.Msg = (*CreateSplitterMsg)(nil)

func (CreateSplitterMsg) Path() string {
	return pathCreateSplitterMsg
}

func (m *CreateSplitterMsg) Validate() error {
	return errors.Wrap(m.Factory.Validate(), "factory")
}

// AddRecipientMsg appends a recipient to the registry of an instance.
type AddRecipientMsg struct {
	Splitter  paysplit.Address `protobuf:"bytes,1,opt,name=splitter,proto3,casttype=github.com/iov-one/paysplit.Address" json:"splitter,omitempty"`
	Recipient paysplit.Address `protobuf:"bytes,2,opt,name=recipient,proto3,casttype=github.com/iov-one/paysplit.Address" json:"recipient,omitempty"`
}

func (m *AddRecipientMsg) Reset()         { *m = AddRecipientMsg{} }
func (m *AddRecipientMsg) String() string { return proto.CompactTextString(m) }
func (*AddRecipientMsg) ProtoMessage()    {}

var _ paysplit.Msg = (*AddRecipientMsg)(nil)

func (AddRecipientMsg) Path() string {
	return pathAddRecipientMsg
}

func (m *AddRecipientMsg) Validate() error {
	return validateRecipientChange(m.Splitter, m.Recipient)
}

// RemoveRecipientMsg deletes a recipient from the registry of an instance.
type RemoveRecipientMsg struct {
	Splitter  paysplit.Address `protobuf:"bytes,1,opt,name=splitter,proto3,casttype=github.com/iov-one/paysplit.Address" json:"splitter,omitempty"`
	Recipient paysplit.Address `protobuf:"bytes,2,opt,name=recipient,proto3,casttype=github.com/iov-one/paysplit.Address" json:"recipient,omitempty"`
}

func (m *RemoveRecipientMsg) Reset()         { *m = RemoveRecipientMsg{} }
func (m *RemoveRecipientMsg) String() string { return proto.CompactTextString(m) }
func (*RemoveRecipientMsg) ProtoMessage()    {}

var _ paysplit.Msg = (*RemoveRecipientMsg)(nil)

func (RemoveRecipientMsg) Path() string {
	return pathRemoveRecipientMsg
}

func (m *RemoveRecipientMsg) Validate() error {
	return validateRecipientChange(m.Splitter, m.Recipient)
}

// SplitMsg distributes the native value held by an instance.
type SplitMsg struct {
	Splitter paysplit.Address `protobuf:"bytes,1,opt,name=splitter,proto3,casttype=github.com/iov-one/paysplit.Address" json:"splitter,omitempty"`
}

func (m *SplitMsg) Reset()         { *m = SplitMsg{} }
func (m *SplitMsg) String() string { return proto.CompactTextString(m) }
func (*SplitMsg) ProtoMessage()    {}

var _ paysplit.Msg = (*SplitMsg)(nil)

func (SplitMsg) Path() string {
	return pathSplitMsg
}

func (m *SplitMsg) Validate() error {
	return errors.Wrap(m.Splitter.Validate(), "splitter")
}

// SplitTokensMsg distributes a token held by an instance.
type SplitTokensMsg struct {
	Splitter paysplit.Address `protobuf:"bytes,1,opt,name=splitter,proto3,casttype=github.com/iov-one/paysplit.Address" json:"splitter,omitempty"`
	Token    paysplit.Address `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/iov-one/paysplit.Address" json:"token,omitempty"`
}

func (m *SplitTokensMsg) Reset()         { *m = SplitTokensMsg{} }
func (m *SplitTokensMsg) String() string { return proto.CompactTextString(m) }
func (*SplitTokensMsg) ProtoMessage()    {}

var _ paysplit.Msg = (*SplitTokensMsg)(nil)

func (SplitTokensMsg) Path() string {
	return pathSplitTokensMsg
}

func (m *SplitTokensMsg) Validate() error {
	if err := m.Splitter.Validate(); err != nil {
		return errors.Wrap(err, "splitter")
	}
	return errors.Wrap(m.Token.Validate(), "token")
}

// ProposeOwnerMsg sets the account allowed to claim the ownership of an
// instance. An empty candidate withdraws the pending proposal.
type ProposeOwnerMsg struct {
	Splitter  paysplit.Address `protobuf:"bytes,1,opt,name=splitter,proto3,casttype=github.com/iov-one/paysplit.Address" json:"splitter,omitempty"`
	Candidate paysplit.Address `protobuf:"bytes,2,opt,name=candidate,proto3,casttype=github.com/iov-one/paysplit.Address" json:"candidate,omitempty"`
}

func (m *ProposeOwnerMsg) Reset()         { *m = ProposeOwnerMsg{} }
func (m *ProposeOwnerMsg) String() string { return proto.CompactTextString(m) }
func (*ProposeOwnerMsg) ProtoMessage()    {}

var _ paysplit.Msg = (*ProposeOwnerMsg)(nil)

func (ProposeOwnerMsg) Path() string {
	return pathProposeOwnerMsg
}

func (m *ProposeOwnerMsg) Validate() error {
	if err := m.Splitter.Validate(); err != nil {
		return errors.Wrap(err, "splitter")
	}
	if m.Candidate.IsNull() {
		return nil
	}
	return errors.Wrap(m.Candidate.Validate(), "candidate")
}

// ClaimOwnershipMsg makes the signer the owner of an instance, if they
// were proposed.
type ClaimOwnershipMsg struct {
	Splitter paysplit.Address `protobuf:"bytes,1,opt,name=splitter,proto3,casttype=github.com/iov-one/paysplit.Address" json:"splitter,omitempty"`
}

func (m *ClaimOwnershipMsg) Reset()         { *m = ClaimOwnershipMsg{} }
func (m *ClaimOwnershipMsg) String() string { return proto.CompactTextString(m) }
func (*ClaimOwnershipMsg) ProtoMessage()    {}

var _ paysplit.Msg = (*ClaimOwnershipMsg)(nil)

func (ClaimOwnershipMsg) Path() string {
	return pathClaimOwnershipMsg
}

func (m *ClaimOwnershipMsg) Validate() error {
	return errors.Wrap(m.Splitter.Validate(), "splitter")
}

func validateMaxRecipients(n int32) error {
	if n < 0 {
		return errors.Wrap(errors.ErrMsg, "negative max recipients")
	}
	return nil
}

func validateRecipientChange(splitter, recipient paysplit.Address) error {
	if err := splitter.Validate(); err != nil {
		return errors.Wrap(err, "splitter")
	}
	return errors.Wrap(recipient.Validate(), "recipient")
}
