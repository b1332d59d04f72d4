package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/crypto"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// StdSignature represents a single signature of a transaction, together
// with the public key and the sequence used to create it.
type StdSignature struct {
	Sequence  int64             `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Pubkey    *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature *crypto.Signature `protobuf:"bytes,3,opt,name=signature,proto3" json:"signature,omitempty"`
}

func (m *StdSignature) Reset()         { *m = StdSignature{} }
func (m *StdSignature) String() string { return proto.CompactTextString(m) }
func (*StdSignature) ProtoMessage()    {}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil || len(s.Pubkey.Ed25519) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil || len(s.Signature.Ed25519) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// UserData holds the signing state of a single account.
type UserData struct {
	Pubkey   *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	if u.Pubkey == nil || len(u.Pubkey.Ed25519) == 0 {
		return errors.Wrap(errors.ErrModel, "missing public key")
	}
	if u.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	return nil
}

// Copy makes a new UserData with the same state.
func (u *UserData) Copy() orm.Model {
	var pub *crypto.PublicKey
	if u.Pubkey != nil {
		pub = &crypto.PublicKey{Ed25519: append([]byte(nil), u.Pubkey.Ed25519...)}
	}
	return &UserData{
		Pubkey:   pub,
		Sequence: u.Sequence,
	}
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}

	next := u.Sequence + 1

	// The greatest nonce value that JSON clients can represent without
	// losing precision.
	const maxSequenceValue = (1 << 53) - 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// UserBucket stores the signing state of all accounts, keyed by address.
type UserBucket struct {
	orm.ModelBucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() UserBucket {
	return UserBucket{
		ModelBucket: orm.NewModelBucket(BucketName),
	}
}

// GetOrCreate loads the user data of given key owner, or initializes a new
// one if none exist. A new user is not persisted.
func (b UserBucket) GetOrCreate(db paysplit.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	var u UserData
	switch err := b.One(db, pubkey.Address(), &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey}, nil
	default:
		return nil, err
	}
}

// Save persists given user data.
func (b UserBucket) Save(db paysplit.KVStore, u *UserData) error {
	_, err := b.Put(db, u.Pubkey.Address(), u)
	return err
}
