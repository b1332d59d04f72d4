package token

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
)

var (
	isTokenName   = regexp.MustCompile(`^[A-Za-z0-9 \-_:]{3,32}$`).MatchString
	isTokenSymbol = regexp.MustCompile(`^[A-Z]{3,6}$`).MatchString
)

// Token describes a single fungible token.
type Token struct {
	Name   string      `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Symbol string      `protobuf:"bytes,2,opt,name=symbol,proto3" json:"symbol,omitempty"`
	Supply coin.Amount `protobuf:"varint,3,opt,name=supply,proto3,casttype=github.com/iov-one/paysplit/coin.Amount" json:"supply,omitempty"`
}

func (m *Token) Reset()         { *m = Token{} }
func (m *Token) String() string { return proto.CompactTextString(m) }
func (*Token) ProtoMessage()    {}

var _ orm.Model = (*Token)(nil)

func (t *Token) Validate() error {
	if !isTokenName(t.Name) {
		return errors.Wrapf(errors.ErrModel, "invalid token name %q", t.Name)
	}
	if !isTokenSymbol(t.Symbol) {
		return errors.Wrapf(errors.ErrModel, "invalid token symbol %q", t.Symbol)
	}
	return nil
}

func (t *Token) Copy() orm.Model {
	cpy := *t
	return &cpy
}

// Holding is the amount of a single token held by an account.
type Holding struct {
	Amount coin.Amount `protobuf:"varint,1,opt,name=amount,proto3,casttype=github.com/iov-one/paysplit/coin.Amount" json:"amount,omitempty"`
}

func (m *Holding) Reset()         { *m = Holding{} }
func (m *Holding) String() string { return proto.CompactTextString(m) }
func (*Holding) ProtoMessage()    {}

var _ orm.Model = (*Holding)(nil)

func (h *Holding) Validate() error {
	return nil
}

func (h *Holding) Copy() orm.Model {
	return &Holding{Amount: h.Amount}
}

var tokenSeq = orm.NewSequence("token", "id")

// Address returns the address of the token with given sequence key.
func Address(key []byte) paysplit.Address {
	return paysplit.NewCondition("token", "erc677", key).Address()
}

// NewTokenBucket returns a bucket for token descriptions, keyed by the
// token address.
func NewTokenBucket() orm.ModelBucket {
	return orm.NewModelBucket("token")
}

// HoldingBucket stores balances keyed by the token and holder addresses.
type HoldingBucket struct {
	orm.ModelBucket
}

// NewHoldingBucket returns a bucket for token balances.
func NewHoldingBucket() HoldingBucket {
	return HoldingBucket{ModelBucket: orm.NewModelBucket("tokenhold")}
}

func holdingKey(tok, holder paysplit.Address) []byte {
	key := make([]byte, 0, len(tok)+len(holder))
	key = append(key, tok...)
	return append(key, holder...)
}

// GetOrCreate returns the holding of given account. An empty holding is
// returned for an account that never held the token.
func (b HoldingBucket) GetOrCreate(db paysplit.ReadOnlyKVStore, tok, holder paysplit.Address) (*Holding, error) {
	var h Holding
	switch err := b.One(db, holdingKey(tok, holder), &h); {
	case err == nil:
		return &h, nil
	case errors.ErrNotFound.Is(err):
		return &Holding{}, nil
	default:
		return nil, err
	}
}

// Save persists the holding of given account.
func (b HoldingBucket) Save(db paysplit.KVStore, tok, holder paysplit.Address, h *Holding) error {
	if err := holder.Validate(); err != nil {
		return errors.Wrap(err, "holder")
	}
	_, err := b.Put(db, holdingKey(tok, holder), h)
	return err
}
