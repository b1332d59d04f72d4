package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the native value balance of a single account.
type Wallet struct {
	Amount coin.Amount `protobuf:"varint,1,opt,name=amount,proto3,casttype=github.com/iov-one/paysplit/coin.Amount" json:"amount,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

var _ orm.Model = (*Wallet)(nil)

// Validate always succeeds, every amount is a valid balance.
func (w *Wallet) Validate() error {
	return nil
}

func (w *Wallet) Copy() orm.Model {
	return &Wallet{Amount: w.Amount}
}

// WalletBucket stores wallets keyed by the owner address.
type WalletBucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for managing wallets.
func NewBucket() WalletBucket {
	return WalletBucket{
		ModelBucket: orm.NewModelBucket(BucketName),
	}
}

// GetOrCreate loads the wallet of given account. An empty wallet is
// returned for an account that never held any value.
func (b WalletBucket) GetOrCreate(db paysplit.ReadOnlyKVStore, addr paysplit.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, err
	}
}

// Save persists the wallet of given account.
func (b WalletBucket) Save(db paysplit.KVStore, addr paysplit.Address, w *Wallet) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "wallet owner")
	}
	_, err := b.Put(db, addr, w)
	return err
}
