package paysplittest

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/crypto"
)

// NewKey returns a random ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signer condition of a random key.
func NewCondition() paysplit.Condition {
	return NewKey().PublicKey().Condition()
}

// NewAddress returns the address of a random signer condition.
func NewAddress() paysplit.Address {
	return NewCondition().Address()
}
