package token

import (
	"context"
	"testing"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/paysplittest"
	"github.com/iov-one/paysplit/paysplittest/assert"
	"github.com/iov-one/paysplit/store"
)

func TestCreateAndTransfer(t *testing.T) {
	alice := paysplittest.NewAddress()
	bob := paysplittest.NewAddress()
	db := store.MemStore()
	ctx := context.Background()
	ctrl := NewController()

	tok, err := ctrl.Create(db, &Token{Name: "Test Token", Symbol: "TST", Supply: 100}, alice)
	assert.Nil(t, err)
	assert.Equal(t, Address(tokenSeqKey(1)), tok)

	assertBalance(t, ctrl, db, tok, alice, 100)

	assert.Nil(t, ctrl.Transfer(ctx, db, tok, alice, bob, 30))
	assertBalance(t, ctrl, db, tok, alice, 70)
	assertBalance(t, ctrl, db, tok, bob, 30)

	err = ctrl.Transfer(ctx, db, tok, alice, bob, 71)
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	err = ctrl.Transfer(ctx, db, tok, alice, bob, 0)
	assert.IsErr(t, errors.ErrAmount, err)

	unknown := paysplittest.NewAddress()
	err = ctrl.Transfer(ctx, db, unknown, alice, bob, 1)
	assert.IsErr(t, errors.ErrNotFound, err)

	// Balances are kept per token.
	tok2, err := ctrl.Create(db, &Token{Name: "Other Token", Symbol: "OTH", Supply: 5}, bob)
	assert.Nil(t, err)
	assertBalance(t, ctrl, db, tok2, bob, 5)
	assertBalance(t, ctrl, db, tok2, alice, 0)
	assertBalance(t, ctrl, db, tok, bob, 30)

	_, err = ctrl.Create(db, &Token{Name: "x", Symbol: "TST"}, bob)
	assert.IsErr(t, errors.ErrModel, err)
}

func TestReceivers(t *testing.T) {
	alice := paysplittest.NewAddress()
	bob := paysplittest.NewAddress()
	db := store.MemStore()
	ctx := context.Background()
	ctrl := NewController()

	var seen []Transfer
	ctrl.AddReceiver(ReceiverFunc(func(ctx paysplit.Context, db paysplit.KVStore, tr Transfer) error {
		// Balances are already updated when receivers are notified.
		got, err := ctrl.Balance(db, tr.Token, tr.To)
		if err != nil {
			return err
		}
		if got < tr.Amount {
			t.Fatalf("balance not updated: %d", got)
		}
		seen = append(seen, tr)
		return nil
	}))
	ctrl.AddReceiver(ReceiverFunc(func(ctx paysplit.Context, db paysplit.KVStore, tr Transfer) error {
		if tr.Call && string(tr.Data) == "reject" {
			return errors.Wrap(errors.ErrState, "rejected")
		}
		return nil
	}))

	tok, err := ctrl.Create(db, &Token{Name: "Test Token", Symbol: "TST", Supply: 100}, alice)
	assert.Nil(t, err)

	assert.Nil(t, ctrl.Transfer(ctx, db, tok, alice, bob, 1))
	assert.Nil(t, ctrl.TransferAndCall(ctx, db, tok, alice, bob, 2, []byte("hello")))
	assert.Equal(t, []Transfer{
		{Token: tok, From: alice, To: bob, Amount: 1},
		{Token: tok, From: alice, To: bob, Amount: 2, Data: []byte("hello"), Call: true},
	}, seen)

	err = store.Atomic(db, func(db paysplit.KVStore) error {
		return ctrl.TransferAndCall(ctx, db, tok, alice, bob, 5, []byte("reject"))
	})
	assert.IsErr(t, errors.ErrState, err)
	assertBalance(t, ctrl, db, tok, alice, 97)
	assertBalance(t, ctrl, db, tok, bob, 3)
}

func TestMint(t *testing.T) {
	alice := paysplittest.NewAddress()
	db := store.MemStore()
	ctrl := NewController()

	tok, err := ctrl.Create(db, &Token{Name: "Test Token", Symbol: "TST"}, nil)
	assert.Nil(t, err)
	assert.Nil(t, ctrl.Mint(db, tok, alice, 12))
	assertBalance(t, ctrl, db, tok, alice, 12)

	info, err := ctrl.Token(db, tok)
	assert.Nil(t, err)
	assert.Equal(t, coin.Amount(12), info.Supply)

	err = ctrl.Mint(db, paysplittest.NewAddress(), alice, 1)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func tokenSeqKey(n int64) []byte {
	return []byte{0, 0, 0, 0, 0, 0, 0, byte(n)}
}

func assertBalance(t testing.TB, ctrl *Controller, db paysplit.ReadOnlyKVStore, tok, holder paysplit.Address, want coin.Amount) {
	t.Helper()
	got, err := ctrl.Balance(db, tok, holder)
	if err != nil {
		t.Fatalf("cannot get balance: %s", err)
	}
	if got != want {
		t.Fatalf("want %d balance, got %d", want, got)
	}
}
