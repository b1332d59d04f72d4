package cash

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

func TestIssueAndTransfer(t *testing.T) {
	alice := paysplittest.NewAddress()
	bob := paysplittest.NewAddress()
	db := store.MemStore()
	ctx := context.Background()
	ctrl := NewController()

	got, err := ctrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, coin.Amount(0), got)

	assert.Nil(t, ctrl.Issue(db, alice, 100))
	assert.Nil(t, ctrl.Transfer(ctx, db, alice, bob, 40))
	assertBalance(t, ctrl, db, alice, 60)
	assertBalance(t, ctrl, db, bob, 40)

	err = ctrl.Transfer(ctx, db, alice, bob, 61)
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	err = ctrl.Transfer(ctx, db, alice, bob, 0)
	assert.IsErr(t, errors.ErrAmount, err)

	err = ctrl.Transfer(ctx, db, alice, nil, 1)
	assert.IsErr(t, errors.ErrInput, err)

	// Transfer to self does not change the balance.
	assert.Nil(t, ctrl.Transfer(ctx, db, alice, alice, 60))
	assertBalance(t, ctrl, db, alice, 60)

	assert.Nil(t, ctrl.Issue(db, bob, coin.MaxAmount-40))
	err = ctrl.Issue(db, bob, 1)
	assert.IsErr(t, errors.ErrOverflow, err)
}

func TestReceiversAreNotified(t *testing.T) {
	alice := paysplittest.NewAddress()
	bob := paysplittest.NewAddress()
	blocked := paysplittest.NewAddress()

	var seen []coin.Amount
	recorder := ReceiverFunc(func(ctx paysplit.Context, db paysplit.KVStore, src, dest paysplit.Address, amount coin.Amount) error {
		seen = append(seen, amount)
		return nil
	})
	rejecter := ReceiverFunc(func(ctx paysplit.Context, db paysplit.KVStore, src, dest paysplit.Address, amount coin.Amount) error {
		if dest.Equals(blocked) {
			return errors.Wrap(errors.ErrState, "blocked")
		}
		return nil
	})

	ctrl := NewController(recorder, rejecter)
	db := store.MemStore()
	ctx := context.Background()
	assert.Nil(t, ctrl.Issue(db, alice, 10))

	assert.Nil(t, ctrl.Transfer(ctx, db, alice, bob, 3))
	assert.Equal(t, []coin.Amount{3}, seen)

	// A rejected transfer is reported. Rolling back the state is the
	// responsibility of the caller.
	err := store.Atomic(db, func(db paysplit.KVStore) error {
		return ctrl.Transfer(ctx, db, alice, blocked, 2)
	})
	assert.IsErr(t, errors.ErrState, err)
	assertBalance(t, ctrl, db, alice, 7)
	assertBalance(t, ctrl, db, blocked, 0)
}

func assertBalance(t testing.TB, ctrl Controller, db paysplit.ReadOnlyKVStore, addr paysplit.Address, want coin.Amount) {
	t.Helper()
	got, err := ctrl.Balance(db, addr)
	if err != nil {
		t.Fatalf("cannot get balance: %s", err)
	}
	if got != want {
		t.Fatalf("want %d balance, got %d", want, got)
	}
}
