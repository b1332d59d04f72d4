package splitter

import (
	"math/rand"
	"testing"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/paysplittest"
	"github.com/iov-one/paysplit/paysplittest/assert"
	"github.com/iov-one/paysplit/store"
)

func TestRegistrySwapAndPop(t *testing.T) {
	db := store.MemStore()
	reg := NewRegistry(paysplittest.NewAddress(), 0)

	a := paysplittest.NewAddress()
	b := paysplittest.NewAddress()
	c := paysplittest.NewAddress()
	for _, addr := range []paysplit.Address{a, b, c} {
		assert.Nil(t, reg.Add(db, addr))
	}
	assertRecipients(t, reg, db, a, b, c)

	// The last recipient takes the place of the removed one.
	assert.Nil(t, reg.Remove(db, a))
	assertRecipients(t, reg, db, c, b)

	// Removing the last one does not move anything.
	assert.Nil(t, reg.Remove(db, b))
	assertRecipients(t, reg, db, c)

	assert.Nil(t, reg.Remove(db, c))
	assertRecipients(t, reg, db)

	assert.Nil(t, reg.Add(db, b))
	assertRecipients(t, reg, db, b)
}

func TestRegistryErrors(t *testing.T) {
	a := paysplittest.NewAddress()
	b := paysplittest.NewAddress()
	instance := paysplittest.NewAddress()

	cases := map[string]struct {
		max     int32
		initial []paysplit.Address
		add     paysplit.Address
		remove  paysplit.Address
		wantErr *errors.Error
	}{
		"duplicate": {
			initial: []paysplit.Address{a},
			add:     a,
			wantErr: errors.ErrState,
		},
		"remove non member": {
			initial: []paysplit.Address{a},
			remove:  b,
			wantErr: errors.ErrState,
		},
		"remove from empty": {
			remove:  a,
			wantErr: errors.ErrState,
		},
		"limit reached": {
			max:     1,
			initial: []paysplit.Address{a},
			add:     b,
			wantErr: errors.ErrState,
		},
		"null recipient": {
			add:     paysplit.Address{},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			reg := NewRegistry(instance, tc.max)
			for _, r := range tc.initial {
				assert.Nil(t, reg.Add(db, r))
			}

			var err error
			if tc.add != nil {
				err = reg.Add(db, tc.add)
			} else {
				err = reg.Remove(db, tc.remove)
			}
			assert.IsErr(t, tc.wantErr, err)

			// Failed operations leave the registry untouched.
			assertRecipients(t, reg, db, tc.initial...)
		})
	}
}

func TestRegistriesAreSeparate(t *testing.T) {
	db := store.MemStore()
	first := NewRegistry(paysplittest.NewAddress(), 0)
	second := NewRegistry(paysplittest.NewAddress(), 0)

	a := paysplittest.NewAddress()
	assert.Nil(t, first.Add(db, a))
	assertRecipients(t, first, db, a)
	assertRecipients(t, second, db)
	assert.Nil(t, second.Add(db, a))
	assert.Nil(t, first.Remove(db, a))
	assertRecipients(t, second, db, a)
}

func TestRegistryStaysConsistent(t *testing.T) {
	db := store.MemStore()
	reg := NewRegistry(paysplittest.NewAddress(), 0)
	rnd := rand.New(rand.NewSource(42))

	pool := make([]paysplit.Address, 12)
	for i := range pool {
		pool[i] = paysplittest.NewAddress()
	}
	// Model of the expected registry content.
	var want []paysplit.Address

	for i := 0; i < 500; i++ {
		addr := pool[rnd.Intn(len(pool))]
		pos := position(want, addr)
		if rnd.Intn(2) == 0 {
			err := reg.Add(db, addr)
			if pos != 0 {
				assert.IsErr(t, errors.ErrState, err)
			} else {
				assert.Nil(t, err)
				want = append(want, addr)
			}
		} else {
			err := reg.Remove(db, addr)
			if pos == 0 {
				assert.IsErr(t, errors.ErrState, err)
			} else {
				assert.Nil(t, err)
				last := len(want) - 1
				want[pos-1] = want[last]
				want = want[:last]
			}
		}

		assertRecipients(t, reg, db, want...)
		for _, p := range pool {
			idx, err := reg.Index(db, p)
			assert.Nil(t, err)
			assert.Equal(t, int64(position(want, p)), idx)
		}
	}
}

func position(list []paysplit.Address, addr paysplit.Address) int {
	for i, a := range list {
		if a.Equals(addr) {
			return i + 1
		}
	}
	return 0
}

func assertRecipients(t testing.TB, reg Registry, db paysplit.ReadOnlyKVStore, want ...paysplit.Address) {
	t.Helper()
	got, err := reg.All(db)
	if err != nil {
		t.Fatalf("cannot list recipients: %s", err)
	}
	if len(got) != len(want) {
		t.Fatalf("want %d recipients, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !want[i].Equals(got[i]) {
			t.Fatalf("recipient %d: want %s, got %s", i, want[i], got[i])
		}
		idx, err := reg.Index(db, want[i])
		if err != nil {
			t.Fatalf("cannot get index: %s", err)
		}
		if idx != int64(i+1) {
			t.Fatalf("recipient %s: want index %d, got %d", want[i], i+1, idx)
		}
	}
	n, err := reg.Len(db)
	if err != nil {
		t.Fatalf("cannot get length: %s", err)
	}
	if n != int64(len(want)) {
		t.Fatalf("want length %d, got %d", len(want), n)
	}
}
