package token

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/paysplittest"
	"github.com/iov-one/paysplit/paysplittest/assert"
	"github.com/iov-one/paysplit/store"
)

func TestGenesis(t *testing.T) {
	alice := paysplittest.NewAddress()
	bob := paysplittest.NewAddress()

	raw := `{"token": [
		{"name": "First Token", "symbol": "FST", "holders": [
			{"address": "` + alice.String() + `", "amount": 10},
			{"address": "` + bob.String() + `", "amount": 5}
		]},
		{"name": "Second Token", "symbol": "SND", "holders": []}
	]}`
	var opts paysplit.Options
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		t.Fatalf("cannot decode genesis: %s", err)
	}

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	ctrl := NewController()
	first := Address(tokenSeqKey(1))
	assertBalance(t, ctrl, db, first, alice, 10)
	assertBalance(t, ctrl, db, first, bob, 5)

	info, err := ctrl.Token(db, first)
	assert.Nil(t, err)
	assert.Equal(t, "FST", info.Symbol)

	second, err := ctrl.Token(db, Address(tokenSeqKey(2)))
	assert.Nil(t, err)
	assert.Equal(t, "Second Token", second.Name)
}
