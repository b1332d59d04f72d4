package splitter

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/orm"
	"github.com/iov-one/paysplit/paysplittest"
	"github.com/iov-one/paysplit/paysplittest/assert"
	"github.com/iov-one/paysplit/store"
	"github.com/iov-one/paysplit/x/token"
)

var tokenFixture = token.Token{Name: "Split Token", Symbol: "SPL", Supply: 100}

func TestGenesis(t *testing.T) {
	owner := paysplittest.NewAddress()
	a := paysplittest.NewAddress()
	b := paysplittest.NewAddress()

	raw := `{"splitter": {
		"splitters": [
			{"owner": "` + owner.String() + `", "recipients": ["` + a.String() + `", "` + b.String() + `"]}
		],
		"factories": [
			{"max_recipients": 4},
			{"clonable": true, "max_recipients": 2}
		]
	}}`
	var opts paysplit.Options
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		t.Fatalf("cannot decode genesis: %s", err)
	}

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	ctrl := NewController(nil, nil)
	instance := InstanceAddress(orm.EncodeSequence(1))
	got, err := ctrl.Owner(db, instance)
	assert.Nil(t, err)
	assert.Equal(t, owner, got)
	all, err := ctrl.AllRecipients(db, instance)
	assert.Nil(t, err)
	assert.Equal(t, []paysplit.Address{a, b}, all)

	simple, err := ctrl.Factory(db, FactoryAddress(orm.EncodeSequence(1)))
	assert.Nil(t, err)
	assert.Equal(t, false, simple.Clonable())
	assert.Equal(t, int32(4), simple.MaxRecipients)

	clonable, err := ctrl.Factory(db, FactoryAddress(orm.EncodeSequence(2)))
	assert.Nil(t, err)
	assert.Equal(t, InstanceAddress(orm.EncodeSequence(2)), clonable.Template)
	tpl, err := ctrl.Splitter(db, clonable.Template)
	assert.Nil(t, err)
	assert.Equal(t, true, tpl.Template)
	assert.Equal(t, int32(2), tpl.MaxRecipients)
}
