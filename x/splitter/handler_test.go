package splitter

import (
	"testing"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/paysplittest"
	"github.com/iov-one/paysplit/paysplittest/assert"
)

type router map[string]paysplit.Handler

func (r router) Handle(path string, h paysplit.Handler) {
	r[path] = h
}

func TestHandlers(t *testing.T) {
	f := newFixture()
	alice := paysplittest.NewCondition()
	bob := paysplittest.NewCondition()
	auth := &paysplittest.CtxAuth{Key: "auth"}
	asAlice := auth.SetConditions(f.ctx, alice)
	asBob := auth.SetConditions(f.ctx, bob)

	r := make(router)
	RegisterRoutes(r, auth, f.ctrl)

	deliver := func(ctx paysplit.Context, msg paysplit.Msg) (*paysplit.DeliverResult, error) {
		tx := &paysplittest.Tx{Msg: msg}
		if _, err := r[msg.Path()].Check(ctx, f.db, tx); err != nil {
			return nil, err
		}
		return r[msg.Path()].Deliver(ctx, f.db, tx)
	}

	res, err := deliver(asAlice, &CreateTemplateMsg{MaxRecipients: 3})
	assert.Nil(t, err)
	template := paysplit.Address(res.Data)

	res, err = deliver(asAlice, &CreateFactoryMsg{Template: template})
	assert.Nil(t, err)
	factory := paysplit.Address(res.Data)

	res, err = deliver(asAlice, &CreateSplitterMsg{Factory: factory})
	assert.Nil(t, err)
	instance := paysplit.Address(res.Data)

	_, err = deliver(asAlice, &CreateSplitterMsg{Factory: factory})
	assert.IsErr(t, errors.ErrState, err)

	// Creating requires a signature.
	_, err = deliver(f.ctx, &CreateSplitterMsg{Factory: factory})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	a := paysplittest.NewAddress()
	b := paysplittest.NewAddress()
	_, err = deliver(asBob, &AddRecipientMsg{Splitter: instance, Recipient: a})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	for _, rcp := range []paysplit.Address{a, b} {
		_, err = deliver(asAlice, &AddRecipientMsg{Splitter: instance, Recipient: rcp})
		assert.Nil(t, err)
	}

	assert.Nil(t, f.cash.Issue(f.db, instance, 11))
	// Anybody can split.
	res, err = deliver(asBob, &SplitMsg{Splitter: instance})
	assert.Nil(t, err)
	amount, err := coin.AmountFromBytes(res.Data)
	assert.Nil(t, err)
	assert.Equal(t, coin.Amount(10), amount)
	assertCash(t, f.cash, f.db, a, 5)

	_, err = deliver(asAlice, &RemoveRecipientMsg{Splitter: instance, Recipient: a})
	assert.Nil(t, err)
	all, err := f.ctrl.AllRecipients(f.db, instance)
	assert.Nil(t, err)
	assert.Equal(t, []paysplit.Address{b}, all)

	_, err = deliver(asBob, &ClaimOwnershipMsg{Splitter: instance})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = deliver(asAlice, &ProposeOwnerMsg{Splitter: instance, Candidate: bob.Address()})
	assert.Nil(t, err)
	_, err = deliver(asBob, &ClaimOwnershipMsg{Splitter: instance})
	assert.Nil(t, err)
	owner, err := f.ctrl.Owner(f.db, instance)
	assert.Nil(t, err)
	assert.Equal(t, bob.Address(), owner)

	holder := paysplittest.NewAddress()
	tok, err := f.tokens.Create(f.db, &tokenFixture, holder)
	assert.Nil(t, err)
	assert.Nil(t, f.tokens.Transfer(f.ctx, f.db, tok, holder, instance, 7))
	res, err = deliver(asAlice, &SplitTokensMsg{Splitter: instance, Token: tok})
	assert.Nil(t, err)
	amount, err = coin.AmountFromBytes(res.Data)
	assert.Nil(t, err)
	assert.Equal(t, coin.Amount(7), amount)

	kinds := make(map[string]int)
	for _, ev := range f.events.Events() {
		kinds[ev.Kind]++
	}
	assert.Equal(t, map[string]int{
		"SplitterCreated":  1,
		"AddedRecipient":   2,
		"RemovedRecipient": 1,
		"EthSplit":         1,
		"OwnerProposed":    1,
		"OwnershipClaimed": 1,
		"TokensSplit":      1,
	}, kinds)
}

func TestMsgValidation(t *testing.T) {
	addr := paysplittest.NewAddress()

	cases := map[string]struct {
		msg     paysplit.Msg
		wantErr *errors.Error
	}{
		"valid template": {
			msg: &CreateTemplateMsg{MaxRecipients: 10},
		},
		"negative limit": {
			msg:     &CreateTemplateMsg{MaxRecipients: -1},
			wantErr: errors.ErrMsg,
		},
		"simple factory": {
			msg: &CreateFactoryMsg{MaxRecipients: 5},
		},
		"clonable factory": {
			msg: &CreateFactoryMsg{Template: addr},
		},
		"clonable factory with own limit": {
			msg:     &CreateFactoryMsg{Template: addr, MaxRecipients: 5},
			wantErr: errors.ErrMsg,
		},
		"create without factory": {
			msg:     &CreateSplitterMsg{},
			wantErr: errors.ErrInput,
		},
		"add without recipient": {
			msg:     &AddRecipientMsg{Splitter: addr},
			wantErr: errors.ErrInput,
		},
		"remove": {
			msg: &RemoveRecipientMsg{Splitter: addr, Recipient: addr},
		},
		"split": {
			msg: &SplitMsg{Splitter: addr},
		},
		"split tokens without token": {
			msg:     &SplitTokensMsg{Splitter: addr},
			wantErr: errors.ErrInput,
		},
		"withdraw proposal": {
			msg: &ProposeOwnerMsg{Splitter: addr},
		},
		"propose broken address": {
			msg:     &ProposeOwnerMsg{Splitter: addr, Candidate: paysplit.Address("short")},
			wantErr: errors.ErrInput,
		},
		"claim": {
			msg: &ClaimOwnershipMsg{Splitter: addr},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
