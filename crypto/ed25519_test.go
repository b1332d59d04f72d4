package crypto

import (
	"bytes"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/paysplit/paysplittest/assert"
)

func TestVerify(t *testing.T) {
	signer := GenPrivKeyEd25519()
	other := GenPrivKeyEd25519()

	payout := []byte("split/split:0001")
	sig, err := signer.Sign(payout)
	assert.Nil(t, err)
	otherSig, err := other.Sign(payout)
	assert.Nil(t, err)

	cases := map[string]struct {
		pub  *PublicKey
		msg  []byte
		sig  *Signature
		want bool
	}{
		"signed by the key": {
			pub:  signer.PublicKey(),
			msg:  payout,
			sig:  sig,
			want: true,
		},
		"modified message": {
			pub: signer.PublicKey(),
			msg: []byte("split/split:0002"),
			sig: sig,
		},
		"signed by another key": {
			pub: signer.PublicKey(),
			msg: payout,
			sig: otherSig,
		},
		"empty signature": {
			pub: signer.PublicKey(),
			msg: payout,
			sig: &Signature{},
		},
		"nil signature": {
			pub: signer.PublicKey(),
			msg: payout,
		},
		"truncated public key": {
			pub: &PublicKey{Ed25519: signer.PublicKey().Ed25519[:16]},
			msg: payout,
			sig: sig,
		},
		"nil public key": {
			msg: payout,
			sig: sig,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.pub.Verify(tc.msg, tc.sig))
		})
	}
}

func TestSignerCondition(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()

	cond := pub.Condition()
	assert.Nil(t, cond.Validate())
	if !bytes.HasPrefix(cond, []byte("sigs/ed25519/")) {
		t.Fatalf("unexpected condition format: %q", cond)
	}
	assert.Equal(t, cond.Address(), pub.Address())

	if bytes.Equal(cond, GenPrivKeyEd25519().PublicKey().Condition()) {
		t.Fatal("different keys share a condition")
	}

	// A key read back from its serialized form controls the same account.
	raw, err := proto.Marshal(pub)
	assert.Nil(t, err)
	var loaded PublicKey
	assert.Nil(t, proto.Unmarshal(raw, &loaded))
	assert.Equal(t, pub.Address(), loaded.Address())

	var empty PublicKey
	assert.Nil(t, empty.Condition())
	assert.Nil(t, empty.Address())
}

func TestPrivKeyEd25519FromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)

	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a.Ed25519, b.Ed25519)
	assert.Equal(t, seed, a.Ed25519[:32])
	assert.Equal(t, a.PublicKey().Address(), b.PublicKey().Address())

	c := PrivKeyEd25519FromSeed(bytes.Repeat([]byte{8}, 32))
	if bytes.Equal(a.PublicKey().Ed25519, c.PublicKey().Ed25519) {
		t.Fatal("different seeds produce the same key")
	}

	for _, size := range []int{0, 1, 31, 33} {
		assert.Panics(t, func() { PrivKeyEd25519FromSeed(make([]byte, size)) })
	}
}
