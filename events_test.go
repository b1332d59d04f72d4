package paysplit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventAttributes(t *testing.T) {
	addr := NewCondition("split", "instance", []byte{1}).Address()
	ev := NewEvent("EthSplit", "splitter", addr, "amount", uint64(10))

	got, ok := ev.Attr("amount")
	require.True(t, ok)
	assert.Equal(t, "10", got)

	got, ok = ev.Attr("splitter")
	require.True(t, ok)
	assert.Equal(t, addr.String(), got)

	_, ok = ev.Attr("missing")
	assert.False(t, ok)

	tags := ev.Tags()
	require.Len(t, tags, 2)
	assert.Equal(t, "EthSplit.splitter", string(tags[0].Key))
	assert.Equal(t, "EthSplit.amount", string(tags[1].Key))
}

func TestEventOddAttributesPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewEvent("broken", "key")
	})
}

func TestEmit(t *testing.T) {
	// Emitting without a log is a no-op.
	Emit(context.Background(), NewEvent("dropped"))

	var log EventLog
	ctx := WithEventLog(context.Background(), &log)
	Emit(ctx, NewEvent("first"))
	mark := log.Len()
	Emit(ctx, NewEvent("second"))
	Emit(ctx, NewEvent("third"))
	log.Rollback(mark)

	events := log.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "first", events[0].Kind)
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	_, ok := GetHeight(ctx)
	assert.False(t, ok)
	assert.Equal(t, DefaultLogger, GetLogger(ctx))

	ctx = WithHeight(ctx, 7)
	ctx = WithChainID(ctx, "test-chain")
	h, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(7), h)
	assert.Equal(t, "test-chain", GetChainID(ctx))

	assert.Panics(t, func() {
		WithChainID(ctx, "x")
	})
}
