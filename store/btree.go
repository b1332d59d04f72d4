package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/paysplit/errors"
)

// btreeDegree is the branching factor of every cache tree.
const btreeDegree = 2

// BTreeCacheable gives any KVStore a btree backed CacheWrap.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a layer that buffers writes until flushed into the
// wrapped store.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, nil)
}

// MemStore returns an in-memory store without persistence. Use it in tests.
func MemStore() CacheableKVStore {
	return NewBTreeCacheWrap(EmptyKVStore{}, nil)
}

// BTreeCacheWrap keeps pending writes and deletes in an ordered tree on top
// of a parent store. Reads fall through to the parent for keys the tree does
// not know about.
type BTreeCacheWrap struct {
	pending *btree.BTree
	free    *btree.FreeList
	parent  KVStore
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap layers a cache over parent. Pass a free list to share
// node allocations between nested layers, or nil to get a fresh one.
func NewBTreeCacheWrap(parent KVStore, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		pending: btree.NewWithFreeList(btreeDegree, free),
		free:    free,
		parent:  parent,
	}
}

// CacheWrap stacks one more layer over this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.free)
}

// Write applies every pending change to the parent in ascending key order
// and empties the cache. The first parent failure stops the flush.
func (b BTreeCacheWrap) Write() error {
	var err error
	b.pending.Ascend(func(it btree.Item) bool {
		e := it.(entry)
		if e.removed {
			err = b.parent.Delete(e.key)
		} else {
			err = b.parent.Set(e.key, e.value)
		}
		if err != nil {
			err = errors.Wrapf(errors.ErrDatabase, "flush %X: %s", e.key, err)
		}
		return err == nil
	})
	b.Discard()
	return err
}

// Discard drops all pending changes. Tree nodes go back to the free list.
func (b BTreeCacheWrap) Discard() {
	for b.pending.DeleteMin() != nil {
	}
}

// Set records a pending write.
func (b BTreeCacheWrap) Set(key, value []byte) error {
	if key == nil {
		panic("nil key")
	}
	b.pending.ReplaceOrInsert(entry{key: key, value: value})
	return nil
}

// Delete records a pending removal. It shadows any value of the parent.
func (b BTreeCacheWrap) Delete(key []byte) error {
	if key == nil {
		panic("nil key")
	}
	b.pending.ReplaceOrInsert(entry{key: key, removed: true})
	return nil
}

// Get returns the pending value of key, or the parent value when the key
// was never touched in this layer.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := b.lookup(key); ok {
		if e.removed {
			return nil, nil
		}
		return e.value, nil
	}
	return b.parent.Get(key)
}

// Has works like Get but only reports presence.
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	if e, ok := b.lookup(key); ok {
		return !e.removed, nil
	}
	return b.parent.Has(key)
}

func (b BTreeCacheWrap) lookup(key []byte) (entry, bool) {
	it := b.pending.Get(entry{key: key})
	if it == nil {
		return entry{}, false
	}
	return it.(entry), true
}

// entry is a single pending change. A removed entry marks a delete and
// carries no value.
type entry struct {
	key     []byte
	value   []byte
	removed bool
}

var _ btree.Item = entry{}

// Less orders entries by their raw key bytes.
func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
