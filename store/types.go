package store

import "github.com/iov-one/paysplit"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = paysplit.ReadOnlyKVStore
type KVStore = paysplit.KVStore
type CacheableKVStore = paysplit.CacheableKVStore
type KVCacheWrap = paysplit.KVCacheWrap
type CommitKVStore = paysplit.CommitKVStore
type CommitID = paysplit.CommitID
