package store

import "github.com/iov-one/paysplit/errors"

// EmptyKVStore never holds any data, used as a base layer to test caching
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

// Get always returns nil
func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }

// Has always returns false
func (EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }

// Set is a noop
func (EmptyKVStore) Set(key, value []byte) error { return nil }

// Delete is a noop
func (EmptyKVStore) Delete(key []byte) error { return nil }

// Atomic runs fn with a savepoint of given store. All changes done by fn
// are written to db only if fn returns no error. Otherwise they are
// discarded, leaving db exactly as it was before the call.
func Atomic(db KVStore, fn func(KVStore) error) error {
	cacheable, ok := db.(CacheableKVStore)
	if !ok {
		cacheable = BTreeCacheable{db}
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "cannot write savepoint")
	}
	return nil
}
