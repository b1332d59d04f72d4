package orm

import (
	"regexp"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// ModelBucket stores models of a single type under a common key prefix.
//
// ModelBucket is a value type and it is safe to declare it as a package
// level variable and use it concurrently.
type ModelBucket struct {
	prefix []byte
	seq    *Sequence
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *ModelBucket)

// WithIDSequence configures the bucket to use the given sequence instance
// for generating ID when a model is stored without a key.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *ModelBucket) {
		mb.seq = &s
	}
}

// NewModelBucket returns a ModelBucket instance. Bucket name must be
// lowercase alphanumeric and unique within the application.
func NewModelBucket(name string, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic("illegal bucket name: " + name)
	}
	mb := ModelBucket{prefix: append([]byte(name), ':')}
	for _, fn := range opts {
		fn(&mb)
	}
	return mb
}

// DBKey is the full key we store in the db, including prefix. We copy into
// a new array rather than use append, as we don't want consecutive calls to
// overwrite the same byte array.
func (mb ModelBucket) DBKey(key []byte) []byte {
	l := len(mb.prefix)
	out := make([]byte, l+len(key))
	copy(out, mb.prefix)
	copy(out[l:], key)
	return out
}

// One query the database for a single model instance. Lookup is done by the
// primary key. Result is loaded into given destination model.
//
// This method returns ErrNotFound if the entity does not exist in the
// database.
func (mb ModelBucket) One(db paysplit.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(mb.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := Unmarshal(raw, dest); err != nil {
		return err
	}
	return nil
}

// Has returns nil if an entity with given primary key exists. ErrNotFound is
// returned otherwise.
func (mb ModelBucket) Has(db paysplit.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if !ok {
		return errors.ErrNotFound
	}
	return nil
}

// Put saves given model in the database. If key is nil a new key is
// generated using the configured ID sequence. Used key is returned.
func (mb ModelBucket) Put(db paysplit.KVStore, key []byte, m Model) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if len(key) == 0 {
		if mb.seq == nil {
			return nil, errors.Wrap(errors.ErrHuman, "bucket does not have an ID sequence")
		}
		var err error
		key, err = mb.seq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
	}

	raw, err := Marshal(m)
	if err != nil {
		return nil, err
	}
	if err := db.Set(mb.DBKey(key), raw); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	return key, nil
}

// Delete removes an entity with given primary key from the database. It
// returns ErrNotFound if an entity with given key does not exist.
func (mb ModelBucket) Delete(db paysplit.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	if err := db.Delete(mb.DBKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}
