package splitter

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
)

// Registry is the ordered, duplicate free list of recipients of a single
// instance. It is kept as two mappings, position to address and address to
// position, so that lookup and removal do not depend on the list length.
//
// Positions are 1-based. Position 0 means "not a recipient".
//
//   rcp:<instance>:<position> -> address
//   idx:<instance>:<address>  -> position
//   rcn:<instance>            -> count
type Registry struct {
	instance paysplit.Address
	max      int32
}

// NewRegistry returns the registry of given instance. A positive max
// limits the number of recipients.
func NewRegistry(instance paysplit.Address, max int32) Registry {
	return Registry{instance: instance, max: max}
}

func (r Registry) key(prefix string, suffix []byte) []byte {
	key := make([]byte, 0, len(prefix)+len(r.instance)+1+len(suffix))
	key = append(key, prefix...)
	key = append(key, r.instance...)
	key = append(key, ':')
	return append(key, suffix...)
}

func (r Registry) recipientKey(pos int64) []byte {
	return r.key("rcp:", encodePos(pos))
}

func (r Registry) indexKey(id paysplit.Address) []byte {
	return r.key("idx:", id)
}

func (r Registry) countKey() []byte {
	return r.key("rcn:", nil)
}

// Len returns the number of recipients.
func (r Registry) Len(db paysplit.ReadOnlyKVStore) (int64, error) {
	return readPos(db, r.countKey())
}

// Index returns the 1-based position of the recipient or 0 if id is not a
// recipient.
func (r Registry) Index(db paysplit.ReadOnlyKVStore, id paysplit.Address) (int64, error) {
	if id.IsNull() {
		return 0, nil
	}
	return readPos(db, r.indexKey(id))
}

// At returns the recipient at given 1-based position.
func (r Registry) At(db paysplit.ReadOnlyKVStore, pos int64) (paysplit.Address, error) {
	raw, err := db.Get(r.recipientKey(pos))
	if err != nil {
		return nil, errors.Wrap(err, "cannot read recipient")
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no recipient at %d", pos)
	}
	return paysplit.Address(raw), nil
}

// All returns recipients in registry order.
func (r Registry) All(db paysplit.ReadOnlyKVStore) ([]paysplit.Address, error) {
	n, err := r.Len(db)
	if err != nil {
		return nil, err
	}
	all := make([]paysplit.Address, 0, n)
	for pos := int64(1); pos <= n; pos++ {
		addr, err := r.At(db, pos)
		if err != nil {
			return nil, err
		}
		all = append(all, addr)
	}
	return all, nil
}

// Add appends id to the list.
func (r Registry) Add(db paysplit.KVStore, id paysplit.Address) error {
	if err := id.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	switch idx, err := r.Index(db, id); {
	case err != nil:
		return err
	case idx != 0:
		return errors.Wrap(errors.ErrState, "already recipient")
	}
	n, err := r.Len(db)
	if err != nil {
		return err
	}
	if r.max > 0 && n >= int64(r.max) {
		return errors.Wrap(errors.ErrState, "too many recipients")
	}

	pos := n + 1
	if err := db.Set(r.recipientKey(pos), id); err != nil {
		return errors.Wrap(err, "cannot save recipient")
	}
	if err := db.Set(r.indexKey(id), encodePos(pos)); err != nil {
		return errors.Wrap(err, "cannot save index")
	}
	return r.setLen(db, pos)
}

// Remove deletes id from the list. The last recipient takes the place of
// the removed one, so the order of other recipients is kept except for the
// moved one.
func (r Registry) Remove(db paysplit.KVStore, id paysplit.Address) error {
	pos, err := r.Index(db, id)
	if err != nil {
		return err
	}
	if pos == 0 {
		return errors.Wrap(errors.ErrState, "not recipient")
	}
	n, err := r.Len(db)
	if err != nil {
		return err
	}

	if pos != n {
		last, err := r.At(db, n)
		if err != nil {
			return err
		}
		if err := db.Set(r.recipientKey(pos), last); err != nil {
			return errors.Wrap(err, "cannot save recipient")
		}
		if err := db.Set(r.indexKey(last), encodePos(pos)); err != nil {
			return errors.Wrap(err, "cannot save index")
		}
	}
	if err := db.Delete(r.recipientKey(n)); err != nil {
		return errors.Wrap(err, "cannot delete recipient")
	}
	if err := db.Delete(r.indexKey(id)); err != nil {
		return errors.Wrap(err, "cannot delete index")
	}
	return r.setLen(db, n-1)
}

func (r Registry) setLen(db paysplit.KVStore, n int64) error {
	if n == 0 {
		return errors.Wrap(db.Delete(r.countKey()), "cannot delete count")
	}
	return errors.Wrap(db.Set(r.countKey(), encodePos(n)), "cannot save count")
}

func encodePos(pos int64) []byte {
	return orm.EncodeSequence(pos)
}

func readPos(db paysplit.ReadOnlyKVStore, key []byte) (int64, error) {
	raw, err := db.Get(key)
	if err != nil {
		return 0, errors.Wrap(err, "cannot read registry")
	}
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrDatabase, "corrupted registry entry of %d bytes", len(raw))
	}
	return orm.DecodeSequence(raw), nil
}
