package badger

import (
	"context"
	"errors"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/phonebook/core"
	"github.com/poiesic/phonebook/storage"
)

// ContactStore implements storage.ContactStore for BadgerDB.
type ContactStore struct {
	backend     *Backend
	seq         *badger.Sequence
	ownsBackend bool
}

var _ storage.ContactStore = (*ContactStore)(nil)

// NewContactStore creates a ContactStore on an already open backend.
// The caller keeps ownership of the backend.
func NewContactStore(backend *Backend) (*ContactStore, error) {
	seq, err := backend.GetSequence(contactSeq)
	if err != nil {
		return nil, err
	}

	return &ContactStore{
		backend: backend,
		seq:     seq,
	}, nil
}

// OpenContactStore opens the BadgerDB directory at filePath and returns a
// ContactStore that closes the database when it is closed.
func OpenContactStore(filePath string) (*ContactStore, error) {
	backend, err := OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	store, err := NewContactStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	store.ownsBackend = true
	return store, nil
}

// Close releases the sequence, and the backend when the store opened it.
func (r *ContactStore) Close() error {
	if r.backend.IsClosed() {
		return nil
	}
	err := r.seq.Release()
	if r.ownsBackend {
		err = errors.Join(err, r.backend.Close())
	}
	return err
}

// LoadAll returns every stored contact ordered by insertion sequence.
func (r *ContactStore) LoadAll(ctx context.Context) ([]*core.Contact, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var entries []*core.Entry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(contactPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var entry *core.Entry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(entries, func(a, b *core.Entry) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		}
		return 0
	})

	contacts := make([]*core.Contact, len(entries))
	for i, entry := range entries {
		c := entry.Contact
		contacts[i] = &c
	}
	return contacts, nil
}

// Insert stores a new contact under the next insertion sequence.
func (r *ContactStore) Insert(ctx context.Context, contact *core.Contact) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makePhoneKey(contact.Phone)
		if _, err := tx.Get(key); err == nil {
			return storage.ErrDuplicateKey
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		seq, err := r.nextSeq()
		if err != nil {
			return err
		}
		entry := &core.Entry{Seq: seq, Contact: *contact}
		if err := tx.Set(key, storage.MarshalEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Update rewrites the contact stored under oldPhone, moving it to a new key
// when the phone changed. The insertion sequence is preserved.
func (r *ContactStore) Update(ctx context.Context, oldPhone string, contact *core.Contact) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		oldKey := makePhoneKey(oldPhone)
		old, err := r.readEntry(tx, oldKey, oldPhone)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		newKey := oldKey
		if contact.Phone != oldPhone {
			newKey = makePhoneKey(contact.Phone)
			if _, err := tx.Get(newKey); err == nil {
				return storage.ErrDuplicateKey
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			if err := tx.Delete(oldKey); err != nil {
				return err
			}
		}

		entry := &core.Entry{Seq: old.Seq, Contact: *contact}
		if err := tx.Set(newKey, storage.MarshalEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Delete removes the contact stored under phone.
func (r *ContactStore) Delete(ctx context.Context, phone string) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makePhoneKey(phone)
		entry, err := r.readEntry(tx, key, phone)
		if err != nil {
			return err
		}
		if entry == nil {
			return storage.ErrNotFound
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ClearAll removes every stored contact. The sequence keeps counting.
func (r *ContactStore) ClearAll(ctx context.Context) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return r.backend.DropPrefix([]byte(contactPrefix))
}

// readEntry reads the entry at key. Returns nil, nil when the key is absent
// or holds a different phone (hash collision).
func (r *ContactStore) readEntry(tx *badger.Txn, key []byte, phone string) (*core.Entry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var entry *core.Entry
	err = item.Value(func(val []byte) error {
		var err error
		entry, err = storage.UnmarshalEntry(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	if entry.Contact.Phone != phone {
		return nil, nil
	}
	return entry, nil
}

// nextSeq returns the next insertion sequence number.
func (r *ContactStore) nextSeq() (uint64, error) {
	next, err := r.seq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if next == 0 {
		return r.seq.Next()
	}
	return next, nil
}
