package mock

import (
	"context"
	"slices"
	"sync"

	"github.com/poiesic/phonebook/core"
	"github.com/poiesic/phonebook/storage"
)

// MockStore is a test double for storage.ContactStore.
// It allows custom behavior injection via function fields.
type MockStore struct {
	// LoadAllFunc is called by LoadAll if set.
	LoadAllFunc func(ctx context.Context) ([]*core.Contact, error)

	// InsertFunc is called by Insert if set. A nil return still stores the contact.
	InsertFunc func(ctx context.Context, contact *core.Contact) error

	// UpdateFunc is called by Update if set. A nil return still applies the update.
	UpdateFunc func(ctx context.Context, oldPhone string, contact *core.Contact) error

	// DeleteFunc is called by Delete if set. A nil return still removes the contact.
	DeleteFunc func(ctx context.Context, phone string) error

	// ClearAllFunc is called by ClearAll if set. A nil return still clears the store.
	ClearAllFunc func(ctx context.Context) error

	mu       sync.Mutex
	contacts []core.Contact
	calls    map[string]int
	closed   bool
}

var _ storage.ContactStore = (*MockStore)(nil)

// NewMockStore creates a working in-memory store holding copies of the given contacts.
func NewMockStore(contacts ...*core.Contact) *MockStore {
	m := &MockStore{calls: make(map[string]int)}
	for _, c := range contacts {
		m.contacts = append(m.contacts, *c)
	}
	return m
}

// LoadAll returns copies of the stored contacts in insertion order.
func (m *MockStore) LoadAll(ctx context.Context) ([]*core.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["loadAll"]++

	if m.LoadAllFunc != nil {
		return m.LoadAllFunc(ctx)
	}

	out := make([]*core.Contact, len(m.contacts))
	for i := range m.contacts {
		c := m.contacts[i]
		out[i] = &c
	}
	return out, nil
}

// Insert stores a copy of contact.
func (m *MockStore) Insert(ctx context.Context, contact *core.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["insert"]++

	if m.InsertFunc != nil {
		if err := m.InsertFunc(ctx, contact); err != nil {
			return err
		}
	}
	if m.indexOf(contact.Phone) >= 0 {
		return storage.ErrDuplicateKey
	}
	m.contacts = append(m.contacts, *contact)
	return nil
}

// Update replaces the contact stored under oldPhone.
func (m *MockStore) Update(ctx context.Context, oldPhone string, contact *core.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["update"]++

	if m.UpdateFunc != nil {
		if err := m.UpdateFunc(ctx, oldPhone, contact); err != nil {
			return err
		}
	}
	i := m.indexOf(oldPhone)
	if i < 0 {
		return storage.ErrNotFound
	}
	if contact.Phone != oldPhone && m.indexOf(contact.Phone) >= 0 {
		return storage.ErrDuplicateKey
	}
	m.contacts[i] = *contact
	return nil
}

// Delete removes the contact stored under phone.
func (m *MockStore) Delete(ctx context.Context, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["delete"]++

	if m.DeleteFunc != nil {
		if err := m.DeleteFunc(ctx, phone); err != nil {
			return err
		}
	}
	i := m.indexOf(phone)
	if i < 0 {
		return storage.ErrNotFound
	}
	m.contacts = slices.Delete(m.contacts, i, i+1)
	return nil
}

// ClearAll removes every contact.
func (m *MockStore) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["clearAll"]++

	if m.ClearAllFunc != nil {
		if err := m.ClearAllFunc(ctx); err != nil {
			return err
		}
	}
	m.contacts = nil
	return nil
}

// Close marks the store closed.
func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["close"]++
	m.closed = true
	return nil
}

// Stored returns copies of the contacts currently held, in insertion order.
func (m *MockStore) Stored() []core.Contact {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.contacts)
}

// Calls returns how many times the named operation ran:
// "loadAll", "insert", "update", "delete", "clearAll" or "close".
func (m *MockStore) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// Closed reports whether Close was called.
func (m *MockStore) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *MockStore) indexOf(phone string) int {
	return slices.IndexFunc(m.contacts, func(c core.Contact) bool {
		return c.Phone == phone
	})
}
