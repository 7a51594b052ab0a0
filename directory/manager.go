package directory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/phonebook/core"
	"github.com/poiesic/phonebook/storage"
)

// Manager owns the canonical contact collection and mirrors it to a store.
// It is not safe for concurrent use; see Locked.
type Manager struct {
	store      storage.ContactStore
	categories core.CategorySet
	logger     *slog.Logger

	all        []*core.Contact
	phones     map[string]struct{}
	byCategory map[string][]*core.Contact

	loadErr error
}

// Option configures a Manager.
type Option func(*managerOptions)

type managerOptions struct {
	categories []string
	logger     *slog.Logger
}

// WithCategories sets the valid category names.
// Default is core.DefaultCategories().
func WithCategories(names ...string) Option {
	return func(o *managerOptions) {
		o.categories = names
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *managerOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// NewManager creates a Manager and fills it from store.LoadAll.
//
// Loaded contacts are trusted: they are not checked for duplicate phones or
// valid categories and are not written back. If LoadAll fails the Manager
// starts empty and the failure is available from LoadErr.
func NewManager(ctx context.Context, store storage.ContactStore, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	options := &managerOptions{
		categories: core.DefaultCategories(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	categories, err := core.NewCategorySet(options.categories...)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		store:      store,
		categories: categories,
		logger:     options.logger,
	}
	m.reset()
	m.load(ctx)
	return m, nil
}

// reset empties all three structures and recreates the category partitions.
func (m *Manager) reset() {
	m.all = nil
	m.phones = make(map[string]struct{})
	m.byCategory = make(map[string][]*core.Contact)
	for _, name := range m.categories.Names() {
		m.byCategory[name] = []*core.Contact{}
	}
}

func (m *Manager) load(ctx context.Context) {
	loaded, err := m.store.LoadAll(ctx)
	if err != nil {
		m.loadErr = err
		m.logger.Warn("contact store unavailable, starting empty", "err", err)
		return
	}

	for _, c := range loaded {
		if c == nil {
			continue
		}
		if canonical, ok := m.categories.Canonical(c.Category); ok {
			c.Category = canonical
		} else {
			m.logger.Warn("loaded contact has unknown category", "phone", c.Phone, "category", c.Category)
		}
		m.insert(c)
	}
	m.logger.Debug("loaded contacts", "count", len(loaded))
}

// LoadErr returns the error LoadAll failed with at startup, or nil.
func (m *Manager) LoadErr() error {
	return m.loadErr
}

// insert appends c to the list, the phone index and its partition.
func (m *Manager) insert(c *core.Contact) {
	m.all = append(m.all, c)
	m.phones[c.Phone] = struct{}{}
	m.byCategory[c.Category] = append(m.byCategory[c.Category], c)
}

// remove takes c out of the list, the phone index and its partition.
// Entries are matched by pointer, not position.
func (m *Manager) remove(c *core.Contact) {
	same := func(x *core.Contact) bool { return x == c }
	m.all = slices.DeleteFunc(m.all, same)
	delete(m.phones, c.Phone)
	m.byCategory[c.Category] = slices.DeleteFunc(m.byCategory[c.Category], same)
}

// AddContact validates contact and adds it to memory and the store.
//
// Returns core.ErrDuplicatePhone or core.ErrInvalidCategory without touching
// anything. If the store rejects the insert, the in-memory insert is undone
// and the error is returned wrapped in ErrPersistenceFailed.
func (m *Manager) AddContact(ctx context.Context, contact core.Contact) error {
	if m.IsDuplicate(contact.Phone) {
		return fmt.Errorf("%w: %s", core.ErrDuplicatePhone, contact.Phone)
	}
	category, err := m.categories.ValidateCategory(contact.Category)
	if err != nil {
		return err
	}
	contact.Category = category

	c := &contact
	m.insert(c)

	if err := m.store.Insert(ctx, c); err != nil {
		m.remove(c)
		m.logger.Error("failed to save contact, rolled back", "phone", c.Phone, "err", err)
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	m.logger.Debug("contact added", "phone", c.Phone, "category", c.Category)
	return nil
}

// Search finds the first contact matching term on the given field.
func (m *Manager) Search(term string, field SearchField) (core.Contact, bool) {
	c := m.find(term, field)
	if c == nil {
		return core.Contact{}, false
	}
	return *c, true
}

// SearchByName returns the first contact, in list order, whose name equals
// name ignoring case.
func (m *Manager) SearchByName(name string) (core.Contact, bool) {
	return m.Search(name, ByName)
}

// SearchByPhone returns the contact with exactly this phone number.
func (m *Manager) SearchByPhone(phone string) (core.Contact, bool) {
	return m.Search(phone, ByPhone)
}

// find is a linear scan of the list returning the live record.
func (m *Manager) find(term string, field SearchField) *core.Contact {
	for _, c := range m.all {
		switch field {
		case ByName:
			if strings.EqualFold(c.Name, term) {
				return c
			}
		case ByPhone:
			if c.Phone == term {
				return c
			}
		}
	}
	return nil
}

// UpdateContact changes the phone and/or email of the contact found by term.
//
// Returns core.ErrNotFound if no contact matches and core.ErrDuplicatePhone if
// the new phone belongs to another contact; nothing is modified in either
// case. Otherwise memory is updated and then the store. A store failure does
// not undo the change: the error is nil and the Outcome reports the drift.
func (m *Manager) UpdateContact(ctx context.Context, term string, field SearchField, changes Changes) (Outcome, error) {
	c := m.find(term, field)
	if c == nil {
		return Outcome{}, fmt.Errorf("%w: %s %q", core.ErrNotFound, field, term)
	}

	oldPhone := c.Phone
	if changes.Phone != nil && *changes.Phone != oldPhone {
		newPhone := *changes.Phone
		if m.IsDuplicate(newPhone) {
			return Outcome{}, fmt.Errorf("%w: %s", core.ErrDuplicatePhone, newPhone)
		}
		delete(m.phones, oldPhone)
		c.Phone = newPhone
		m.phones[newPhone] = struct{}{}
	}
	if changes.Email != nil {
		c.Email = *changes.Email
	}

	if err := m.store.Update(ctx, oldPhone, c); err != nil {
		m.logger.Warn("contact updated in memory but store update failed", "phone", oldPhone, "err", err)
		return Outcome{Persisted: false, StoreErr: err}, nil
	}

	m.logger.Debug("contact updated", "old_phone", oldPhone, "phone", c.Phone)
	return Outcome{Persisted: true}, nil
}

// DeleteContact removes the contact found by term.
//
// Returns core.ErrNotFound if no contact matches. A store failure does not
// restore the contact: the error is nil and the Outcome reports the drift.
func (m *Manager) DeleteContact(ctx context.Context, term string, field SearchField) (Outcome, error) {
	c := m.find(term, field)
	if c == nil {
		return Outcome{}, fmt.Errorf("%w: %s %q", core.ErrNotFound, field, term)
	}

	phone := c.Phone
	m.remove(c)

	if err := m.store.Delete(ctx, phone); err != nil {
		m.logger.Warn("contact deleted from memory but store delete failed", "phone", phone, "err", err)
		return Outcome{Persisted: false, StoreErr: err}, nil
	}

	m.logger.Debug("contact deleted", "phone", phone)
	return Outcome{Persisted: true}, nil
}

// SortByName reorders the contact list by name, ignoring case.
// Category partitions and the store are left untouched.
func (m *Manager) SortByName(alg Algorithm) error {
	sorter, err := alg.sorter()
	if err != nil {
		return err
	}
	if len(m.all) == 0 {
		return nil
	}

	snapshot := slices.Clone(m.all)
	sorter(snapshot)
	m.all = snapshot

	m.logger.Debug("contacts sorted", "algorithm", alg, "count", len(snapshot))
	return nil
}

// IsDuplicate reports whether phone already belongs to a contact.
func (m *Manager) IsDuplicate(phone string) bool {
	_, ok := m.phones[phone]
	return ok
}

// ListByCategory returns copies of the contacts filed under category, in
// insertion order. An unknown category yields an empty result.
func (m *Manager) ListByCategory(category string) []core.Contact {
	canonical, ok := m.categories.Canonical(category)
	if !ok {
		return []core.Contact{}
	}
	return copyContacts(m.byCategory[canonical])
}

// Contacts returns copies of all contacts in current list order.
func (m *Manager) Contacts() []core.Contact {
	return copyContacts(m.all)
}

// Len returns the number of contacts.
func (m *Manager) Len() int {
	return len(m.all)
}

// Categories returns the valid category names in configured order.
func (m *Manager) Categories() []string {
	return m.categories.Names()
}

// CategoryCounts returns the size of every configured category partition.
func (m *Manager) CategoryCounts() []CategoryCount {
	names := m.categories.Names()
	counts := make([]CategoryCount, len(names))
	for i, name := range names {
		counts[i] = CategoryCount{Category: name, Count: len(m.byCategory[name])}
	}
	return counts
}

// Clear removes every contact from the store and then from memory.
// Memory is left as is when the store fails.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.ClearAll(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	m.reset()
	m.logger.Info("all contacts cleared")
	return nil
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}

func copyContacts(src []*core.Contact) []core.Contact {
	out := make([]core.Contact, len(src))
	for i, c := range src {
		out[i] = *c
	}
	return out
}
