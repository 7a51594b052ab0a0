package directory

import (
	"context"
	"sync"

	"github.com/poiesic/phonebook/core"
)

// Locked serializes every call to a Manager behind one mutex so the
// directory can be shared between goroutines.
type Locked struct {
	mu sync.Mutex
	m  *Manager
}

// NewLocked wraps m. The caller must stop using m directly.
func NewLocked(m *Manager) *Locked {
	return &Locked{m: m}
}

func (l *Locked) AddContact(ctx context.Context, contact core.Contact) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.AddContact(ctx, contact)
}

func (l *Locked) Search(term string, field SearchField) (core.Contact, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Search(term, field)
}

func (l *Locked) SearchByName(name string) (core.Contact, bool) {
	return l.Search(name, ByName)
}

func (l *Locked) SearchByPhone(phone string) (core.Contact, bool) {
	return l.Search(phone, ByPhone)
}

func (l *Locked) UpdateContact(ctx context.Context, term string, field SearchField, changes Changes) (Outcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.UpdateContact(ctx, term, field, changes)
}

func (l *Locked) DeleteContact(ctx context.Context, term string, field SearchField) (Outcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.DeleteContact(ctx, term, field)
}

func (l *Locked) SortByName(alg Algorithm) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.SortByName(alg)
}

func (l *Locked) IsDuplicate(phone string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.IsDuplicate(phone)
}

func (l *Locked) ListByCategory(category string) []core.Contact {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.ListByCategory(category)
}

func (l *Locked) Contacts() []core.Contact {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Contacts()
}

func (l *Locked) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Len()
}

func (l *Locked) Categories() []string {
	return l.m.Categories()
}

func (l *Locked) CategoryCounts() []CategoryCount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.CategoryCounts()
}

func (l *Locked) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Clear(ctx)
}

func (l *Locked) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Close()
}
