package storage

import (
	"context"

	"github.com/poiesic/phonebook/core"
)

// ContactStore persists contacts on behalf of the in-memory directory.
// Calls are synchronous; callers never retry a failed call.
type ContactStore interface {
	// LoadAll returns every stored contact in insertion order.
	// Called once, when the directory starts.
	LoadAll(ctx context.Context) ([]*core.Contact, error)

	// Insert stores a new contact.
	// Returns ErrDuplicateKey if the phone number is already stored.
	Insert(ctx context.Context, contact *core.Contact) error

	// Update replaces the contact stored under oldPhone with the given state.
	// The contact's phone may differ from oldPhone.
	// Returns ErrNotFound if nothing is stored under oldPhone.
	Update(ctx context.Context, oldPhone string, contact *core.Contact) error

	// Delete removes the contact stored under phone.
	// Returns ErrNotFound if nothing is stored under phone.
	Delete(ctx context.Context, phone string) error

	// ClearAll removes every stored contact.
	ClearAll(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}
