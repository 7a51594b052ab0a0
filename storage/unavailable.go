package storage

import (
	"context"
	"fmt"

	"github.com/poiesic/phonebook/core"
)

// unavailableStore stands in for a backend that could not be opened.
// Every call fails, so the directory runs purely in memory.
type unavailableStore struct {
	cause error
}

var _ ContactStore = (*unavailableStore)(nil)

// Unavailable returns a ContactStore whose every operation fails with
// ErrStoreUnavailable wrapping cause.
func Unavailable(cause error) ContactStore {
	return &unavailableStore{cause: cause}
}

func (s *unavailableStore) err() error {
	if s.cause == nil {
		return ErrStoreUnavailable
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, s.cause)
}

func (s *unavailableStore) LoadAll(ctx context.Context) ([]*core.Contact, error) {
	return nil, s.err()
}

func (s *unavailableStore) Insert(ctx context.Context, contact *core.Contact) error {
	return s.err()
}

func (s *unavailableStore) Update(ctx context.Context, oldPhone string, contact *core.Contact) error {
	return s.err()
}

func (s *unavailableStore) Delete(ctx context.Context, phone string) error {
	return s.err()
}

func (s *unavailableStore) ClearAll(ctx context.Context) error {
	return s.err()
}

func (s *unavailableStore) Close() error {
	return nil
}
