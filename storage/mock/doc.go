// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mock provides a test double implementation of storage.ContactStore.
//
// MockStore keeps contacts in memory and lets tests inject failures per
// operation, which is how the directory's rollback and drift behaviour is
// exercised without a real database.
//
// # Usage in Tests
//
//	// Working store preloaded with contacts
//	store := mock.NewMockStore(&core.Contact{Name: "Alice", Phone: "111", Category: "Family"})
//
//	// Every insert fails
//	store.InsertFunc = func(ctx context.Context, c *core.Contact) error {
//	    return errors.New("disk full")
//	}
//
//	// Check call counts
//	n := store.Calls("insert")
//
// # Default Behavior
//
// Without hooks MockStore behaves like a real backend: duplicate inserts fail
// with storage.ErrDuplicateKey and updates or deletes of unknown phones fail
// with storage.ErrNotFound.
package mock
