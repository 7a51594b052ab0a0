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

// Package storage provides the persistence port for the phonebook.
//
// The directory package keeps the authoritative contact collection in memory
// and calls a ContactStore to mirror every mutation. This package defines that
// interface so backends (BadgerDB, SQLite, test doubles) can be swapped freely.
//
// # Constructor Return Type Pattern
//
// Backend constructors return the concrete type so callers can reach
// backend-specific helpers, and every backend asserts the interface at
// compile time:
//
//	var _ storage.ContactStore = (*ContactStore)(nil)
//
// # Backends
//
//   - storage/badger: BadgerDB key-value store, MUS-encoded entries (default)
//   - storage/sqlite: SQLite table with a UNIQUE phone column
//   - storage/mock: in-memory test double with failure injection
//
// Unavailable wraps an open failure in a store that rejects every call, which
// lets the directory start with empty state instead of aborting.
//
// # Usage
//
//	store, err := badger.OpenContactStore("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// Use in tests with in-memory storage:
//
//	store, err := badger.NewMemoryContactStore()
//
// # Context Support
//
// All store methods accept context.Context. Pass context.Background() for
// operations without specific timeout requirements.
package storage
