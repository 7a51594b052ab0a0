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

package directory

import (
	"context"
	"fmt"

	"github.com/poiesic/phonebook/core"
)

// SearchField selects which contact field a search term is matched against.
type SearchField int

const (
	// ByName matches names case-insensitively.
	ByName SearchField = iota + 1
	// ByPhone matches phone numbers exactly.
	ByPhone
)

func (f SearchField) String() string {
	switch f {
	case ByName:
		return "name"
	case ByPhone:
		return "phone"
	default:
		return fmt.Sprintf("SearchField(%d)", int(f))
	}
}

// Changes lists the fields an update should modify. Nil means leave as is.
type Changes struct {
	Phone *string
	Email *string
}

// Empty reports whether no field is set.
func (c Changes) Empty() bool {
	return c.Phone == nil && c.Email == nil
}

// Outcome reports whether a committed in-memory change reached the store.
type Outcome struct {
	// Persisted is false when the store call failed after memory was updated.
	Persisted bool
	// StoreErr is the store failure, if any.
	StoreErr error
}

// Drifted reports whether memory and the store may now disagree.
func (o Outcome) Drifted() bool {
	return !o.Persisted
}

// CategoryCount is the number of contacts filed under one category.
type CategoryCount struct {
	Category string
	Count    int
}

// Directory is the caller-facing contact directory.
// Both *Manager and *Locked implement it.
type Directory interface {
	AddContact(ctx context.Context, contact core.Contact) error
	Search(term string, field SearchField) (core.Contact, bool)
	SearchByName(name string) (core.Contact, bool)
	SearchByPhone(phone string) (core.Contact, bool)
	UpdateContact(ctx context.Context, term string, field SearchField, changes Changes) (Outcome, error)
	DeleteContact(ctx context.Context, term string, field SearchField) (Outcome, error)
	SortByName(alg Algorithm) error
	IsDuplicate(phone string) bool
	ListByCategory(category string) []core.Contact
	Contacts() []core.Contact
	Len() int
	Categories() []string
	CategoryCounts() []CategoryCount
	Clear(ctx context.Context) error
	Close() error
}

var (
	_ Directory = (*Manager)(nil)
	_ Directory = (*Locked)(nil)
)
