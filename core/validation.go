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


package core

import (
	"fmt"
	"strings"
)

// CategorySet is the fixed, ordered list of categories a phonebook accepts.
// Matching against the set is case-insensitive.
type CategorySet struct {
	names []string
}

// NewCategorySet builds a CategorySet from the given names.
//
// Validation rules:
//   - at least one name
//   - no blank names
//   - no two names equal under case folding
func NewCategorySet(names ...string) (CategorySet, error) {
	if len(names) == 0 {
		return CategorySet{}, fmt.Errorf("%w: no categories", ErrInvalidCategorySet)
	}
	seen := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return CategorySet{}, fmt.Errorf("%w: blank category", ErrInvalidCategorySet)
		}
		for _, s := range seen {
			if strings.EqualFold(s, name) {
				return CategorySet{}, fmt.Errorf("%w: duplicate category %q", ErrInvalidCategorySet, name)
			}
		}
		seen = append(seen, name)
	}
	return CategorySet{names: seen}, nil
}

// Names returns a copy of the category names in configured order.
func (s CategorySet) Names() []string {
	return append([]string(nil), s.names...)
}

// Canonical returns the configured spelling of name, or false if name is not in the set.
func (s CategorySet) Canonical(name string) (string, bool) {
	for _, n := range s.names {
		if strings.EqualFold(n, name) {
			return n, true
		}
	}
	return "", false
}

// Contains reports whether name is in the set.
func (s CategorySet) Contains(name string) bool {
	_, ok := s.Canonical(name)
	return ok
}

// ValidateCategory returns the canonical category name, or ErrInvalidCategory.
func (s CategorySet) ValidateCategory(name string) (string, error) {
	canonical, ok := s.Canonical(name)
	if !ok {
		return "", fmt.Errorf("%w: %q (valid: %s)", ErrInvalidCategory, name, strings.Join(s.names, ", "))
	}
	return canonical, nil
}
