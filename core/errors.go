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

import "errors"

// Domain validation errors
var (
	// ErrDuplicatePhone indicates the phone number already belongs to a contact.
	ErrDuplicatePhone = errors.New("phone number already exists")

	// ErrInvalidCategory indicates a category outside the configured set.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrNotFound indicates no contact matched the search term.
	ErrNotFound = errors.New("contact not found")

	// ErrInvalidCategorySet indicates an empty or duplicated category configuration.
	ErrInvalidCategorySet = errors.New("invalid category set")
)
