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


// Package directory owns the in-memory contact collection.
//
// A Manager keeps three structures in lockstep:
//   - the canonical contact list, in insertion (or last sorted) order
//   - a phone-number set used for O(1) duplicate checks
//   - one ordered partition per category
//
// Every mutation updates all three together and is then mirrored to a
// storage.ContactStore. A failed insert is rolled back in memory; a failed
// update or delete is kept in memory and reported through Outcome so the
// caller can tell the store has drifted.
//
// # Sorting
//
// SortByName reorders only the canonical list, with either BubbleSort or
// SelectionSort. Category partitions keep their insertion order.
//
// # Concurrency
//
// Manager performs no locking and assumes one caller at a time. Wrap it in
// Locked before sharing it between goroutines.
package directory
