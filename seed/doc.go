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

// Package seed bulk-loads contacts into a shared directory.
//
// A Seeder adds contacts concurrently on a worker pool. Every contact goes
// through the normal add path, so duplicate phones and unknown categories are
// rejected and counted rather than stored. Contacts can come from a generated
// sample set or from a YAML export.
package seed
