// Copyright 2026 Arcatext
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


// Package storage defines the repository interfaces between the news corpus
// and its backing store, plus the binary (de)serialization helpers shared by
// implementations.
//
// Two repositories cover the domain:
//
//   - ArticleRepository: collected articles, batch-scoped reads, the
//     unembedded and canonical scans, and vector similarity search
//   - BatchRepository: processing run records and their stats
//
// The storage/badger sub-package is the only implementation; tests use its
// in-memory constructor:
//
//	articles, batches, backend, err := badger.NewMemoryRepositories()
//
// Implementations must be safe for concurrent use. All methods take a
// context.Context for cancellation.
package storage
