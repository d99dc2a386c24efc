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


// Package similarity provides the text and vector comparison primitives shared
// by the deduplication engine and the hybrid search ranker.
//
// It offers:
//   - Normalize: canonical lowercase/punctuation-free text for fingerprinting
//   - Tokens and TokenSet: stop-word-filtered tokenization
//   - Jaccard: token-set overlap in [0,1]
//   - Cosine: embedding vector similarity
//
// All functions are pure and safe for concurrent use.
package similarity
