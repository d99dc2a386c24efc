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


// Package search provides hybrid keyword and semantic ranking of articles.
//
// The Searcher type implements a multi-stage ranking algorithm:
//   - Keyword matching of significant query words with stop-word filtering,
//     covering the whole corpus regardless of embeddings
//   - Semantic search using vector embeddings, with an acceptance threshold
//     adapted to the query's length
//   - A fusion step that boosts semantic scores for keyword matches and folds
//     keyword-only matches onto the similarity scale
//
// Every result carries a single fused score in [0,1]; output is sorted
// descending, deduplicated by article identity, and truncated to the caller's
// limit. Ranking always returns a well-formed (possibly empty) result: an
// unreachable embedding provider degrades the pass to keyword-only matching
// rather than failing the search.
package search
