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


// Package enrich backfills embedding vectors for stored articles.
//
// Articles normally receive their vectors during ingestion, but embedding can
// fail transiently, the embedding model can change, or a store can be imported
// without vectors. An enrichment Pass walks the unembedded articles of a batch
// (or the whole store), embeds them in batches with retry and exponential
// backoff, normalizes the resulting vectors, and writes them back.
//
// Typical usage:
//
//	pass := enrich.NewPass(articles, embedder, batchID, nil, os.Stderr)
//	if err := pass.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
package enrich
