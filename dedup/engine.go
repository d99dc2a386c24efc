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


package dedup

import (
	"log/slog"

	"github.com/arcatext/newsift/core"
	"github.com/arcatext/newsift/similarity"
)

// Weights for the fuzzy similarity blend. Full-text overlap dominates; title
// overlap keeps near-identical headlines from drifting apart when bodies are
// short or empty.
const (
	fullTextWeight = 0.85
	titleWeight    = 0.15
)

// DuplicateMap maps duplicate article IDs to their canonical article ID.
// Canonical articles are never keys in this mapping.
type DuplicateMap map[core.ID]core.ID

// FingerprintArticle computes the content fingerprint of an article: a hash
// over the normalized concatenation of title and body. An empty body falls
// back to the title alone.
func FingerprintArticle(a *core.Article) core.Fingerprint {
	return core.FingerprintFromContent(similarity.Normalize(a.Title + " " + a.Body))
}

// candidate caches per-article comparison material so the pairwise pass does
// not re-tokenize on every comparison.
type candidate struct {
	article     *core.Article
	fingerprint core.Fingerprint
	fullTokens  map[string]bool
	titleTokens map[string]bool
}

func newCandidate(a *core.Article) *candidate {
	fp := a.Fingerprint
	if fp == 0 {
		fp = FingerprintArticle(a)
	}
	return &candidate{
		article:     a,
		fingerprint: fp,
		fullTokens:  similarity.TokenSet(a.Title + " " + a.Body),
		titleTokens: similarity.TokenSet(a.Title),
	}
}

// textSimilarity blends full-text and title token overlap into a [0,1] score.
func textSimilarity(a, b *candidate) float64 {
	full := similarity.Jaccard(a.fullTokens, b.fullTokens)
	title := similarity.Jaccard(a.titleTokens, b.titleTokens)
	return fullTextWeight*full + titleWeight*title
}

// FindDuplicates detects near-duplicate articles among the candidates and
// returns a mapping from duplicate article ID to canonical article ID.
//
// Candidates are processed in the order supplied, so the first occurrence of
// a content cluster is always canonical. The universe holds articles the
// candidates are additionally compared against (for example canonical
// articles from earlier batches); universe members are never marked duplicate
// themselves. Thresholds outside [0,1] are clamped.
func FindDuplicates(candidates []*core.Article, universe []*core.Article, threshold float64) DuplicateMap {
	if threshold < 0 {
		threshold = 0
	}
	if threshold > 1 {
		threshold = 1
	}

	result := make(DuplicateMap)

	// Canonical pool starts with the universe, in its supplied order.
	canonicals := make([]*candidate, 0, len(universe)+len(candidates))
	byFingerprint := make(map[core.Fingerprint]*candidate, len(universe)+len(candidates))
	for _, a := range universe {
		c := newCandidate(a)
		canonicals = append(canonicals, c)
		if _, seen := byFingerprint[c.fingerprint]; !seen {
			byFingerprint[c.fingerprint] = c
		}
	}

	for _, a := range candidates {
		c := newCandidate(a)

		// Exact-fingerprint fast path: identical normalized content always
		// matches, regardless of threshold.
		if earlier, seen := byFingerprint[c.fingerprint]; seen {
			result[a.Id] = earlier.article.Id
			continue
		}

		// Fuzzy fallback against all accepted canonicals, in order. The
		// first member clearing the threshold wins.
		matched := false
		for _, canon := range canonicals {
			if textSimilarity(c, canon) >= threshold {
				result[a.Id] = canon.article.Id
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		// New canonical; later candidates compare against it too.
		canonicals = append(canonicals, c)
		byFingerprint[c.fingerprint] = c
	}

	return result
}

// Apply flags the mapped articles as duplicates of their canonical article
// and returns the articles whose flags actually changed. Re-applying the same
// mapping is a no-op: already-flagged articles are left untouched.
func Apply(articles []*core.Article, duplicates DuplicateMap, logger *slog.Logger) []*core.Article {
	if logger == nil {
		logger = slog.Default()
	}

	var changed []*core.Article
	for _, a := range articles {
		canonicalID, isDup := duplicates[a.Id]
		if !isDup {
			continue
		}
		if a.IsDuplicate && a.DuplicateOf == canonicalID {
			continue
		}
		a.IsDuplicate = true
		a.DuplicateOf = canonicalID
		changed = append(changed, a)
		logger.Debug("marked duplicate", "article", a.Id, "canonical", canonicalID)
	}
	return changed
}
