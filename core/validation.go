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


package core

import (
	"fmt"
	"time"
)

// ValidateArticle validates an Article according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Link must not be empty
//   - CollectedAt must not be in the future
//   - IsDuplicate and DuplicateOf must be set together
//
// NOT validated (populated by processors):
//   - Body (feeds may carry title-only items)
//   - Vector (can be empty until the enrichment pass runs)
//   - RelevanceScore/Summary (can be empty until collaborators run)
//   - ID (0 is valid before insertion)
func ValidateArticle(article *Article) error {
	if article == nil {
		return fmt.Errorf("%w: article is nil", ErrInvalidArticle)
	}

	if article.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyTitle)
	}

	if article.Link == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyLink)
	}

	if !article.CollectedAt.IsZero() && !IsValidTimestamp(article.CollectedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrInvalidTimestamp)
	}

	if article.IsDuplicate != (article.DuplicateOf != 0) {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrDanglingDuplicate)
	}

	return nil
}

// ValidateBatch validates a Batch according to domain rules.
//
// Validation rules:
//   - FeedURLs must not be empty
//   - SimilarityThreshold and RelevanceThreshold must lie in [0,1]
//
// NOT validated:
//   - Criteria (a batch may be collected before a criterion is chosen)
//   - Stats (populated at the end of a run)
//   - ID (0 is valid before insertion)
func ValidateBatch(batch *Batch) error {
	if batch == nil {
		return fmt.Errorf("%w: batch is nil", ErrInvalidBatch)
	}

	if len(batch.FeedURLs) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidBatch, ErrNoFeeds)
	}

	if batch.SimilarityThreshold < 0 || batch.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: similarity %w", ErrInvalidBatch, ErrThresholdRange)
	}

	if batch.RelevanceThreshold < 0 || batch.RelevanceThreshold > 1 {
		return fmt.Errorf("%w: relevance %w", ErrInvalidBatch, ErrThresholdRange)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
