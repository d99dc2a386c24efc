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


package enrich

import (
	"context"

	"github.com/arcatext/newsift/core"
	"github.com/arcatext/newsift/storage"
)

const (
	// DefaultBatchSize is the default number of articles to fetch in each batch
	DefaultBatchSize = 50
)

// ArticleIterator iterates over the unembedded articles of a batch in
// fixed-size chunks. A batch ID of 0 spans the entire store.
type ArticleIterator struct {
	repo      storage.ArticleRepository
	batchID   core.ID
	batchSize int
}

// NewArticleIterator creates a new article iterator.
// batchSize: number of articles to process in each chunk (must be > 0)
func NewArticleIterator(repo storage.ArticleRepository, batchID core.ID, batchSize int) *ArticleIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ArticleIterator{
		repo:      repo,
		batchID:   batchID,
		batchSize: batchSize,
	}
}

// ForEach iterates over all unembedded articles in scope, calling fn for each
// chunk. Iteration stops on first error from fn or when all articles are
// processed. Context cancellation is checked between chunks.
func (it *ArticleIterator) ForEach(ctx context.Context, fn func([]*core.Article) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	articles, err := it.repo.GetUnembeddedArticles(ctx, it.batchID)
	if err != nil {
		return err
	}

	if len(articles) == 0 {
		return nil
	}

	for i := 0; i < len(articles); i += it.batchSize {
		end := i + it.batchSize
		if end > len(articles) {
			end = len(articles)
		}

		if err := fn(articles[i:end]); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
