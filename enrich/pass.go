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
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/arcatext/newsift/ai"
	"github.com/arcatext/newsift/core"
	"github.com/arcatext/newsift/storage"
)

// Config holds configuration for an enrichment pass.
type Config struct {
	// BatchSize is the number of articles to embed in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of articles)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed embedding calls
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      50,
		ReportInterval: 50,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Pass backfills embedding vectors for stored articles that do not yet
// carry one. A batch ID of 0 spans the entire store.
type Pass struct {
	repo      storage.ArticleRepository
	embedder  ai.Embedder
	batchID   core.ID
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *ArticleIterator
	logger    *slog.Logger
}

// NewPass creates a new enrichment pass over the given batch.
// progress: where to write progress output (typically os.Stderr)
func NewPass(repo storage.ArticleRepository, embedder ai.Embedder, batchID core.ID, config *Config, progress io.Writer) *Pass {
	if config == nil {
		config = DefaultConfig()
	}

	processor := NewBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay)
	iterator := NewArticleIterator(repo, batchID, config.BatchSize)

	return &Pass{
		repo:      repo,
		embedder:  embedder,
		batchID:   batchID,
		config:    config,
		progress:  progress,
		processor: processor,
		iterator:  iterator,
		logger:    slog.Default().With("component", "enrich"),
	}
}

// Run executes the enrichment pass. Every unembedded article in scope is
// embedded and written back. A chunk that fails to embed is logged and
// skipped so one bad article never blocks the rest of the pass; Run returns
// an error only when no chunk succeeded, or on a repository or context
// failure.
func (p *Pass) Run(ctx context.Context) error {
	pending, err := p.repo.GetUnembeddedArticles(ctx, p.batchID)
	if err != nil {
		return fmt.Errorf("failed to query unembedded articles: %w", err)
	}

	total := len(pending)
	if total == 0 {
		fmt.Fprintf(p.progress, "No articles need embedding (0 articles)\n")
		return nil
	}

	fmt.Fprintf(p.progress, "Embedding %d articles (batch size: %d)\n",
		total, p.config.BatchSize)

	tracker := NewProgressTracker(p.progress, total, p.config.ReportInterval)
	tracker.Start()

	var (
		failed   int
		chunkErr error
	)

	err = p.iterator.ForEach(ctx, func(articles []*core.Article) error {
		if err := p.processor.Process(ctx, articles); err != nil {
			p.logger.Warn("embedding chunk failed, skipping",
				"articles", len(articles), "err", err)
			failed += len(articles)
			chunkErr = err
		}

		tracker.Increment(len(articles))
		return nil
	})

	if err != nil {
		return err
	}

	tracker.Finish()

	if failed == total {
		return fmt.Errorf("embedding failed for all %d articles: %w", total, chunkErr)
	}

	elapsed := tracker.Elapsed()
	if failed > 0 {
		fmt.Fprintf(p.progress, "Embedding finished with failures. Embedded %d of %d articles (%d failed) in %v\n",
			total-failed, total, failed, elapsed.Round(time.Second))
		return nil
	}

	fmt.Fprintf(p.progress, "Embedding complete. Processed %d articles in %v (%.1f articles/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}
