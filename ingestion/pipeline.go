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


package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/arcatext/newsift/ai"
	"github.com/arcatext/newsift/core"
	"github.com/arcatext/newsift/dedup"
	"github.com/arcatext/newsift/enrich"
	"github.com/arcatext/newsift/rss"
	"github.com/arcatext/newsift/storage"
)

// Step identifies one stage of a processing run.
type Step string

const (
	StepCollect   Step = "collect"
	StepDedup     Step = "dedup"
	StepClassify  Step = "classify"
	StepSummarize Step = "summarize"
	StepEmbed     Step = "embed"
)

// Progress reports how far a step has advanced. Total is 0 while a step's
// size is not yet known.
type Progress struct {
	Step  Step
	Done  int
	Total int
}

// ProgressFunc receives progress updates during a run. It is called from a
// single goroutine.
type ProgressFunc func(Progress)

// collector fetches articles for a batch. Satisfied by *rss.Collector.
type collector interface {
	Collect(ctx context.Context, batchID core.ID, feedURLs []string) []*core.Article
}

// Pipeline runs the full processing flow for one batch: collect articles
// from feeds, deduplicate, classify canonical articles against the batch
// criteria, summarize the relevant ones, and embed. LLM and embedding
// failures degrade the run (unclassified or unembedded articles) but never
// abort it; only storage failures do.
type Pipeline struct {
	articles   storage.ArticleRepository
	batches    storage.BatchRepository
	provider   ai.Provider
	collector  collector
	llmPool    *ants.Pool
	crossBatch bool
	progress   ProgressFunc
	logger     *slog.Logger

	mu sync.Mutex // serializes the progress callback
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent LLM calls.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.llmPool != nil {
			p.llmPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.llmPool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithCollector replaces the default RSS collector.
func WithCollector(c collector) Option {
	return func(p *Pipeline) error {
		if c == nil {
			return ErrCollectorRequired
		}
		p.collector = c
		return nil
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Pipeline) error {
		p.progress = fn
		return nil
	}
}

// WithCrossBatchDedup widens the dedup comparison universe to canonical
// articles from earlier batches, so a story already stored is not collected
// as new. Default is within-batch only.
func WithCrossBatchDedup() Option {
	return func(p *Pipeline) error {
		p.crossBatch = true
		return nil
	}
}

// NewPipeline creates a processing pipeline.
func NewPipeline(
	articles storage.ArticleRepository,
	batches storage.BatchRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if articles == nil {
		return nil, ErrArticleRepositoryRequired
	}
	if batches == nil {
		return nil, ErrBatchRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		articles:  articles,
		batches:   batches,
		provider:  provider,
		collector: rss.NewCollector(),
		llmPool:   pool,
		logger:    slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Run executes a full processing run for the given batch. The batch is
// persisted first (assigning its ID when zero), then each step runs in order
// and the batch stats are updated as results land. Returns the stored batch
// with final stats.
func (p *Pipeline) Run(ctx context.Context, batch *core.Batch) (*core.Batch, error) {
	batch, err := p.batches.AddBatch(ctx, batch)
	if err != nil {
		return nil, err
	}

	logger := p.logger.With("batch", batch.Id)
	logger.Info("processing run started", "feeds", len(batch.FeedURLs))

	// Collect
	p.report(Progress{Step: StepCollect, Total: len(batch.FeedURLs)})
	collected := p.collector.Collect(ctx, batch.Id, batch.FeedURLs)
	inserted, err := p.articles.AddArticles(ctx, collected...)
	if err != nil {
		return nil, err
	}
	batch.Stats.Collected = len(inserted)
	p.report(Progress{Step: StepCollect, Done: len(inserted), Total: len(inserted)})

	// Dedup
	p.report(Progress{Step: StepDedup, Total: len(inserted)})
	duplicates, err := p.dedupStep(ctx, batch, inserted)
	if err != nil {
		return nil, err
	}
	batch.Stats.Duplicates = len(duplicates)
	batch.Stats.Unique = batch.Stats.Collected - len(duplicates)
	p.report(Progress{Step: StepDedup, Done: len(inserted), Total: len(inserted)})

	canonicals := make([]*core.Article, 0, len(inserted))
	for _, a := range inserted {
		if !a.IsDuplicate {
			canonicals = append(canonicals, a)
		}
	}

	// Classify
	if err := p.classifyStep(ctx, batch, canonicals); err != nil {
		return nil, err
	}
	relevant := make([]*core.Article, 0, len(canonicals))
	for _, a := range canonicals {
		if a.IsRelevant {
			relevant = append(relevant, a)
		}
	}
	batch.Stats.Relevant = len(relevant)

	// Summarize
	if err := p.summarizeStep(ctx, relevant); err != nil {
		return nil, err
	}

	// Embed
	p.embedStep(ctx, batch, canonicals)

	if _, err := p.batches.UpdateBatch(ctx, batch); err != nil {
		return nil, err
	}

	logger.Info("processing run finished",
		"collected", batch.Stats.Collected,
		"duplicates", batch.Stats.Duplicates,
		"relevant", batch.Stats.Relevant)

	return batch, nil
}

// dedupStep finds duplicates among the batch's articles and persists the
// flags. With cross-batch dedup enabled, canonical articles from earlier
// batches seed the comparison universe.
func (p *Pipeline) dedupStep(ctx context.Context, batch *core.Batch, inserted []*core.Article) (dedup.DuplicateMap, error) {
	var universe []*core.Article
	if p.crossBatch {
		stored, err := p.articles.GetCanonicalArticles(ctx, 0)
		if err != nil {
			return nil, err
		}
		for _, a := range stored {
			if a.BatchId != batch.Id {
				universe = append(universe, a)
			}
		}
	}

	duplicates := dedup.FindDuplicates(inserted, universe, batch.SimilarityThreshold)
	changed := dedup.Apply(inserted, duplicates, p.logger)
	if len(changed) > 0 {
		if _, err := p.articles.UpdateArticles(ctx, changed...); err != nil {
			return nil, err
		}
	}
	return duplicates, nil
}

// classifyStep scores canonical articles against the batch criteria on the
// worker pool and persists the verdicts. Individual failures fall through
// the strategy chain; an article all strategies fail on is left unclassified.
func (p *Pipeline) classifyStep(ctx context.Context, batch *core.Batch, canonicals []*core.Article) error {
	if len(canonicals) == 0 || batch.Criteria == "" {
		return nil
	}

	p.report(Progress{Step: StepClassify, Total: len(canonicals)})

	strategies := p.classifyStrategies()
	var done atomic.Int64

	var wg sync.WaitGroup
	for _, article := range canonicals {
		article := article
		wg.Add(1)
		if err := p.llmPool.Submit(func() {
			defer wg.Done()
			p.classifyArticle(ctx, article, batch, strategies)
			p.report(Progress{Step: StepClassify, Done: int(done.Add(1)), Total: len(canonicals)})
		}); err != nil {
			wg.Done()
			p.logger.Warn("classification submit failed", "article", article.Id, "error", err)
		}
	}
	wg.Wait()

	_, err := p.articles.UpdateArticles(ctx, canonicals...)
	return err
}

// summarizeStep produces summaries for relevant articles on the worker pool.
// Summarizer failures are logged and leave the article without a summary.
func (p *Pipeline) summarizeStep(ctx context.Context, relevant []*core.Article) error {
	if len(relevant) == 0 {
		return nil
	}

	p.report(Progress{Step: StepSummarize, Total: len(relevant)})

	summarizer := p.provider.Summarizer()
	var done atomic.Int64

	var wg sync.WaitGroup
	for _, article := range relevant {
		article := article
		wg.Add(1)
		if err := p.llmPool.Submit(func() {
			defer wg.Done()
			summary, err := summarizer.Summarize(ctx, article.Title, article.Body)
			if err != nil {
				p.logger.Warn("summarization failed", "article", article.Id, "error", err)
			} else {
				article.Summary = summary
			}
			p.report(Progress{Step: StepSummarize, Done: int(done.Add(1)), Total: len(relevant)})
		}); err != nil {
			wg.Done()
			p.logger.Warn("summarization submit failed", "article", article.Id, "error", err)
		}
	}
	wg.Wait()

	_, err := p.articles.UpdateArticles(ctx, relevant...)
	return err
}

// embedStep generates embeddings for the batch's canonical articles.
// Embedding failure leaves articles unembedded for a later enrichment pass.
func (p *Pipeline) embedStep(ctx context.Context, batch *core.Batch, canonicals []*core.Article) {
	if len(canonicals) == 0 {
		return
	}

	p.report(Progress{Step: StepEmbed, Total: len(canonicals)})

	processor := enrich.NewBatchProcessor(p.articles, p.provider.Embedder(), 3, time.Second)
	if err := processor.Process(ctx, canonicals); err != nil {
		p.logger.Warn("embedding failed, articles left for enrichment",
			"batch", batch.Id, "error", err)
		return
	}

	p.report(Progress{Step: StepEmbed, Done: len(canonicals), Total: len(canonicals)})
}

func (p *Pipeline) report(progress Progress) {
	if p.progress == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress(progress)
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.llmPool != nil {
		p.llmPool.Release()
	}
}
