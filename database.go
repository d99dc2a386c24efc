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


package newsift

import (
	"context"
	"io"
	"log/slog"

	"github.com/arcatext/newsift/ai"
	"github.com/arcatext/newsift/ai/openai"
	"github.com/arcatext/newsift/core"
	"github.com/arcatext/newsift/enrich"
	"github.com/arcatext/newsift/ingestion"
	"github.com/arcatext/newsift/search"
	"github.com/arcatext/newsift/storage"
	"github.com/arcatext/newsift/storage/badger"
)

// Database bundles the article store with the AI provider and hands out
// the engines built on top of them.
type Database struct {
	backend     *badger.Backend
	articleRepo storage.ArticleRepository
	batchRepo   storage.BatchRepository
	provider    ai.Provider
	logger      *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider substitutes a prebuilt AI provider, bypassing the default
// OpenAI-compatible one. Used with ai/mock in tests and offline runs.
func WithProvider(provider ai.Provider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemory opens the store in memory, without touching disk.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens the article store at filePath and wires up the AI
// provider and repositories.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	articleRepo, err := badger.NewArticleRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	batchRepo, err := badger.NewBatchRepository(backend)
	if err != nil {
		articleRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			batchRepo.Close()
			articleRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:     backend,
		articleRepo: articleRepo,
		batchRepo:   batchRepo,
		provider:    provider,
		logger:      slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.batchRepo.Close(); err != nil {
		db.logger.Error("error closing batch repository", "err", err)
		return err
	}
	if err := db.articleRepo.Close(); err != nil {
		db.logger.Error("error closing article repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ArticleRepository() storage.ArticleRepository {
	return db.articleRepo
}

func (db *Database) BatchRepository() storage.BatchRepository {
	return db.batchRepo
}

func (db *Database) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.articleRepo, db.batchRepo, db.provider, opts...)
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.provider.Embedder(), opts...)
}

// NewEnrichmentPass builds a pass that backfills embeddings for the given
// batch (0 = whole store), reporting progress to w.
func (db *Database) NewEnrichmentPass(batchID core.ID, config *enrich.Config, w io.Writer) *enrich.Pass {
	return enrich.NewPass(db.articleRepo, db.provider.Embedder(), batchID, config, w)
}

// Search ranks the canonical articles of a batch (0 = whole store) against
// the query. A convenience wrapper over NewSearcher and the repository.
func (db *Database) Search(ctx context.Context, query string, batchID core.ID, limit int, opts ...search.Option) ([]core.RankedArticle, error) {
	searcher, err := db.NewSearcher(opts...)
	if err != nil {
		return nil, err
	}

	corpus, err := db.articleRepo.GetCanonicalArticles(ctx, batchID)
	if err != nil {
		return nil, err
	}

	return searcher.Rank(ctx, query, corpus, limit), nil
}

// CorpusStats summarizes the stored corpus.
type CorpusStats struct {
	Batches    int
	Articles   int
	Duplicates int
	Relevant   int
	Embedded   int
}

// Stats walks every stored batch and tallies the corpus.
func (db *Database) Stats(ctx context.Context) (CorpusStats, error) {
	var stats CorpusStats

	batches, err := db.batchRepo.ListBatches(ctx, 0)
	if err != nil {
		return stats, err
	}
	stats.Batches = len(batches)

	for _, batch := range batches {
		articles, err := db.articleRepo.GetArticlesByBatch(ctx, batch.Id)
		if err != nil {
			return stats, err
		}
		for _, a := range articles {
			stats.Articles++
			if a.IsDuplicate {
				stats.Duplicates++
			}
			if a.IsRelevant {
				stats.Relevant++
			}
			if a.Embedded() {
				stats.Embedded++
			}
		}
	}

	return stats, nil
}

// PurgeBatch removes a batch and all of its articles. Returns the number of
// articles removed.
func (db *Database) PurgeBatch(ctx context.Context, id core.ID) (int, error) {
	removed, err := db.articleRepo.DeleteBatchArticles(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := db.batchRepo.DeleteBatch(ctx, id); err != nil {
		return removed, err
	}

	return removed, nil
}
