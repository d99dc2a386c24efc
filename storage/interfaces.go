package storage

import (
	"context"

	"github.com/arcatext/newsift/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ArticleRepository provides operations for managing articles.
type ArticleRepository interface {
	Repository
	// AddArticles adds one or more articles to storage.
	// For articles with ID=0, generates new IDs from sequence.
	// Sets CollectedAt if not already set.
	// Articles whose Link duplicates one already stored for the same batch
	// are skipped, not inserted twice.
	// Returns the articles actually inserted, in their input order, with
	// generated IDs and timestamps populated.
	AddArticles(ctx context.Context, articles ...*core.Article) ([]*core.Article, error)

	// UpdateArticles updates existing articles in place.
	// Returns ErrNotFound if any article doesn't exist.
	UpdateArticles(ctx context.Context, articles ...*core.Article) ([]*core.Article, error)

	// DeleteBatchArticles removes all articles belonging to a batch, along
	// with their indices. Returns the number of articles removed.
	DeleteBatchArticles(ctx context.Context, batchID core.ID) (int, error)

	// GetArticle retrieves a single article by ID.
	// Returns ErrNotFound if the article doesn't exist.
	GetArticle(ctx context.Context, id core.ID) (*core.Article, error)

	// GetArticles retrieves multiple articles by their IDs.
	// Returns only the articles that exist (no error for missing articles).
	GetArticles(ctx context.Context, ids ...core.ID) ([]*core.Article, error)

	// GetArticlesByBatch retrieves all articles of a batch in insertion order.
	GetArticlesByBatch(ctx context.Context, batchID core.ID) ([]*core.Article, error)

	// GetCanonicalArticles retrieves non-duplicate articles in insertion
	// order. A batchID of 0 spans the whole store; otherwise results are
	// limited to the given batch.
	GetCanonicalArticles(ctx context.Context, batchID core.ID) ([]*core.Article, error)

	// GetUnembeddedArticles retrieves articles of a batch that do not yet
	// carry an embedding vector, in insertion order. A batchID of 0 spans
	// the whole store.
	GetUnembeddedArticles(ctx context.Context, batchID core.ID) ([]*core.Article, error)

	// FindSimilar finds non-duplicate embedded articles similar to the given
	// vector. Returns articles with similarity >= minSimilarity, up to limit
	// results, ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]core.RankedArticle, error)
}

// BatchRepository provides operations for managing processing batches.
type BatchRepository interface {
	Repository
	// AddBatch adds a batch to storage, generating its ID from sequence
	// and setting CreatedAt if not already set.
	AddBatch(ctx context.Context, batch *core.Batch) (*core.Batch, error)

	// UpdateBatch updates an existing batch.
	// Returns ErrNotFound if the batch doesn't exist.
	UpdateBatch(ctx context.Context, batch *core.Batch) (*core.Batch, error)

	// DeleteBatch removes a batch record by ID.
	// Returns ErrNotFound if the batch doesn't exist.
	DeleteBatch(ctx context.Context, id core.ID) error

	// GetBatch retrieves a single batch by ID.
	// Returns ErrNotFound if the batch doesn't exist.
	GetBatch(ctx context.Context, id core.ID) (*core.Batch, error)

	// ListBatches retrieves batches ordered by creation time, most recent
	// first. Returns up to limit batches; limit <= 0 returns all.
	ListBatches(ctx context.Context, limit int) ([]*core.Batch, error)
}
