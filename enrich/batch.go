package enrich

import (
	"context"
	"fmt"
	"time"

	"github.com/arcatext/newsift/ai"
	"github.com/arcatext/newsift/core"
	"github.com/arcatext/newsift/storage"
)

// BatchProcessor generates embedding vectors for batches of articles.
type BatchProcessor struct {
	repo           storage.ArticleRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.ArticleRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process embeds a batch of articles and writes the vectors back to storage.
// Articles that already carry a vector are left untouched. Vectors are
// normalized after embedding so they compare cleanly under cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, articles []*core.Article) error {
	pending := make([]*core.Article, 0, len(articles))
	for _, a := range articles {
		if !a.Embedded() {
			pending = append(pending, a)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	texts := make([]string, len(pending))
	for i, a := range pending {
		texts[i] = EmbeddingText(a)
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(pending) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(pending), len(embeddings))
	}

	for i := range pending {
		pending[i].Vector = NormalizeVector(embeddings[i])
	}

	_, err = bp.repo.UpdateArticles(ctx, pending...)
	if err != nil {
		return fmt.Errorf("failed to update articles: %w", err)
	}

	return nil
}
