package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Verdict is the outcome of classifying one article against user criteria.
type Verdict struct {
	// Score is the relevance of the article to the criteria, in [0,1].
	Score float64

	// Relevant reports whether Score clears the configured threshold.
	Relevant bool

	// Reason is a short model-produced explanation for the verdict.
	Reason string
}

// Classifier judges how relevant an article is to free-form user criteria.
// Implementations must be thread-safe for concurrent use.
type Classifier interface {
	// Classify scores an article's title and body against the criteria.
	// Returns an error if classification fails; callers decide whether to
	// fall back to a cheaper scoring method.
	Classify(ctx context.Context, title, body, criteria string) (Verdict, error)
}

// Summarizer condenses article text into a short abstract.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize produces a 2-3 sentence summary of the article.
	// Returns an error if summary generation fails.
	Summarize(ctx context.Context, title, body string) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder, Classifier, and
// Summarizer instances, ensuring they share configuration and resources
// appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Classifier returns the relevance classification service.
	// The returned Classifier is safe for concurrent use.
	Classifier() Classifier

	// Summarizer returns the summarization service.
	// The returned Summarizer is safe for concurrent use.
	Summarizer() Summarizer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
