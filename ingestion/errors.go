package ingestion

import "errors"

var (
	// ErrArticleRepositoryRequired is returned when an article repository is not provided.
	ErrArticleRepositoryRequired = errors.New("article repository required")

	// ErrBatchRepositoryRequired is returned when a batch repository is not provided.
	ErrBatchRepositoryRequired = errors.New("batch repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrCollectorRequired is returned when a nil collector is configured.
	ErrCollectorRequired = errors.New("collector required")
)
