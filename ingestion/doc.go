// Package ingestion orchestrates the batch processing flow for news articles.
//
// The Pipeline type runs one batch end to end:
//   - Collecting articles from the batch's RSS feeds
//   - Deduplicating against the batch (and optionally earlier batches)
//   - Classifying canonical articles against the batch criteria
//   - Summarizing the relevant ones
//   - Generating embeddings
//
// LLM calls run concurrently on a worker pool. Collaborator failures degrade
// a run (articles left unclassified, unsummarized, or unembedded) but never
// abort it; storage failures do. Duplicates are excluded from every step
// after deduplication.
package ingestion
