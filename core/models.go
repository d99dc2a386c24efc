package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is assigned from database sequences at insertion time.
type ID uint64

// Fingerprint is a fast 64-bit content hash used to short-circuit duplicate
// detection. It is computed over normalized article text, so two articles with
// byte-identical normalized content always share a fingerprint.
type Fingerprint uint64

func hash64(text string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// IDFromContent generates a deterministic ID from text content using BLAKE2b
// hashing. Identical content produces identical IDs.
func IDFromContent(text string) ID {
	return ID(hash64(text))
}

// FingerprintFromContent hashes already-normalized text into a Fingerprint.
// Callers are responsible for normalization; see the similarity package.
func FingerprintFromContent(normalized string) Fingerprint {
	return Fingerprint(hash64(normalized))
}

// Article represents a single collected news article.
// It is created at collection time and enriched by the deduplication engine
// (duplicate flag), the relevance classifier, the summarizer, and the
// embedding enrichment pass.
type Article struct {
	Id          ID
	BatchId     ID // owning collection run; 0 when unassigned
	Title       string
	Body        string
	Link        string
	Source      string
	PublishedAt time.Time // from the feed; may be zero
	CollectedAt time.Time

	Fingerprint Fingerprint

	IsDuplicate bool
	DuplicateOf ID // canonical article; 0 when not a duplicate

	RelevanceScore       float64
	IsRelevant           bool
	ClassificationReason string

	Summary string

	Vector []float32 // embedding for semantic search; write-once
}

// Embedded reports whether the article already holds an embedding vector.
// Embeddings are immutable for the article's lifetime; enrichment passes
// must skip articles for which this returns true.
func (a *Article) Embedded() bool {
	return len(a.Vector) > 0
}

// BatchStats summarizes the outcome of one processing run.
type BatchStats struct {
	Collected  int
	Duplicates int
	Relevant   int
	Unique     int // non-duplicate articles
}

// Batch is a logical grouping of articles collected in one processing run.
// It records the run parameters so past runs can be inspected and re-scoped.
type Batch struct {
	Id                  ID
	CreatedAt           time.Time
	FeedURLs            []string
	Criteria            string
	SimilarityThreshold float64
	RelevanceThreshold  float64
	Stats               BatchStats
}

// RankedArticle is a search result pairing an article with its fused
// relevance score in [0,1].
type RankedArticle struct {
	Article *Article
	Score   float32
}
