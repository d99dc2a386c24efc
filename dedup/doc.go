// Package dedup detects near-duplicate articles within a collection batch.
//
// Detection runs in two stages. A fingerprint fast path catches articles
// whose normalized title+body text is byte-identical: they are marked
// duplicates of the earliest article sharing the fingerprint without any
// pairwise comparison. Articles surviving the fast path are compared against
// every accepted canonical article by blended Jaccard token overlap, and the
// first canonical clearing the similarity threshold wins.
//
// FindDuplicates is a pure function over in-memory articles: it performs no
// I/O, and for a fixed input order and threshold it always returns the same
// mapping. Applying the mapping to article flags is a separate, idempotent
// step (Apply); persisting the result belongs to the caller.
package dedup
