// Package rss collects news articles from RSS and Atom feeds.
//
// A Collector fetches each configured feed URL, strips markup from titles
// and bodies, and maps items onto core.Article values with their content
// fingerprint precomputed. Collection is best-effort: a feed that cannot be
// fetched or parsed is logged and skipped so the remaining feeds still
// contribute.
package rss
