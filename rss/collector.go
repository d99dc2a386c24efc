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


package rss

import (
	"context"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/arcatext/newsift/core"
	"github.com/arcatext/newsift/dedup"
)

// DefaultFeedTimeout bounds a single feed fetch.
const DefaultFeedTimeout = 30 * time.Second

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// Collector fetches RSS/Atom feeds and turns their items into articles.
// A failing feed is logged and skipped; one broken feed never aborts a
// collection run.
type Collector struct {
	parser  *gofeed.Parser
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the logger used for per-feed reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// WithTimeout sets the per-feed fetch timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Collector) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewCollector creates a feed collector.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		parser:  gofeed.NewParser(),
		timeout: DefaultFeedTimeout,
		logger:  slog.Default().With("component", "rss"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect fetches every feed URL and returns the collected articles, tagged
// with the given batch ID and fingerprinted. Feeds that fail to fetch or
// parse are logged and skipped.
func (c *Collector) Collect(ctx context.Context, batchID core.ID, feedURLs []string) []*core.Article {
	var articles []*core.Article

	for _, url := range feedURLs {
		feedArticles, err := c.collectFeed(ctx, batchID, url)
		if err != nil {
			c.logger.Warn("feed collection failed, skipping",
				"url", url,
				"error", err)
			continue
		}

		c.logger.Debug("feed collected",
			"url", url,
			"articles", len(feedArticles))
		articles = append(articles, feedArticles...)
	}

	return articles
}

func (c *Collector) collectFeed(ctx context.Context, batchID core.ID, url string) ([]*core.Article, error) {
	feedCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	feed, err := c.parser.ParseURLWithContext(url, feedCtx)
	if err != nil {
		return nil, err
	}

	return c.mapFeed(batchID, feed), nil
}

// mapFeed converts parsed feed items into articles. Items without a title or
// link carry nothing useful and are dropped.
func (c *Collector) mapFeed(batchID core.ID, feed *gofeed.Feed) []*core.Article {
	articles := make([]*core.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		article := mapItem(batchID, feed.Title, item)
		if article.Title == "" || article.Link == "" {
			c.logger.Debug("skipping feed item without title or link", "feed", feed.Title)
			continue
		}

		article.Fingerprint = dedup.FingerprintArticle(article)
		articles = append(articles, article)
	}
	return articles
}

// mapItem builds an article from a single feed item. The body prefers the
// item's full content over its description; both arrive as HTML.
func mapItem(batchID core.ID, source string, item *gofeed.Item) *core.Article {
	body := item.Content
	if strings.TrimSpace(stripHTML(body)) == "" {
		body = item.Description
	}

	article := &core.Article{
		BatchId: batchID,
		Title:   strings.TrimSpace(stripHTML(item.Title)),
		Body:    strings.TrimSpace(stripHTML(body)),
		Link:    strings.TrimSpace(item.Link),
		Source:  strings.TrimSpace(source),
	}

	if item.PublishedParsed != nil {
		article.PublishedAt = item.PublishedParsed.UTC()
	}

	return article
}

// stripHTML removes markup and resolves entities, collapsing whitespace.
func stripHTML(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
