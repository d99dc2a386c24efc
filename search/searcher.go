package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/arcatext/newsift/ai"
	"github.com/arcatext/newsift/core"
	"github.com/arcatext/newsift/similarity"
)

// Searcher ranks articles against free-text queries by fusing keyword
// matching with embedding-based semantic similarity.
type Searcher struct {
	embedder ai.Embedder
	config   Config
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithConfig overrides the ranking tunables. Out-of-range values are clamped
// into [0,1].
func WithConfig(config Config) Option {
	return func(s *Searcher) error {
		s.config = config.clamp()
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		embedder: embedder,
		config:   DefaultRankConfig(),
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Rank orders the corpus by relevance to the query.
// Returns up to limit results, fused scores in [0,1], descending.
func (s *Searcher) Rank(ctx context.Context, query string, corpus []*core.Article, limit int) []core.RankedArticle {
	return s.RankWithMonitor(ctx, query, corpus, limit, nil)
}

// RankWithMonitor ranks the corpus with monitoring. The monitor receives
// callbacks at each stage of the ranking process.
//
// Ranking never fails: an unreachable embedding provider degrades the result
// to keyword-only matches, and a malformed article is skipped rather than
// aborting the pass.
func (s *Searcher) RankWithMonitor(ctx context.Context, query string, corpus []*core.Article, limit int, monitor RankMonitor) []core.RankedArticle {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if limit <= 0 {
		return []core.RankedArticle{}
	}

	monitor.Start(query)

	words := queryWords(query)

	// 1. Keyword pass over the full corpus, embeddings or not.
	keyword := make(map[core.ID]keywordMatch)
	keywordIds := make([]uint64, 0)
	for _, article := range corpus {
		if article == nil {
			continue
		}
		m := scoreKeywords(words, article, s.config.MinMatchRatio)
		if m.qualified {
			keyword[article.Id] = m
			keywordIds = append(keywordIds, uint64(article.Id))
		}
	}
	monitor.AfterKeywordPass(keywordIds)

	// 2. Semantic pass over embedded articles. An embedding failure for the
	// query drops the whole pass, not the search.
	semantic := s.semanticPass(ctx, query, corpus, words, limit)
	semanticIds := make([]uint64, 0, len(semantic))
	for _, m := range semantic {
		semanticIds = append(semanticIds, uint64(m.Article.Id))
	}
	monitor.AfterSemanticPass(semanticIds)

	// 3. Fusion: semantic results first, keyword matches boosting them;
	// keyword-only matches follow on the staircase scale.
	byID := make(map[core.ID]*core.Article, len(corpus))
	for _, a := range corpus {
		if a != nil {
			byID[a.Id] = a
		}
	}

	fused := make(map[core.ID]float32, len(semantic)+len(keyword))
	for _, m := range semantic {
		score := m.Score
		if kw, ok := keyword[m.Article.Id]; ok {
			score += float32(kw.raw * s.config.BoostWeight)
			if score > 1 {
				score = 1
			}
			monitor.HybridHit(m.Article)
		} else {
			monitor.SemanticHit(m.Article)
		}
		fused[m.Article.Id] = score
	}

	singleWord := len(words) == 1
	for id, kw := range keyword {
		if _, present := fused[id]; present {
			continue
		}
		fused[id] = keywordToScore(kw.raw, singleWord)
		monitor.KeywordHit(byID[id])
	}

	// 4. Sort by fused score descending; equal scores order by ascending ID
	// so repeated runs return identical output.
	results := make([]core.RankedArticle, 0, len(fused))
	for id, score := range fused {
		article, ok := byID[id]
		if !ok {
			s.logger.Warn("ranked article missing from corpus", "article", id)
			continue
		}
		results = append(results, core.RankedArticle{Article: article, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Article.Id < results[j].Article.Id
	})
	if len(results) > limit {
		results = results[:limit]
	}
	monitor.Finish(results)

	return results
}

// semanticPass embeds the query and scores every embedded corpus article by
// cosine similarity, keeping the top 3x limit that clear the adaptive
// threshold. Returns nil when the provider is unreachable.
func (s *Searcher) semanticPass(ctx context.Context, query string, corpus []*core.Article, words []string, limit int) []core.RankedArticle {
	queryVec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Warn("embedding provider unavailable, keyword-only ranking", "err", err)
		return nil
	}
	if len(queryVec) == 0 {
		s.logger.Warn("embedding provider returned empty vector, keyword-only ranking")
		return nil
	}

	threshold := s.config.adaptiveThreshold(len(words))

	matches := make([]core.RankedArticle, 0)
	for _, article := range corpus {
		if article == nil || !article.Embedded() {
			continue
		}
		score := similarity.Cosine(queryVec, article.Vector)
		if score >= threshold {
			matches = append(matches, core.RankedArticle{Article: article, Score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Article.Id < matches[j].Article.Id
	})
	if max := 3 * limit; len(matches) > max {
		matches = matches[:max]
	}

	return matches
}
