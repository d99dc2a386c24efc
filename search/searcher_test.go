package search

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcatext/newsift/ai/mock"
	"github.com/arcatext/newsift/core"
)

// vectorFor builds a unit vector at the given angle so cosine similarities
// against [1,0] are exact.
func vectorFor(cosine float64) []float32 {
	sine := math.Sqrt(1 - cosine*cosine)
	return []float32{float32(cosine), float32(sine)}
}

// fixedEmbedder returns a mock whose query embedding is always [1,0].
func fixedEmbedder() *mock.MockEmbedder {
	m := mock.NewMockEmbedder()
	m.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	return m
}

func TestNewSearcher(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(mock.NewMockEmbedder())
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewSearcher(nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("with custom config", func(t *testing.T) {
		cfg := Config{BaseThreshold: 0.7, MinMatchRatio: 0.5, BoostWeight: 0.2}
		searcher, err := NewSearcher(mock.NewMockEmbedder(), WithConfig(cfg))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("out-of-range config is clamped", func(t *testing.T) {
		cfg := Config{BaseThreshold: 3.0, MinMatchRatio: -1, BoostWeight: 2.5}
		searcher, err := NewSearcher(mock.NewMockEmbedder(), WithConfig(cfg))
		require.NoError(t, err)
		assert.Equal(t, float32(1.0), searcher.config.BaseThreshold)
		assert.Equal(t, 0.0, searcher.config.MinMatchRatio)
		assert.Equal(t, 1.0, searcher.config.BoostWeight)
	})
}

func TestRank_SemanticOnly(t *testing.T) {
	searcher, err := NewSearcher(fixedEmbedder(), WithConfig(Config{
		BaseThreshold: 0.7,
		MinMatchRatio: DefaultMinMatchRatio,
		BoostWeight:   DefaultBoostWeight,
	}))
	require.NoError(t, err)

	// Zero keyword overlap with the query, cosine similarity 0.9
	article := &core.Article{
		Id:     1,
		Title:  "Quarterly earnings beat expectations",
		Body:   "Profits rose sharply across the sector.",
		Vector: vectorFor(0.9),
	}

	results := searcher.Rank(context.Background(), "economic outlook inflation", []*core.Article{article}, 10)

	require.Len(t, results, 1)
	assert.Equal(t, core.ID(1), results[0].Article.Id)
	assert.InDelta(t, 0.9, results[0].Score, 1e-4)
}

func TestRank_KeywordOnlyFullMatch(t *testing.T) {
	searcher, err := NewSearcher(fixedEmbedder())
	require.NoError(t, err)

	// No embedding; all three significant query words match exactly
	article := &core.Article{
		Id:    2,
		Title: "Storm warning coastal",
		Body:  "Authorities issued alerts.",
	}

	results := searcher.Rank(context.Background(), "storm warning coastal", []*core.Article{article}, 10)

	require.Len(t, results, 1)
	assert.GreaterOrEqual(t, results[0].Score, float32(0.95))
	assert.LessOrEqual(t, results[0].Score, float32(1.0))
}

func TestRank_SingleWordExactMatch(t *testing.T) {
	searcher, err := NewSearcher(fixedEmbedder())
	require.NoError(t, err)

	article := &core.Article{Id: 3, Title: "Inflation data released", Body: ""}

	results := searcher.Rank(context.Background(), "inflation", []*core.Article{article}, 10)

	require.Len(t, results, 1)
	assert.InDelta(t, 0.98, results[0].Score, 1e-4)
}

func TestRank_NoSignificantWords(t *testing.T) {
	searcher, err := NewSearcher(fixedEmbedder())
	require.NoError(t, err)

	embedded := &core.Article{Id: 4, Title: "Something", Vector: vectorFor(0.5)}
	unembedded := &core.Article{Id: 5, Title: "The of and", Body: "the of"}

	// All query tokens are stop words: keyword pass contributes nothing,
	// but the semantic pass still runs with the loose empty-query bucket
	results := searcher.Rank(context.Background(), "the of", []*core.Article{embedded, unembedded}, 10)

	require.Len(t, results, 1)
	assert.Equal(t, core.ID(4), results[0].Article.Id)
	assert.InDelta(t, 0.5, results[0].Score, 1e-4)
}

func TestRank_HybridBoostAndNoDuplicates(t *testing.T) {
	searcher, err := NewSearcher(fixedEmbedder())
	require.NoError(t, err)

	strong := &core.Article{
		Id:     10,
		Title:  "Storm warning issued for coast",
		Body:   "A severe storm warning covers the entire coast today.",
		Vector: vectorFor(0.8),
	}
	weaker := &core.Article{
		Id:     11,
		Title:  "Storm warning lifted",
		Body:   "The earlier storm warning has been lifted for the coast.",
		Vector: vectorFor(0.6),
	}

	results := searcher.Rank(context.Background(), "storm warning coast", []*core.Article{strong, weaker}, 10)

	require.Len(t, results, 2)

	// Each article appears exactly once
	seen := make(map[core.ID]bool)
	for _, r := range results {
		assert.False(t, seen[r.Article.Id], "article %d appeared twice", r.Article.Id)
		seen[r.Article.Id] = true
	}

	// Keyword boost lifts both above their bare cosine scores
	assert.Equal(t, core.ID(10), results[0].Article.Id)
	assert.Greater(t, results[0].Score, float32(0.8))
	assert.Greater(t, results[1].Score, float32(0.6))
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestRank_ScoreBounds(t *testing.T) {
	searcher, err := NewSearcher(fixedEmbedder(), WithConfig(Config{
		BaseThreshold: 1.0,
		MinMatchRatio: 0.1,
		BoostWeight:   1.0,
	}))
	require.NoError(t, err)

	// Perfect semantic score plus maximum keyword boost must still cap at 1.0
	article := &core.Article{
		Id:     20,
		Title:  "storm warning coast",
		Vector: []float32{1, 0},
	}

	results := searcher.Rank(context.Background(), "storm warning coast", []*core.Article{article}, 10)

	require.Len(t, results, 1)
	assert.LessOrEqual(t, results[0].Score, float32(1.0))
	assert.GreaterOrEqual(t, results[0].Score, float32(0.0))
}

func TestRank_Idempotent(t *testing.T) {
	searcher, err := NewSearcher(fixedEmbedder())
	require.NoError(t, err)

	corpus := []*core.Article{
		{Id: 1, Title: "Storm warning for the coast", Vector: vectorFor(0.7)},
		{Id: 2, Title: "Coast braces for storm", Vector: vectorFor(0.65)},
		{Id: 3, Title: "Inflation data due", Vector: vectorFor(0.3)},
		{Id: 4, Title: "Storm damages harbour"},
	}

	first := searcher.Rank(context.Background(), "storm coast", corpus, 10)
	for i := 0; i < 5; i++ {
		again := searcher.Rank(context.Background(), "storm coast", corpus, 10)
		require.Equal(t, len(first), len(again))
		for j := range first {
			assert.Equal(t, first[j].Article.Id, again[j].Article.Id)
			assert.Equal(t, first[j].Score, again[j].Score)
		}
	}
}

func TestRank_EmbedderFailureDegradesToKeyword(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("connection refused")
	}

	searcher, err := NewSearcher(embedder)
	require.NoError(t, err)

	embedded := &core.Article{Id: 1, Title: "Unrelated topic entirely", Vector: vectorFor(0.9)}
	keyword := &core.Article{Id: 2, Title: "Storm warning coast", Vector: vectorFor(0.9)}

	results := searcher.Rank(context.Background(), "storm warning coast", []*core.Article{embedded, keyword}, 10)

	// Only the keyword match survives; no error surfaces to the caller
	require.Len(t, results, 1)
	assert.Equal(t, core.ID(2), results[0].Article.Id)
}

func TestRank_LimitTruncation(t *testing.T) {
	searcher, err := NewSearcher(fixedEmbedder())
	require.NoError(t, err)

	corpus := make([]*core.Article, 0, 8)
	for i := 1; i <= 8; i++ {
		corpus = append(corpus, &core.Article{
			Id:     core.ID(i),
			Title:  "Storm report",
			Vector: vectorFor(0.4 + float64(i)*0.05),
		})
	}

	results := searcher.Rank(context.Background(), "storm", corpus, 3)
	assert.Len(t, results, 3)

	// Descending order
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestRank_EmptyCorpus(t *testing.T) {
	searcher, err := NewSearcher(fixedEmbedder())
	require.NoError(t, err)

	results := searcher.Rank(context.Background(), "storm", nil, 10)
	assert.Empty(t, results)
}

func TestRank_WithMonitor(t *testing.T) {
	searcher, err := NewSearcher(fixedEmbedder())
	require.NoError(t, err)

	corpus := []*core.Article{
		{Id: 1, Title: "Storm warning", Vector: vectorFor(0.9)},
		{Id: 2, Title: "Unrelated story", Vector: vectorFor(0.7)},
	}

	monitor := &recordingMonitor{}
	results := searcher.RankWithMonitor(context.Background(), "storm warning", corpus, 10, monitor)

	assert.Equal(t, "storm warning", monitor.query)
	assert.NotEmpty(t, monitor.keywordIds)
	assert.NotEmpty(t, monitor.semanticIds)
	assert.Equal(t, len(results), monitor.finished)
}

type recordingMonitor struct {
	query       string
	keywordIds  []uint64
	semanticIds []uint64
	finished    int
}

func (r *recordingMonitor) Start(query string)              { r.query = query }
func (r *recordingMonitor) AfterKeywordPass(ids []uint64)   { r.keywordIds = ids }
func (r *recordingMonitor) AfterSemanticPass(ids []uint64)  { r.semanticIds = ids }
func (r *recordingMonitor) HybridHit(_ *core.Article)       {}
func (r *recordingMonitor) SemanticHit(_ *core.Article)     {}
func (r *recordingMonitor) KeywordHit(_ *core.Article)      {}
func (r *recordingMonitor) Finish(results []core.RankedArticle) {
	r.finished = len(results)
}

func TestQueryWords(t *testing.T) {
	words := queryWords("The storm, a warning of X!")
	// Stop words and single-character tokens are discarded
	assert.Equal(t, []string{"storm", "warning"}, words)

	// Single-character tokens are measured in runes, not bytes
	words = queryWords("Ураган в Москве")
	assert.Equal(t, []string{"ураган", "москве"}, words)
}

func TestScoreKeywords(t *testing.T) {
	article := &core.Article{
		Title:   "Storm warning issued",
		Body:    "Forecasters issued warnings for coastal areas.",
		Summary: "",
	}

	t.Run("all exact", func(t *testing.T) {
		m := scoreKeywords([]string{"storm", "warning", "issued"}, article, 0.5)
		assert.Equal(t, 3, m.exact)
		assert.InDelta(t, 1.0, m.raw, 1e-9)
		assert.True(t, m.qualified)
	})

	t.Run("partial only", func(t *testing.T) {
		// "warn" is a substring of "warning" but not a whole token
		m := scoreKeywords([]string{"warn"}, article, 0.5)
		assert.Equal(t, 0, m.exact)
		assert.Equal(t, 1, m.partial)
		assert.InDelta(t, 0.3, m.raw, 1e-9)
	})

	t.Run("no match", func(t *testing.T) {
		m := scoreKeywords([]string{"earthquake"}, article, 0.5)
		assert.False(t, m.qualified)
		assert.Zero(t, m.raw)
	})
}

func TestKeywordToScore_StaircaseBands(t *testing.T) {
	tests := []struct {
		name       string
		raw        float64
		singleWord bool
		lo, hi     float32
	}{
		{"full multi-word", 1.0, false, 0.95, 1.0},
		{"full with partials", 1.3, false, 0.95, 1.0},
		{"full single word", 1.3, true, 0.98, 0.98},
		{"high band", 0.9, false, 0.85, 0.95},
		{"mid band", 0.7, false, 0.70, 0.85},
		{"low band", 0.5, false, 0.50, 0.70},
		{"floor band", 0.3, false, 0.30, 0.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := keywordToScore(tt.raw, tt.singleWord)
			assert.GreaterOrEqual(t, score, tt.lo)
			assert.LessOrEqual(t, score, tt.hi)
		})
	}
}

func TestAdaptiveThreshold(t *testing.T) {
	cfg := DefaultRankConfig()

	assert.InDelta(t, 0.25, cfg.adaptiveThreshold(0), 1e-6)
	assert.InDelta(t, 0.30, cfg.adaptiveThreshold(1), 1e-6)
	assert.InDelta(t, 0.30, cfg.adaptiveThreshold(2), 1e-6)
	assert.InDelta(t, 0.45, cfg.adaptiveThreshold(3), 1e-6)
	assert.InDelta(t, 0.45, cfg.adaptiveThreshold(5), 1e-6)
	assert.InDelta(t, 0.60, cfg.adaptiveThreshold(6), 1e-6)

	// Base threshold caps every bucket
	tight := Config{BaseThreshold: 0.2}
	assert.InDelta(t, 0.2, tight.adaptiveThreshold(0), 1e-6)
	assert.InDelta(t, 0.2, tight.adaptiveThreshold(8), 1e-6)
}
