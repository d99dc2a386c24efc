package search

import "github.com/arcatext/newsift/core"

// RankMonitor provides hooks to observe the ranking process.
// Implement this interface to track intermediate steps and results during search.
type RankMonitor interface {
	Start(query string)
	AfterKeywordPass(ids []uint64)
	AfterSemanticPass(ids []uint64)
	HybridHit(article *core.Article)
	SemanticHit(article *core.Article)
	KeywordHit(article *core.Article)
	Finish(results []core.RankedArticle)
}

// noopMonitor is a no-op implementation of RankMonitor
type noopMonitor struct{}

var _ RankMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                    {}
func (n *noopMonitor) AfterKeywordPass(_ []uint64)       {}
func (n *noopMonitor) AfterSemanticPass(_ []uint64)      {}
func (n *noopMonitor) HybridHit(_ *core.Article)         {}
func (n *noopMonitor) SemanticHit(_ *core.Article)       {}
func (n *noopMonitor) KeywordHit(_ *core.Article)        {}
func (n *noopMonitor) Finish(_ []core.RankedArticle)     {}
