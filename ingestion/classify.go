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


package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/arcatext/newsift/ai"
	"github.com/arcatext/newsift/core"
	"github.com/arcatext/newsift/similarity"
)

// classifyStrategy is one way of scoring an article against criteria.
// Strategies are tried in order; the first that returns a verdict wins.
type classifyStrategy struct {
	name     string
	classify func(ctx context.Context, title, body, criteria string) (ai.Verdict, error)
}

// classifyStrategies builds the ordered strategy chain: the LLM classifier
// first, then keyword overlap so an article still gets a score when the
// model is unreachable.
func (p *Pipeline) classifyStrategies() []classifyStrategy {
	classifier := p.provider.Classifier()
	return []classifyStrategy{
		{
			name:     "llm",
			classify: classifier.Classify,
		},
		{
			name: "keyword",
			classify: func(_ context.Context, title, body, criteria string) (ai.Verdict, error) {
				return keywordVerdict(title, body, criteria), nil
			},
		},
	}
}

// classifyArticle runs the strategy chain for one article and records the
// verdict. The batch's relevance threshold overrides the verdict's own
// relevance flag when set.
func (p *Pipeline) classifyArticle(ctx context.Context, article *core.Article, batch *core.Batch, strategies []classifyStrategy) {
	for _, strategy := range strategies {
		verdict, err := strategy.classify(ctx, article.Title, article.Body, batch.Criteria)
		if err != nil {
			p.logger.Warn("classification strategy failed",
				"strategy", strategy.name,
				"article", article.Id,
				"error", err)
			continue
		}

		article.RelevanceScore = verdict.Score
		article.ClassificationReason = verdict.Reason
		if batch.RelevanceThreshold > 0 {
			article.IsRelevant = verdict.Score >= batch.RelevanceThreshold
		} else {
			article.IsRelevant = verdict.Relevant
		}
		return
	}

	p.logger.Warn("all classification strategies failed, article left unclassified",
		"article", article.Id)
}

// keywordVerdict scores by word overlap between the criteria and the
// article text. Crude, but it never fails and keeps a run moving when the
// LLM is down.
func keywordVerdict(title, body, criteria string) ai.Verdict {
	criteriaWords := similarity.Tokens(criteria)
	if len(criteriaWords) == 0 {
		return ai.Verdict{Reason: "keyword fallback: no usable criteria words"}
	}

	articleTokens := similarity.TokenSet(title + " " + body)

	var matched float64
	for _, word := range criteriaWords {
		if articleTokens[word] {
			matched++
			continue
		}
		for tok := range articleTokens {
			if strings.Contains(tok, word) {
				matched += 0.5
				break
			}
		}
	}

	score := matched / float64(len(criteriaWords))
	if score > 1 {
		score = 1
	}

	return ai.Verdict{
		Score: score,
		// Relevant is left to the batch threshold applied by the caller
		Reason: fmt.Sprintf("keyword fallback: %.1f of %d criteria words matched", matched, len(criteriaWords)),
	}
}
