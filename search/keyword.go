package search

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/arcatext/newsift/core"
	"github.com/arcatext/newsift/similarity"
)

// queryWords extracts the significant words of a query: lowercased,
// punctuation-trimmed, stop words removed, and tokens shorter than two
// characters discarded. Length is counted in runes so single non-ASCII
// characters are discarded like their ASCII counterparts.
func queryWords(query string) []string {
	tokens := similarity.Tokens(query)
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) >= 2 {
			words = append(words, tok)
		}
	}
	return words
}

// keywordMatch is one article's outcome of the keyword pass.
type keywordMatch struct {
	exact     int
	partial   int
	raw       float64
	qualified bool
}

// scoreKeywords matches the significant query words against an article's
// title, body, and summary. Each word counts as an exact match when it
// appears as a whole token, or as a partial match when it is merely a
// substring of some token. The raw score combines both, partial matches
// weighted at 0.3.
//
// An article qualifies when its exact match count clears the configured
// minimum fraction of query words (rounded up, at least one), or when the
// raw score clears the combined floor.
func scoreKeywords(words []string, article *core.Article, minRatio float64) keywordMatch {
	if len(words) == 0 {
		return keywordMatch{}
	}

	text := article.Title + " " + article.Body + " " + article.Summary
	articleTokens := similarity.TokenSet(text)

	var m keywordMatch
	for _, word := range words {
		if articleTokens[word] {
			m.exact++
			continue
		}
		for tok := range articleTokens {
			if strings.Contains(tok, word) {
				m.partial++
				break
			}
		}
	}

	w := float64(len(words))
	m.raw = float64(m.exact)/w + 0.3*float64(m.partial)/w

	minCount := int(math.Ceil(minRatio * w))
	if minCount < 1 {
		minCount = 1
	}
	m.qualified = m.exact >= minCount || m.raw >= keywordScoreFloor

	return m
}

// keywordToScore converts a raw keyword score into the similarity scale via
// a fixed staircase, so keyword-only results can be ordered against semantic
// ones. Full matches land in [0.95,1.0], with 0.98 reserved for single-word
// exact full matches; lower bands interpolate linearly.
func keywordToScore(raw float64, singleWord bool) float32 {
	switch {
	case raw >= 1.0:
		if singleWord {
			return 0.98
		}
		t := (raw - 1.0) / 0.3
		if t > 1 {
			t = 1
		}
		return float32(0.95 + t*0.05)
	case raw >= 0.8:
		return float32(0.85 + (raw-0.8)/0.2*0.10)
	case raw >= 0.6:
		return float32(0.70 + (raw-0.6)/0.2*0.15)
	case raw >= 0.4:
		return float32(0.50 + (raw-0.4)/0.2*0.20)
	default:
		return float32(0.30 + raw/0.4*0.20)
	}
}
