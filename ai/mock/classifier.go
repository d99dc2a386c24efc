package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/arcatext/newsift/ai"
)

// defaultMockThreshold is the relevance cutoff used by the default scoring.
const defaultMockThreshold = 0.6

// MockClassifier is a test double for ai.Classifier.
// It allows custom behavior injection via function fields.
type MockClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, uses default keyword-overlap scoring.
	ClassifyFunc func(ctx context.Context, title, body, criteria string) (ai.Verdict, error)

	// Threshold is the relevance cutoff for the default scoring.
	// Zero means defaultMockThreshold.
	Threshold float64

	callCount int
}

// NewMockClassifier creates a mock classifier with default keyword scoring.
// Note: Returns concrete type to allow test assertions via GetMockClassifier().
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Classify scores an article by keyword overlap with the criteria.
// Exact word matches count fully; substring matches count half. This mirrors
// the cheap scoring used when no LLM is reachable, so pipeline tests exercise
// realistic verdicts.
func (m *MockClassifier) Classify(ctx context.Context, title, body, criteria string) (ai.Verdict, error) {
	m.callCount++

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, title, body, criteria)
	}

	threshold := m.Threshold
	if threshold == 0 {
		threshold = defaultMockThreshold
	}

	criteriaWords := keywordSet(criteria)
	textWords := keywordSet(title + " " + body)

	if len(criteriaWords) == 0 {
		return ai.Verdict{Reason: "no usable criteria keywords"}, nil
	}

	exact := 0
	partial := 0
	for cw := range criteriaWords {
		if textWords[cw] {
			exact++
		}
		for tw := range textWords {
			if strings.Contains(tw, cw) || strings.Contains(cw, tw) {
				partial++
				break
			}
		}
	}

	total := len(criteriaWords)
	score := float64(exact)/float64(total) + float64(partial)/float64(total)*0.5
	if score > 1.0 {
		score = 1.0
	}

	return ai.Verdict{
		Score:    score,
		Relevant: score >= threshold,
		Reason:   fmt.Sprintf("keyword scoring: %d exact, %d partial of %d keywords", exact, partial, total),
	}, nil
}

// CallCount returns the number of times Classify was called.
func (m *MockClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockClassifier) Reset() {
	m.callCount = 0
	m.ClassifyFunc = nil
}

// keywordSet lowercases text, strips punctuation, and keeps words of at least
// three characters.
func keywordSet(text string) map[string]bool {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:\"'()[]{}")
		if len(w) >= 3 {
			set[w] = true
		}
	}
	return set
}
