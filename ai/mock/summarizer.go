package mock

import (
	"context"
	"strings"
)

// MockSummarizer is a test double for ai.Summarizer.
// It allows custom behavior injection via function fields.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, uses default first-sentences behavior.
	SummarizeFunc func(ctx context.Context, title, body string) (string, error)

	callCount int
}

// NewMockSummarizer creates a mock summarizer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockSummarizer().
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// Summarize returns the first two sentences of the body, or the title when
// the body is empty.
func (m *MockSummarizer) Summarize(ctx context.Context, title, body string) (string, error) {
	m.callCount++

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, title, body)
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return title, nil
	}

	sentences := strings.SplitAfterN(body, ". ", 3)
	if len(sentences) > 2 {
		sentences = sentences[:2]
	}
	return strings.TrimSpace(strings.Join(sentences, "")), nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockSummarizer) Reset() {
	m.callCount = 0
	m.SummarizeFunc = nil
}
