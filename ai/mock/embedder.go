package mock

import (
	"context"
	"hash/fnv"
	"math"
)

// mockVectorDim matches the dimensionality of the default embedding model so
// stored vectors and mock vectors are interchangeable in tests.
const mockVectorDim = 384

// MockEmbedder is a test double for ai.Embedder. By default it produces
// deterministic unit vectors seeded from the input text, so the same text
// always embeds to the same vector across runs. Tests that need specific
// vectors or failures inject behavior through the function fields.
type MockEmbedder struct {
	// EmbedTextFunc overrides EmbedText when set.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc overrides EmbedTexts when set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	callCount int
}

// NewMockEmbedder creates a mock embedder with default deterministic behavior.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// EmbedText returns a deterministic embedding derived from the text.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return seededVector(text), nil
}

// EmbedTexts returns deterministic embeddings for each input text.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = seededVector(text)
	}
	return vectors, nil
}

// CallCount returns the number of times any method was called.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount = 0
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// seededVector expands an FNV hash of the text into a unit vector. A linear
// congruential generator fills the components so every position depends on
// the seed, not just the first few bytes.
func seededVector(text string) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	state := h.Sum32()

	vector := make([]float32, mockVectorDim)
	var sumSquares float64
	for i := range vector {
		state = state*1664525 + 1013904223
		v := float32(state%1000) / 1000.0
		vector[i] = v
		sumSquares += float64(v) * float64(v)
	}

	if sumSquares > 0 {
		norm := float32(math.Sqrt(sumSquares))
		for i := range vector {
			vector[i] /= norm
		}
	}
	return vector
}
