package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Breaking News", "breaking news"},
		{"strips punctuation", "Markets rally, again!", "markets rally again"},
		{"collapses whitespace", "one   two\t three", "one two three"},
		{"empty input", "", ""},
		{"punctuation only", "... !!! ---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	in := "The Quick, Brown Fox!"
	assert.Equal(t, Normalize(in), Normalize(in))
}

func TestTokens(t *testing.T) {
	tokens := Tokens("The market rallied on the news.")
	assert.Equal(t, []string{"market", "rallied", "news"}, tokens)
}

func TestTokens_AllStopWords(t *testing.T) {
	assert.Empty(t, Tokens("the a an of and"))
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("storm storm warning")
	assert.Len(t, set, 2)
	assert.True(t, set["storm"])
	assert.True(t, set["warning"])
}

func TestJaccard(t *testing.T) {
	a := TokenSet("central bank raises rates")
	b := TokenSet("central bank cuts rates")

	// intersection {central, bank, rates} = 3, union = 5
	assert.InDelta(t, 0.6, Jaccard(a, b), 1e-9)
}

func TestJaccard_Identical(t *testing.T) {
	a := TokenSet("storm warning issued")
	assert.Equal(t, 1.0, Jaccard(a, a))
}

func TestJaccard_Disjoint(t *testing.T) {
	a := TokenSet("storm warning")
	b := TokenSet("market rally")
	assert.Equal(t, 0.0, Jaccard(a, b))
}

func TestJaccard_BothEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Jaccard(map[string]bool{}, map[string]bool{}))
}

func TestJaccard_OneEmpty(t *testing.T) {
	a := TokenSet("storm warning")
	assert.Equal(t, 0.0, Jaccard(a, map[string]bool{}))
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"empty vectors", nil, nil, 0.0},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0.0},
		{"zero magnitude", []float32{0, 0}, []float32{1, 2}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-6)
		})
	}
}

func TestCosine_ScaleInvariant(t *testing.T) {
	a := []float32{0.5, 1.5, -2.0}
	scaled := []float32{1.0, 3.0, -4.0}
	assert.InDelta(t, 1.0, Cosine(a, scaled), 1e-6)
}
