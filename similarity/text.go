package similarity

import "strings"

// Stop words to filter out when tokenizing for overlap checks
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

const punctuation = ".,!?;:'\"-()[]{}«»—"

// IsStopWord reports whether the lowercased word carries no topical signal.
func IsStopWord(word string) bool {
	return stopWords[word]
}

// Normalize lowercases text, strips leading and trailing punctuation from each
// word, and collapses runs of whitespace into single spaces. Two articles with
// the same normalized content are byte-identical after this transform, which
// makes the result suitable for fingerprinting.
func Normalize(text string) string {
	words := strings.Fields(text)
	cleaned := make([]string, 0, len(words))
	for _, word := range words {
		w := strings.ToLower(strings.Trim(word, punctuation))
		if w != "" {
			cleaned = append(cleaned, w)
		}
	}
	return strings.Join(cleaned, " ")
}

// Tokens splits text into words, lowercases, trims punctuation, and removes
// stop words.
func Tokens(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))
	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, punctuation))
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}
	return filtered
}

// TokenSet builds the set of distinct filtered tokens in text.
func TokenSet(text string) map[string]bool {
	tokens := Tokens(text)
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		set[tok] = true
	}
	return set
}
