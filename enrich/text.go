package enrich

import (
	"html"
	"regexp"
	"strings"

	"github.com/arcatext/newsift/core"
)

const maxEmbedBodyLength = 2000

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// EmbeddingText builds the text an article is embedded from: its title
// followed by the body with markup stripped, the body capped so oversized
// articles don't blow past the embedding model's context.
func EmbeddingText(a *core.Article) string {
	body := htmlTagPattern.ReplaceAllString(a.Body, " ")
	body = html.UnescapeString(body)
	body = strings.Join(strings.Fields(body), " ")
	if len(body) > maxEmbedBodyLength {
		body = body[:maxEmbedBodyLength]
	}
	if body == "" {
		return a.Title
	}
	return a.Title + " " + body
}
