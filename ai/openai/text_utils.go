package openai

import (
	"html"
	"regexp"
	"strings"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// cleanHTML strips HTML tags and entities from feed content, collapsing the
// result into plain whitespace-separated text.
func cleanHTML(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// truncate shortens text to at most max bytes, appending an ellipsis when
// anything was cut off.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
