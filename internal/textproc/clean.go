// Package textproc normalizes fetched article text and splits it into
// model-sized pieces.
package textproc

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	citationRe   = regexp.MustCompile(`\[\d+\]`)
)

var quoteReplacer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
)

// CleanText collapses whitespace, strips wiki citation and edit markers, and
// normalizes curly quotes. Runs before chunking and concept extraction.
func CleanText(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = citationRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "[edit]", "")
	text = quoteReplacer.Replace(text)
	return strings.TrimSpace(text)
}

// WordCount reports the whitespace-separated word count of text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
