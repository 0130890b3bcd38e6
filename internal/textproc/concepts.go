package textproc

import (
	"strings"
	"unicode"
)

// MaxKeyConcepts caps how many concepts ExtractKeyConcepts returns.
const MaxKeyConcepts = 20

// Sentence-initial words that pass the shape filter but carry no meaning.
var conceptStoplist = map[string]struct{}{
	"The":   {},
	"This":  {},
	"That":  {},
	"There": {},
	"These": {},
	"Those": {},
}

// ExtractKeyConcepts pulls salient capitalized terms from cleaned text.
// A word qualifies when it is longer than three letters, starts uppercase,
// is entirely alphabetic, and is not a stoplisted sentence opener.
// Duplicates are dropped keeping first appearance, capped at MaxKeyConcepts.
//
// This is a shape heuristic, not NLP: proper nouns and the odd capitalized
// common word both pass.
func ExtractKeyConcepts(text string) []string {
	seen := make(map[string]struct{})
	var concepts []string

	for _, sentence := range splitSentences(text) {
		for _, word := range strings.Fields(sentence) {
			if !isConceptWord(word) {
				continue
			}
			if _, dup := seen[word]; dup {
				continue
			}
			seen[word] = struct{}{}
			concepts = append(concepts, word)
			if len(concepts) == MaxKeyConcepts {
				return concepts
			}
		}
	}

	return concepts
}

func isConceptWord(word string) bool {
	if _, stop := conceptStoplist[word]; stop {
		return false
	}
	runes := []rune(word)
	if len(runes) <= 3 {
		return false
	}
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// splitSentences breaks text after sentence-ending punctuation followed by
// whitespace. Good enough for concept scanning; not a real tokenizer.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
