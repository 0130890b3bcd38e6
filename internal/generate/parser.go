package generate

import (
	"strings"

	"github.com/wikideck-hq/wikideck-forge/internal/domain"
)

// ParseFlashcards scans free-form model output for Q:/A: pairs. It runs a
// line-oriented state machine with a question and an answer register:
// prefix lines load a register, unprefixed lines continue whichever register
// is being filled, and a pair is emitted only once both sides are non-empty.
// A trailing question with no answer is dropped.
func ParseFlashcards(raw string) []domain.Flashcard {
	var cards []domain.Flashcard
	var question, answer string

	flush := func() {
		q := strings.TrimSpace(question)
		a := strings.TrimSpace(answer)
		if q != "" && a != "" {
			cards = append(cards, domain.Flashcard{Question: q, Answer: a})
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "Q:"):
			flush()
			question = strings.TrimSpace(line[len("Q:"):])
			answer = ""
		case strings.HasPrefix(line, "Question:"):
			flush()
			question = strings.TrimSpace(line[len("Question:"):])
			answer = ""
		case strings.HasPrefix(line, "A:"):
			answer = strings.TrimSpace(line[len("A:"):])
		case strings.HasPrefix(line, "Answer:"):
			answer = strings.TrimSpace(line[len("Answer:"):])
		case question != "" && answer == "":
			question += " " + line
		case answer != "":
			answer += " " + line
		}
	}

	flush()
	return cards
}

// FormatFlashcards renders cards back into the Q:/A: line format the parser
// reads. Parsing the result reproduces the input cards.
func FormatFlashcards(cards []domain.Flashcard) string {
	var b strings.Builder
	for i, card := range cards {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Q: ")
		b.WriteString(card.Question)
		b.WriteString("\nA: ")
		b.WriteString(card.Answer)
		b.WriteString("\n")
	}
	return b.String()
}
