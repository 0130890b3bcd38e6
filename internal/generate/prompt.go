package generate

import "fmt"

const (
	// MaxChunksProcessed caps how many chunks feed content-card prompts.
	MaxChunksProcessed = 3

	// SummaryCardCount is the fixed card count requested from the summary prompt.
	SummaryCardCount = 5

	chunkPromptChars   = 800
	summaryPromptChars = 1500
)

// CardsPerChunk is how many cards each chunk prompt asks for so the target
// total is reachable from MaxChunksProcessed chunks.
func CardsPerChunk(numCards int) int {
	return numCards/MaxChunksProcessed + 1
}

// ChunkPrompt builds the content-card prompt for one chunk. The chunk text
// is truncated to chunkPromptChars characters.
func ChunkPrompt(chunk string, numCards int) string {
	return fmt.Sprintf(`Based on the following text, create %d educational flashcards. Each flashcard should have a clear question and a concise answer.

Text: %s

Format each flashcard as:
Q: [Question]
A: [Answer]

Generate flashcards that test understanding of key concepts, facts, and relationships in the text.`,
		numCards, truncateRunes(chunk, chunkPromptChars))
}

// SummaryPrompt builds the whole-article prompt requesting SummaryCardCount
// cards over fixed themes. The article text is truncated to summaryPromptChars.
func SummaryPrompt(title, fullText string) string {
	return fmt.Sprintf(`Create %d comprehensive flashcards that summarize the key points of this encyclopedia article about %s.

Article content: %s

Create flashcards that cover:
1. Main definition/concept
2. Key characteristics or features
3. Important examples or applications
4. Historical context or significance
5. Related concepts or connections

Format each as:
Q: [Question]
A: [Answer]`,
		SummaryCardCount, title, truncateRunes(fullText, summaryPromptChars))
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
