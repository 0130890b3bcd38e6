package domain

// Domain contains core models shared across pipeline stages.

// PageContent is the raw fetch result for one encyclopedia page.
type PageContent struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Article is the processed form of a page: cleaned text, chunks, and
// extracted concepts. Built once per fetch and treated as immutable.
type Article struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	FullText    string   `json:"full_text"`
	Chunks      []string `json:"chunks"`
	KeyConcepts []string `json:"key_concepts"`
	ChunkCount  int      `json:"chunk_count"`
	WordCount   int      `json:"word_count"`
}

// Flashcard is one question/answer pair parsed from model output.
// Both fields are non-empty for every card that survives parsing.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Deck is the persisted result for one processed article.
type Deck struct {
	Source     SourceInfo `json:"source"`
	Flashcards CardSet    `json:"flashcards"`
	Processing Processing `json:"processing"`
	Metadata   Metadata   `json:"metadata"`
}

// SourceInfo records where the deck came from.
type SourceInfo struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	WordCount   int    `json:"word_count"`
	ChunkCount  int    `json:"chunk_count"`
}

// CardSet groups the generated cards by origin.
type CardSet struct {
	ContentCards []Flashcard `json:"content_cards"`
	SummaryCards []Flashcard `json:"summary_cards"`
	TotalCards   int         `json:"total_cards"`
}

// Processing records wall-clock accounting for one run.
type Processing struct {
	TimeSeconds    float64 `json:"time_seconds"`
	CardsPerMinute float64 `json:"cards_per_minute"`
	Timestamp      int64   `json:"timestamp"`
}

// Metadata carries generation context alongside the cards.
type Metadata struct {
	KeyConcepts     []string `json:"key_concepts"`
	ChunksProcessed int      `json:"chunks_processed"`
	ModelUsed       string   `json:"model_used"`
}
