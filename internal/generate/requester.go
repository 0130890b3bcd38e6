package generate

import (
	"context"
	"fmt"

	"github.com/wikideck-hq/wikideck-forge/internal/domain"
	"github.com/wikideck-hq/wikideck-forge/internal/logger"
)

// Requester drives the model through per-chunk and summary prompts and
// parses the output into cards.
type Requester struct {
	gen Generator
	log logger.Logger
}

// NewRequester wires a requester over the given generator.
func NewRequester(gen Generator, log logger.Logger) *Requester {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Requester{gen: gen, log: log}
}

// ContentCards prompts the model once per chunk (first MaxChunksProcessed
// chunks only) and accumulates parsed cards until numCards is reached, then
// truncates to exactly numCards. A failed chunk is logged and skipped; the
// failure count comes back so callers can mark the run partial.
func (r *Requester) ContentCards(ctx context.Context, article *domain.Article, numCards int) ([]domain.Flashcard, int, error) {
	if r == nil || r.gen == nil {
		return nil, 0, fmt.Errorf("requester is not initialized")
	}
	if numCards <= 0 {
		return nil, 0, fmt.Errorf("card count must be positive, got %d", numCards)
	}

	chunks := article.Chunks
	if len(chunks) > MaxChunksProcessed {
		chunks = chunks[:MaxChunksProcessed]
	}

	perChunk := CardsPerChunk(numCards)
	var cards []domain.Flashcard
	failed := 0

	for i, chunk := range chunks {
		select {
		case <-ctx.Done():
			return cards, failed, ctx.Err()
		default:
		}

		prompt := ChunkPrompt(chunk, perChunk)
		raw, err := r.gen.Generate(ctx, prompt, ContentSampling)
		if err != nil {
			failed++
			r.log.WarnObj("chunk card generation failed", "chunk_error", map[string]any{
				"chunk_index": i,
				"title":       article.Title,
				"error":       err.Error(),
			})
			continue
		}

		parsed := ParseFlashcards(raw)
		r.log.DebugObj("chunk cards parsed", "chunk_result", map[string]any{
			"chunk_index": i,
			"cards":       len(parsed),
		})
		cards = append(cards, parsed...)

		if len(cards) >= numCards {
			break
		}
	}

	if len(cards) > numCards {
		cards = cards[:numCards]
	}
	return cards, failed, nil
}

// SummaryCards prompts the model once over the whole article for
// SummaryCardCount broader-theme cards.
func (r *Requester) SummaryCards(ctx context.Context, article *domain.Article) ([]domain.Flashcard, error) {
	if r == nil || r.gen == nil {
		return nil, fmt.Errorf("requester is not initialized")
	}

	prompt := SummaryPrompt(article.Title, article.FullText)
	raw, err := r.gen.Generate(ctx, prompt, SummarySampling)
	if err != nil {
		return nil, fmt.Errorf("summary card generation: %w", err)
	}

	return ParseFlashcards(raw), nil
}

// ModelName reports the underlying model identifier for deck metadata.
func (r *Requester) ModelName() string {
	if r == nil || r.gen == nil {
		return ""
	}
	return r.gen.ModelName()
}
