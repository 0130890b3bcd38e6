// Package pipeline runs the fetch -> chunk -> generate -> assemble flow for
// one article and produces the persisted deck.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/wikideck-hq/wikideck-forge/internal/domain"
	"github.com/wikideck-hq/wikideck-forge/internal/generate"
	"github.com/wikideck-hq/wikideck-forge/internal/logger"
	"github.com/wikideck-hq/wikideck-forge/internal/storage"
	"github.com/wikideck-hq/wikideck-forge/internal/textproc"
	"github.com/wikideck-hq/wikideck-forge/pkg/sources"
)

// ErrNoCards is returned when the article was fetched and chunked but the
// model produced zero usable cards. Distinct from a fetch failure.
var ErrNoCards = errors.New("no flashcards produced")

// Status tells callers whether every generation step succeeded.
type Status string

const (
	StatusComplete Status = "complete"
	StatusPartial  Status = "partial"
)

// Outcome is the typed result of one pipeline run.
type Outcome struct {
	Deck          domain.Deck
	Status        Status
	ChunkFailures int
	FromCache     bool
}

// Service coordinates the three pipeline stages. Stages run sequentially;
// one model call is in flight at a time.
type Service struct {
	registry  sources.FetcherRegistry
	requester *generate.Requester
	cache     storage.Cache
	log       logger.Logger

	maxChunkSize int
	overlap      int
}

// NewService wires a pipeline over the source fetcher registry and requester.
func NewService(reg sources.FetcherRegistry, requester *generate.Requester, cache storage.Cache, log logger.Logger, maxChunkSize, overlap int) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	if cache == nil {
		cache, _ = storage.NewCache("none", "", storage.Options{})
	}
	if maxChunkSize <= 0 {
		maxChunkSize = textproc.DefaultMaxChunkSize
	}
	if overlap < 0 || overlap >= maxChunkSize {
		overlap = textproc.DefaultOverlap
	}
	return &Service{
		registry:     reg,
		requester:    requester,
		cache:        cache,
		log:          log,
		maxChunkSize: maxChunkSize,
		overlap:      overlap,
	}
}

// Run processes one article URL into a deck of numCards content cards plus
// summary cards. A fetch failure aborts; per-chunk generation failures and a
// failed summary pass degrade the outcome to StatusPartial instead.
func (s *Service) Run(ctx context.Context, src sources.Source, articleURL string, numCards int) (*Outcome, error) {
	if s == nil || s.registry == nil || s.requester == nil {
		return nil, fmt.Errorf("pipeline service is not initialized")
	}

	start := time.Now()

	article, fromCache, err := s.loadArticle(ctx, src, articleURL)
	if err != nil {
		return nil, err
	}
	s.log.InfoObj("article processed", "article_meta", map[string]any{
		"title":       article.Title,
		"word_count":  article.WordCount,
		"chunk_count": article.ChunkCount,
		"concepts":    len(article.KeyConcepts),
		"from_cache":  fromCache,
	})

	contentCards, chunkFailures, err := s.requester.ContentCards(ctx, article, numCards)
	if err != nil {
		return nil, fmt.Errorf("generate content cards: %w", err)
	}

	summaryCards, summaryErr := s.requester.SummaryCards(ctx, article)
	if summaryErr != nil {
		s.log.WarnObj("summary card generation failed", "summary_error", map[string]any{
			"title": article.Title,
			"error": summaryErr.Error(),
		})
	}

	if len(contentCards)+len(summaryCards) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoCards, article.Title)
	}

	deck := s.assembleDeck(article, articleURL, contentCards, summaryCards, time.Since(start))

	status := StatusComplete
	if chunkFailures > 0 || summaryErr != nil {
		status = StatusPartial
	}

	return &Outcome{
		Deck:          deck,
		Status:        status,
		ChunkFailures: chunkFailures,
		FromCache:     fromCache,
	}, nil
}

// loadArticle returns the processed article for the URL, from cache when
// possible, otherwise fetching, cleaning and chunking it.
func (s *Service) loadArticle(ctx context.Context, src sources.Source, articleURL string) (*domain.Article, bool, error) {
	if cached, ok, err := s.cache.Get(articleURL); err != nil {
		s.log.WarnObj("article cache read failed", "cache_error", map[string]any{
			"url":   articleURL,
			"error": err.Error(),
		})
	} else if ok {
		return cached, true, nil
	}

	fetcher, err := s.registry.FetcherFor(src)
	if err != nil {
		return nil, false, fmt.Errorf("resolve fetcher for source %s: %w", src.ID, err)
	}

	content, err := fetcher.Fetch(ctx, src, articleURL)
	if err != nil {
		return nil, false, fmt.Errorf("fetch article from %s: %w", src.ID, err)
	}

	cleaned := textproc.CleanText(content.Extract)
	if cleaned == "" {
		return nil, false, fmt.Errorf("article %q has no extract text", content.Title)
	}

	chunks, err := textproc.ChunkText(cleaned, s.maxChunkSize, s.overlap)
	if err != nil {
		return nil, false, fmt.Errorf("chunk article text: %w", err)
	}

	article := &domain.Article{
		Title:       content.Title,
		URL:         content.URL,
		Description: content.Description,
		FullText:    cleaned,
		Chunks:      chunks,
		KeyConcepts: textproc.ExtractKeyConcepts(cleaned),
		ChunkCount:  len(chunks),
		WordCount:   textproc.WordCount(cleaned),
	}

	if err := s.cache.Put(articleURL, article); err != nil {
		s.log.WarnObj("article cache write failed", "cache_error", map[string]any{
			"url":   articleURL,
			"error": err.Error(),
		})
	}

	return article, false, nil
}

func (s *Service) assembleDeck(article *domain.Article, articleURL string, content, summary []domain.Flashcard, elapsed time.Duration) domain.Deck {
	total := len(content) + len(summary)

	seconds := elapsed.Seconds()
	perMinute := 0.0
	if seconds > 0 {
		perMinute = float64(total) / (seconds / 60)
	}

	chunksProcessed := article.ChunkCount
	if chunksProcessed > generate.MaxChunksProcessed {
		chunksProcessed = generate.MaxChunksProcessed
	}

	return domain.Deck{
		Source: domain.SourceInfo{
			URL:         articleURL,
			Title:       article.Title,
			Description: article.Description,
			WordCount:   article.WordCount,
			ChunkCount:  article.ChunkCount,
		},
		Flashcards: domain.CardSet{
			ContentCards: content,
			SummaryCards: summary,
			TotalCards:   total,
		},
		Processing: domain.Processing{
			TimeSeconds:    round2(seconds),
			CardsPerMinute: round2(perMinute),
			Timestamp:      time.Now().Unix(),
		},
		Metadata: domain.Metadata{
			KeyConcepts:     article.KeyConcepts,
			ChunksProcessed: chunksProcessed,
			ModelUsed:       s.requester.ModelName(),
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
