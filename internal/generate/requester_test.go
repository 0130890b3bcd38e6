package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/wikideck-hq/wikideck-forge/internal/domain"
)

// stubGenerator replays canned responses in call order; an empty entry
// produces an error for that call.
type stubGenerator struct {
	responses []string
	calls     int
	prompts   []string
	params    []Sampling
}

func (s *stubGenerator) ModelName() string { return "stub-model" }

func (s *stubGenerator) Generate(_ context.Context, prompt string, params Sampling) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.params = append(s.params, params)
	idx := s.calls
	s.calls++
	if idx >= len(s.responses) || s.responses[idx] == "" {
		return "", fmt.Errorf("call %d: %w", idx, ErrGenerationFailed)
	}
	return s.responses[idx], nil
}

func cardsResponse(n int, tag string) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "Q: %s question %d?\nA: %s answer %d.\n", tag, i, tag, i)
	}
	return b.String()
}

func testArticle(chunks int) *domain.Article {
	a := &domain.Article{
		Title:    "Test Article",
		FullText: "Full text of the test article.",
	}
	for i := 0; i < chunks; i++ {
		a.Chunks = append(a.Chunks, fmt.Sprintf("chunk %d text", i))
	}
	a.ChunkCount = len(a.Chunks)
	return a
}

func TestContentCardsStopsAtTarget(t *testing.T) {
	gen := &stubGenerator{responses: []string{
		cardsResponse(4, "c0"),
		cardsResponse(4, "c1"),
		cardsResponse(4, "c2"),
	}}
	r := NewRequester(gen, nil)

	cards, failed, err := r.ContentCards(context.Background(), testArticle(3), 6)
	if err != nil {
		t.Fatalf("ContentCards: %v", err)
	}
	if failed != 0 {
		t.Fatalf("failed = %d, want 0", failed)
	}
	if len(cards) != 6 {
		t.Fatalf("cards = %d, want exactly 6", len(cards))
	}
	// 4 from the first chunk, then 4 more reach the target on call two.
	if gen.calls != 2 {
		t.Fatalf("generator calls = %d, want 2", gen.calls)
	}
	if gen.params[0] != ContentSampling {
		t.Fatalf("sampling = %#v, want %#v", gen.params[0], ContentSampling)
	}
	if want := CardsPerChunk(6); !strings.Contains(gen.prompts[0], fmt.Sprintf("create %d educational", want)) {
		t.Fatalf("prompt did not request %d cards per chunk: %q", want, gen.prompts[0])
	}
}

func TestContentCardsProcessesAtMostThreeChunks(t *testing.T) {
	gen := &stubGenerator{responses: []string{
		cardsResponse(1, "c0"),
		cardsResponse(1, "c1"),
		cardsResponse(1, "c2"),
		cardsResponse(1, "c3"),
	}}
	r := NewRequester(gen, nil)

	cards, _, err := r.ContentCards(context.Background(), testArticle(10), 40)
	if err != nil {
		t.Fatalf("ContentCards: %v", err)
	}
	if gen.calls != MaxChunksProcessed {
		t.Fatalf("generator calls = %d, want %d", gen.calls, MaxChunksProcessed)
	}
	if len(cards) != 3 {
		t.Fatalf("cards = %d, want 3", len(cards))
	}
}

func TestContentCardsCountsFailuresAndContinues(t *testing.T) {
	gen := &stubGenerator{responses: []string{
		"",
		cardsResponse(2, "c1"),
		"",
	}}
	r := NewRequester(gen, nil)

	cards, failed, err := r.ContentCards(context.Background(), testArticle(3), 10)
	if err != nil {
		t.Fatalf("ContentCards: %v", err)
	}
	if failed != 2 {
		t.Fatalf("failed = %d, want 2", failed)
	}
	if len(cards) != 2 {
		t.Fatalf("cards = %d, want 2", len(cards))
	}
}

func TestContentCardsRejectsBadCount(t *testing.T) {
	r := NewRequester(&stubGenerator{}, nil)
	if _, _, err := r.ContentCards(context.Background(), testArticle(1), 0); err == nil {
		t.Fatalf("expected error for zero card count")
	}
}

func TestContentCardsStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &stubGenerator{responses: []string{cardsResponse(2, "c0")}}
	r := NewRequester(gen, nil)

	_, _, err := r.ContentCards(ctx, testArticle(3), 10)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if gen.calls != 0 {
		t.Fatalf("generator called %d times after cancel", gen.calls)
	}
}

func TestSummaryCards(t *testing.T) {
	gen := &stubGenerator{responses: []string{cardsResponse(5, "s")}}
	r := NewRequester(gen, nil)

	cards, err := r.SummaryCards(context.Background(), testArticle(1))
	if err != nil {
		t.Fatalf("SummaryCards: %v", err)
	}
	if len(cards) != 5 {
		t.Fatalf("cards = %d, want 5", len(cards))
	}
	if gen.params[0] != SummarySampling {
		t.Fatalf("sampling = %#v, want %#v", gen.params[0], SummarySampling)
	}
	if !strings.Contains(gen.prompts[0], "Test Article") {
		t.Fatalf("summary prompt missing title: %q", gen.prompts[0])
	}
}

func TestSummaryCardsWrapsGeneratorError(t *testing.T) {
	r := NewRequester(&stubGenerator{}, nil)
	if _, err := r.SummaryCards(context.Background(), testArticle(1)); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want wrapped ErrGenerationFailed", err)
	}
}

func TestRequesterModelName(t *testing.T) {
	r := NewRequester(&stubGenerator{}, nil)
	if got := r.ModelName(); got != "stub-model" {
		t.Fatalf("ModelName = %q", got)
	}
}
