package sinks

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wikideck-hq/wikideck-forge/internal/domain"
)

func sampleDeck() domain.Deck {
	return domain.Deck{
		Source: domain.SourceInfo{
			URL:        "https://en.wikipedia.org/wiki/Albert_Einstein",
			Title:      "Albert Einstein",
			WordCount:  6,
			ChunkCount: 1,
		},
		Flashcards: domain.CardSet{
			ContentCards: []domain.Flashcard{{Question: "Q1?", Answer: "A1."}},
			SummaryCards: []domain.Flashcard{{Question: "Q2?", Answer: "A2."}},
			TotalCards:   2,
		},
		Processing: domain.Processing{TimeSeconds: 1.5, CardsPerMinute: 80, Timestamp: 1700000000},
		Metadata:   domain.Metadata{KeyConcepts: []string{"Albert"}, ChunksProcessed: 1, ModelUsed: "stub"},
	}
}

func TestFileSinkWritesDeckJSON(t *testing.T) {
	dir := t.TempDir()
	sinkRaw, err := newFileSink(context.Background(), SinkConfig{
		ID:   "local",
		Type: TypeFile,
		File: &FileSinkConfig{Directory: dir},
	}, nil)
	if err != nil {
		t.Fatalf("newFileSink: %v", err)
	}
	sink := sinkRaw.(*fileSink)
	sink.now = func() time.Time { return time.Unix(1700000000, 0) }

	if err := sink.Deliver(context.Background(), NewDeckEvent("wikipedia-en", "Wikipedia", sampleDeck())); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	path := filepath.Join(dir, "flashcards_Albert Einstein_1700000000.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read deck file: %v", err)
	}

	var deck domain.Deck
	if err := json.Unmarshal(raw, &deck); err != nil {
		t.Fatalf("decode deck file: %v", err)
	}
	if deck.Source.Title != "Albert Einstein" || deck.Flashcards.TotalCards != 2 {
		t.Fatalf("deck = %#v", deck)
	}
	if deck.Flashcards.ContentCards[0].Question != "Q1?" {
		t.Fatalf("content card = %#v", deck.Flashcards.ContentCards[0])
	}
}

func TestFileSinkCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "decks")
	if _, err := newFileSink(context.Background(), SinkConfig{
		ID:   "local",
		Type: TypeFile,
		File: &FileSinkConfig{Directory: dir},
	}, nil); err != nil {
		t.Fatalf("newFileSink: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("directory not created: %v", err)
	}
}

func TestSafeTitle(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Albert Einstein", "Albert Einstein"},
		{"Go (programming language)", "Go programming language"},
		{"C++/CLI", "CCLI"},
		{"name_with-dash_1", "name_with-dash_1"},
		{"trailing )  ", "trailing"},
	}
	for _, tc := range cases {
		if got := safeTitle(tc.in); got != tc.want {
			t.Fatalf("safeTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
