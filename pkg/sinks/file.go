package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// fileSink persists each deck as an indented JSON document on local disk.
type fileSink struct {
	id        string
	typ       string
	directory string
	log       Logger
	now       func() time.Time
}

func newFileSink(_ context.Context, cfg SinkConfig, log Logger) (Sink, error) {
	if cfg.File == nil {
		return nil, fmt.Errorf("sink %q missing file configuration", cfg.ID)
	}

	if err := os.MkdirAll(cfg.File.Directory, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	return &fileSink{
		id:        cfg.ID,
		typ:       TypeFile,
		directory: cfg.File.Directory,
		log:       ensureLogger(log),
		now:       time.Now,
	}, nil
}

func (f *fileSink) ID() string   { return f.id }
func (f *fileSink) Type() string { return f.typ }

// Deliver writes the deck JSON to flashcards_<title>_<unix>.json.
func (f *fileSink) Deliver(_ context.Context, evt DeckEvent) error {
	payload, err := json.MarshalIndent(evt.Deck, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal deck: %w", err)
	}

	name := fmt.Sprintf("flashcards_%s_%d.json", safeTitle(evt.Deck.Source.Title), f.now().Unix())
	path := filepath.Join(f.directory, name)

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write deck file: %w", err)
	}

	f.log.InfoObj("deck persisted", "file_sink_result", map[string]any{
		"sink_id": f.id,
		"path":    path,
		"cards":   evt.Deck.Flashcards.TotalCards,
	})
	return nil
}

// safeTitle keeps letters, digits, spaces, dashes and underscores, trimming
// trailing whitespace, so titles make portable filenames.
func safeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}
