package sinks

import (
	"time"

	"github.com/wikideck-hq/wikideck-forge/internal/domain"
)

// DeckEvent is the payload handed to every sink.
type DeckEvent struct {
	SourceID    string      `json:"source_id"`
	SourceName  string      `json:"source_name"`
	Deck        domain.Deck `json:"deck"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// NewDeckEvent constructs a DeckEvent for the given source + deck.
func NewDeckEvent(sourceID, sourceName string, deck domain.Deck) DeckEvent {
	return DeckEvent{
		SourceID:    sourceID,
		SourceName:  sourceName,
		Deck:        deck,
		GeneratedAt: time.Now().UTC(),
	}
}
