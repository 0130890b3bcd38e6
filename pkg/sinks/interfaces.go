package sinks

import "context"

// Sink delivers finished decks to a downstream destination (file, HTTP,
// queue, topic).
type Sink interface {
	ID() string
	Type() string
	Deliver(ctx context.Context, evt DeckEvent) error
}
