package sinks

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
)

func TestPubSubSinkDelivers(t *testing.T) {
	// Use the in-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	defer os.Unsetenv("PUBSUB_EMULATOR_HOST")
	os.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if _, err := client.CreateTopic(ctx, "forge-decks"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	sink, err := newPubSubSink(ctx, SinkConfig{
		ID:   "deck-pubsub",
		Type: TypePubSub,
		PubSub: &PubSubSinkConfig{
			ProjectID: "test-project",
			Topic:     "forge-decks",
		},
	}, nil)
	if err != nil {
		t.Fatalf("newPubSubSink: %v", err)
	}

	evt := NewDeckEvent("wikipedia-en", "Wikipedia", sampleDeck())
	if err := sink.Deliver(ctx, evt); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	msgs := server.Messages()
	if len(msgs) != 1 {
		t.Fatalf("published messages = %d, want 1", len(msgs))
	}
	if got := msgs[0].Attributes["source_id"]; got != "wikipedia-en" {
		t.Fatalf("source_id attribute = %q", got)
	}
}
