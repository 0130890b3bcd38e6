package sinks

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// pubsubSink implements the Sink interface for GCP Pub/Sub topics.
type pubsubSink struct {
	id    string
	typ   string
	topic *pubsub.Topic
	log   Logger
}

// newPubSubSink creates a new Pub/Sub sink with the given configuration.
func newPubSubSink(ctx context.Context, cfg SinkConfig, log Logger) (Sink, error) {
	if cfg.PubSub == nil {
		return nil, fmt.Errorf("sink %q missing pubsub configuration", cfg.ID)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var opts []option.ClientOption
	if cfg.PubSub.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.PubSub.CredentialsFile))
	}

	client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	return &pubsubSink{
		id:    cfg.ID,
		typ:   TypePubSub,
		topic: client.Topic(cfg.PubSub.Topic),
		log:   ensureLogger(log),
	}, nil
}

func (p *pubsubSink) ID() string   { return p.id }
func (p *pubsubSink) Type() string { return p.typ }

// Deliver publishes the event to the configured topic and waits for the server ack.
func (p *pubsubSink) Deliver(ctx context.Context, evt DeckEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"source_id": evt.SourceID,
		},
	})
	if _, err := result.Get(ctx); err != nil {
		p.log.ErrorObj("pubsub sink publish failed", "sink_pubsub_error", map[string]any{
			"sink_id": p.id,
			"error":   err.Error(),
		})
		return fmt.Errorf("publish to pubsub: %w", err)
	}
	p.log.DebugObj("pubsub sink delivered event", "sink_pubsub_delivery", map[string]any{
		"sink_id": p.id,
	})
	return nil
}
