package sinks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-456")}, nil
}

func TestSNSSinkDeliverSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	sink := &snsSink{
		id:       "deck-topic",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:us-east-1:1:forge-decks",
		client:   client,
		log:      noopLogger{},
	}

	err := sink.Deliver(context.Background(), NewDeckEvent("wikipedia-en", "Wikipedia", sampleDeck()))
	if err != nil {
		t.Fatalf("Deliver returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:us-east-1:1:forge-decks" {
		t.Fatalf("TopicArn = %s", got)
	}
	attr, ok := client.input.MessageAttributes["source_id"]
	if !ok || attr.StringValue == nil || aws.ToString(attr.StringValue) != "wikipedia-en" {
		t.Fatalf("source_id attribute missing or wrong: %#v", attr)
	}
	if client.input.Message == nil || !strings.Contains(aws.ToString(client.input.Message), `"total_cards":2`) {
		t.Fatalf("Message missing deck payload: %s", aws.ToString(client.input.Message))
	}
}

func TestSNSSinkDeliverError(t *testing.T) {
	client := &fakeSNSClient{err: errors.New("boom")}
	sink := &snsSink{
		id:       "deck-topic",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:us-east-1:1:forge-decks",
		client:   client,
		log:      noopLogger{},
	}

	if err := sink.Deliver(context.Background(), DeckEvent{SourceID: "wikipedia-en"}); err == nil {
		t.Fatalf("expected error from Deliver")
	}
}
