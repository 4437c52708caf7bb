package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/samvad-hq/waha-client/pkg/waha"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func TestSQSPublisherSendsAttributes(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{id: "q", queueURL: "https://sqs.local/q", client: client, log: waha.NopLogger{}}

	if err := pub.Publish(context.Background(), NewEvent(EventSessionStopped, "gw", "s1", "")); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://sqs.local/q" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["event_type"]
	if !ok || aws.ToString(attr.StringValue) != EventSessionStopped || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("event_type attribute wrong: %#v", attr)
	}
	if aws.ToString(client.input.MessageAttributes["session"].StringValue) != "s1" {
		t.Fatalf("session attribute missing")
	}
	if !strings.Contains(aws.ToString(client.input.MessageBody), `"session":"s1"`) {
		t.Fatalf("body missing session: %s", aws.ToString(client.input.MessageBody))
	}
}

func TestSQSPublisherWrapsError(t *testing.T) {
	boom := errors.New("throttled")
	pub := &sqsPublisher{id: "q", client: &fakeSQSClient{err: boom}, log: waha.NopLogger{}}

	err := pub.Publish(context.Background(), Event{Type: EventSessionStarted})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestSQSPublisherFIFOGroupsBySession(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{id: "q", queueURL: "https://sqs.local/q.fifo", fifo: true, client: client, log: waha.NopLogger{}}

	evt := NewEvent(EventSessionStarted, "gw", "sales", waha.StatusStarting)
	if err := pub.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := aws.ToString(client.input.MessageGroupId); got != "sales" {
		t.Fatalf("MessageGroupId = %q", got)
	}
	if got := aws.ToString(client.input.MessageDeduplicationId); got == "" || got != evt.ID {
		t.Fatalf("MessageDeduplicationId = %q, want event id %q", got, evt.ID)
	}
}
