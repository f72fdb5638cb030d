package events_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chris/campaign-escrow/pkg/events"
	"github.com/chris/campaign-escrow/pkg/events/mocks"
	"github.com/chris/campaign-escrow/pkg/models"
)

func TestSQSNotifier(t *testing.T) {
	event := events.New(events.CampaignFinalized, 7, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	event.Status = models.SUCCESS

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.SQSAPI)
		mockClient.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
			decoded, err := events.Decode(aws.ToString(in.MessageBody))
			return err == nil &&
				aws.ToString(in.QueueUrl) == "queue" &&
				decoded.Id == event.Id &&
				decoded.Status == models.SUCCESS &&
				aws.ToString(in.MessageAttributes["event_type"].StringValue) == string(events.CampaignFinalized)
		})).Return(&sqs.SendMessageOutput{}, nil)

		n := events.NewSQSNotifier(mockClient, "queue")
		assert.NoError(t, n.Notify(context.Background(), event))
		mockClient.AssertExpectations(t)
	})

	t.Run("Send Fails", func(t *testing.T) {
		mockClient := new(mocks.SQSAPI)
		mockClient.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		n := events.NewSQSNotifier(mockClient, "queue")
		err := n.Notify(context.Background(), event)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send message to SQS")
		mockClient.AssertExpectations(t)
	})
}

func TestDecode(t *testing.T) {
	_, err := events.Decode("not json")
	assert.Error(t, err)
}

func TestMulti(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")
	ev := events.New(events.CampaignCancelled, 2, time.Now())

	first := mocks.NewNotifier(t)
	first.On("Notify", mock.Anything, ev).Return(errA)
	second := mocks.NewNotifier(t)
	second.On("Notify", mock.Anything, ev).Return(errB)

	err := events.Multi{first, events.NoOp{}, second}.Notify(context.Background(), ev)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)

	assert.NoError(t, events.Multi{events.NoOp{}}.Notify(context.Background(), events.Event{}))
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := &events.LogNotifier{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	require.NoError(t, n.Notify(context.Background(), events.New(events.CampaignCreated, 3, time.Now())))
	assert.Contains(t, buf.String(), `"type":"campaign.created"`)
	assert.Contains(t, buf.String(), `"campaign_id":3`)
}
