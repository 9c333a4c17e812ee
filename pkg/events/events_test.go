package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fairway-booking/pkg/utils"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewPublisher_Noop(t *testing.T) {
	p, err := NewPublisher(utils.EventsConfig{Driver: "none"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, Noop{}, p)
	assert.NoError(t, p.Publish(context.Background(), Event{Type: BookingCreated}))
}

func TestNewPublisher_Unknown(t *testing.T) {
	_, err := NewPublisher(utils.EventsConfig{Driver: "nats"}, zap.NewNop())
	assert.Error(t, err)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)

	ev := Event{
		Type:       BookingPaid,
		BookingID:  "b-1",
		UserID:     "u-1",
		Status:     "PAID",
		Amount:     600,
		Currency:   "USD",
		OccurredAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got Event
		require.NoError(t, json.Unmarshal(val, &got))
		assert.Equal(t, ev, got)
		return nil
	})

	p := &KafkaPublisher{producer: producer, topic: "booking-events"}
	require.NoError(t, p.Publish(context.Background(), ev))
	require.NoError(t, p.Close())
}

func TestKafkaPublisher_CancelledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	p := &KafkaPublisher{producer: producer, topic: "booking-events"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Publish(ctx, Event{Type: BookingCreated}), context.Canceled)
	require.NoError(t, p.Close())
}

var _ sarama.SyncProducer = (*mocks.SyncProducer)(nil)
