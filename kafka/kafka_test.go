package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherSendsStampedEvent(t *testing.T) {
	producer := mocks.NewSyncProducer(t, producerConfig())
	var sent *sarama.ProducerMessage
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		sent = msg
		return nil
	})
	publisher := NewPublisherWithProducer(producer, nil)

	event := &OrderStatusChangedEvent{OrderID: 3, OrderNumber: "PO2026100003", From: "DRAFT", To: "PENDING"}
	require.NoError(t, publisher.Publish(context.Background(), event))
	require.NoError(t, publisher.Close())

	require.NotNil(t, sent)
	assert.Equal(t, TopicOrders, sent.Topic)
	key, _ := sent.Key.Encode()
	assert.Equal(t, "PO2026100003", string(key))

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, EventTypeOrderStatusChanged, event.Type)
	assert.False(t, event.Timestamp.IsZero())

	body, _ := sent.Value.Encode()
	var decoded OrderStatusChangedEvent
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "PENDING", decoded.To)

	headers := map[string]string{}
	for _, h := range sent.Headers {
		headers[string(h.Key)] = string(h.Value)
	}
	assert.Equal(t, EventTypeOrderStatusChanged, headers["event_type"])
	assert.Equal(t, event.EventID, headers["event_id"])
}

func TestPublisherSurfacesSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, producerConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	publisher := NewPublisherWithProducer(producer, nil)

	err := publisher.Publish(context.Background(), &OrderReceivedEvent{OrderNumber: "PO2026100001"})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func TestConsumerDispatchesTypedHandler(t *testing.T) {
	c := newConsumer("replenishment", []string{TopicPartsConsumed})

	var got PartConsumedEvent
	c.RegisterHandler(EventTypePartConsumed, PartConsumedHandler(func(_ context.Context, e PartConsumedEvent) error {
		got = e
		return nil
	}))

	payload := []byte(`{"event_id":"evt_1","part_id":9,"quantity":4,"reason":"line 2","source":"mes"}`)
	require.NoError(t, c.dispatch(context.Background(), EventTypePartConsumed, payload))
	assert.Equal(t, uint(9), got.PartID)
	assert.Equal(t, 4, got.Quantity)
	assert.Equal(t, "mes", got.Source)

	err := c.dispatch(context.Background(), "unknown.type", payload)
	assert.True(t, errors.Is(err, ErrNoHandler))

	err = c.dispatch(context.Background(), EventTypePartConsumed, []byte("{"))
	assert.ErrorIs(t, err, ErrMalformedEvent)
}

type recordingSession struct {
	sarama.ConsumerGroupSession
	ctx    context.Context
	marked []int64
}

func (s *recordingSession) Context() context.Context { return s.ctx }

func (s *recordingSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

type queuedClaim struct {
	sarama.ConsumerGroupClaim
	messages chan *sarama.ConsumerMessage
}

func (c *queuedClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func claimOf(messages ...*sarama.ConsumerMessage) *queuedClaim {
	ch := make(chan *sarama.ConsumerMessage, len(messages))
	for _, m := range messages {
		ch <- m
	}
	close(ch)
	return &queuedClaim{messages: ch}
}

func consumedMessage(offset int64, eventType, payload string) *sarama.ConsumerMessage {
	msg := &sarama.ConsumerMessage{Topic: TopicPartsConsumed, Offset: offset, Value: []byte(payload)}
	if eventType != "" {
		msg.Headers = []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(eventType)}}
	}
	return msg
}

func newTestConsumer(fn func(ctx context.Context, e PartConsumedEvent) error) *Consumer {
	c := newConsumer("replenishment", []string{TopicPartsConsumed})
	c.retryBackoff = time.Millisecond
	c.RegisterHandler(EventTypePartConsumed, PartConsumedHandler(fn))
	return c
}

func TestConsumeClaimLeavesFailedEventUnmarked(t *testing.T) {
	calls := map[uint]int{}
	c := newTestConsumer(func(_ context.Context, e PartConsumedEvent) error {
		calls[e.PartID]++
		if e.PartID == 2 {
			return errors.New("database is locked")
		}
		return nil
	})
	session := &recordingSession{ctx: context.Background()}
	aborted := false

	err := (&consumerGroupHandler{consumer: c, abort: func() { aborted = true }}).ConsumeClaim(session, claimOf(
		consumedMessage(10, EventTypePartConsumed, `{"part_id":1,"quantity":1}`),
		consumedMessage(11, EventTypePartConsumed, `{"part_id":2,"quantity":1}`),
		consumedMessage(12, EventTypePartConsumed, `{"part_id":3,"quantity":1}`),
	))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.Equal(t, []int64{10}, session.marked)
	assert.True(t, aborted, "session is aborted so the event is redelivered")
	assert.Equal(t, defaultMaxAttempts, calls[2])
	assert.Zero(t, calls[3])
}

func TestConsumeClaimRetriesTransientFailure(t *testing.T) {
	attempts := 0
	c := newTestConsumer(func(context.Context, PartConsumedEvent) error {
		attempts++
		if attempts == 1 {
			return errors.New("connection reset")
		}
		return nil
	})
	session := &recordingSession{ctx: context.Background()}

	err := (&consumerGroupHandler{consumer: c}).ConsumeClaim(session,
		claimOf(consumedMessage(5, EventTypePartConsumed, `{"part_id":1,"quantity":1}`)))

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, []int64{5}, session.marked)
}

func TestConsumeClaimMarksPoisonMessages(t *testing.T) {
	c := newTestConsumer(func(context.Context, PartConsumedEvent) error {
		t.Fatal("handler must not run")
		return nil
	})
	session := &recordingSession{ctx: context.Background()}

	err := (&consumerGroupHandler{consumer: c}).ConsumeClaim(session, claimOf(
		consumedMessage(1, EventTypePartConsumed, `{`),
		consumedMessage(2, "unknown.type", `{}`),
		consumedMessage(3, "", `{}`),
	))

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, session.marked)
}

func TestMemoryPublisherRecords(t *testing.T) {
	var m MemoryPublisher
	require.NoError(t, m.Publish(context.Background(), &ReorderAlertCreatedEvent{AlertID: 1, PartNumber: "P-1"}))

	events := m.Events()
	require.Len(t, events, 1)
	alert := events[0].(*ReorderAlertCreatedEvent)
	assert.Equal(t, EventTypeReorderAlertCreated, alert.Type)
	assert.NotEmpty(t, alert.EventID)
}

func producerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	return config
}
