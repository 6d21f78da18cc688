package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/parts-replenishment/pkg/logger"
)

var (
	// ErrNoHandler is returned when a message carries an event type nobody registered for
	ErrNoHandler = errors.New("no handler registered")
	// ErrMalformedEvent is returned when a payload cannot be decoded
	ErrMalformedEvent = errors.New("malformed event")
)

const (
	defaultMaxAttempts  = 3
	defaultRetryBackoff = 500 * time.Millisecond
)

// EventHandler handles the raw JSON payload of one event
type EventHandler func(ctx context.Context, payload []byte) error

// PartConsumedHandler adapts a typed handler to an EventHandler
func PartConsumedHandler(fn func(ctx context.Context, event PartConsumedEvent) error) EventHandler {
	return func(ctx context.Context, payload []byte) error {
		var event PartConsumedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedEvent, EventTypePartConsumed, err)
		}
		return fn(ctx, event)
	}
}

// Consumer wraps Kafka consumer
type Consumer struct {
	consumer      sarama.ConsumerGroup
	groupID       string
	topics        []string
	handlers      map[string]EventHandler
	handlersMutex sync.RWMutex
	maxAttempts   int
	retryBackoff  time.Duration
	log           zerolog.Logger
}

// NewConsumer creates a new Kafka consumer
func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_6_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	c := newConsumer(groupID, topics)
	c.consumer = group
	c.log.Info().
		Strs("brokers", brokers).
		Str("group_id", groupID).
		Strs("topics", topics).
		Msg("Kafka consumer initialized")
	return c, nil
}

func newConsumer(groupID string, topics []string) *Consumer {
	return &Consumer{
		groupID:      groupID,
		topics:       topics,
		handlers:     make(map[string]EventHandler),
		maxAttempts:  defaultMaxAttempts,
		retryBackoff: defaultRetryBackoff,
		log:          logger.Component("kafka-consumer"),
	}
}

// RegisterHandler registers an event handler for a specific event type
func (c *Consumer) RegisterHandler(eventType string, handler EventHandler) {
	c.handlersMutex.Lock()
	defer c.handlersMutex.Unlock()
	c.handlers[eventType] = handler
	c.log.Info().
		Str("event_type", eventType).
		Msg("Event handler registered")
}

// Start starts consuming messages until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	go func() {
		for {
			select {
			case <-ctx.Done():
				c.log.Info().Msg("Consumer context cancelled, stopping...")
				return
			default:
			}

			// an unhandled message cancels the session so the group rejoins
			// and redelivers it from the committed offset
			sessionCtx, abort := context.WithCancel(ctx)
			handler := &consumerGroupHandler{consumer: c, abort: abort}
			err := c.consumer.Consume(sessionCtx, c.topics, handler)
			if err != nil {
				c.log.Error().Err(err).Msg("Error from consumer")
			}
			aborted := sessionCtx.Err() != nil && ctx.Err() == nil
			abort()

			if err != nil || aborted {
				select {
				case <-ctx.Done():
				case <-time.After(c.retryBackoff):
				}
			}
		}
	}()

	go func() {
		for err := range c.consumer.Errors() {
			c.log.Error().Err(err).Msg("Consumer error")
		}
	}()

	c.log.Info().
		Strs("topics", c.topics).
		Str("group_id", c.groupID).
		Msg("Kafka consumer started")

	return nil
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	if c.consumer != nil {
		return c.consumer.Close()
	}
	return nil
}

// dispatch routes a payload to the handler registered for eventType
func (c *Consumer) dispatch(ctx context.Context, eventType string, payload []byte) error {
	c.handlersMutex.RLock()
	handler, exists := c.handlers[eventType]
	c.handlersMutex.RUnlock()

	if !exists {
		return fmt.Errorf("%w for %q", ErrNoHandler, eventType)
	}
	return handler(ctx, payload)
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	consumer *Consumer
	abort    context.CancelFunc
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks a message once it is handled or permanently rejected.
// A message that still fails after retries is left unmarked and the session
// is aborted, so the group resumes from it on the next session.
func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		if err := h.handleWithRetry(session.Context(), message); err != nil {
			if h.abort != nil {
				h.abort()
			}
			return fmt.Errorf("event at %s/%d offset %d not handled: %w",
				message.Topic, message.Partition, message.Offset, err)
		}
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *consumerGroupHandler) handleWithRetry(ctx context.Context, message *sarama.ConsumerMessage) error {
	backoff := h.consumer.retryBackoff
	var err error
	for attempt := 1; attempt <= h.consumer.maxAttempts; attempt++ {
		if err = h.handleMessage(ctx, message); err == nil || isPermanent(err) {
			return nil
		}
		if attempt == h.consumer.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}

// isPermanent reports failures that redelivery cannot fix
func isPermanent(err error) bool {
	return errors.Is(err, ErrNoHandler) || errors.Is(err, ErrMalformedEvent)
}

func (h *consumerGroupHandler) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	carrier := propagation.MapCarrier{}
	eventType := ""
	for _, header := range message.Headers {
		key := string(header.Key)
		switch key {
		case "traceparent", "tracestate":
			carrier[key] = string(header.Value)
		case "event_type":
			eventType = string(header.Value)
		}
	}

	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	tracer := otel.Tracer("kafka-consumer")
	ctx, span := tracer.Start(ctx, "kafka.consume."+eventType,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.source", message.Topic),
			attribute.Int("messaging.kafka.partition", int(message.Partition)),
			attribute.Int64("messaging.kafka.offset", message.Offset),
			attribute.String("event.type", eventType),
		),
	)
	defer span.End()

	if eventType == "" {
		span.SetStatus(codes.Error, "Message without event_type header")
		logger.Warn(ctx).Str("topic", message.Topic).Msg("Message without event_type header")
		return fmt.Errorf("%w: missing event_type header", ErrMalformedEvent)
	}

	if err := h.consumer.dispatch(ctx, eventType, message.Value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to handle event")
		event := logger.Error(ctx)
		if isPermanent(err) {
			event = logger.Warn(ctx)
		}
		event.
			Err(err).
			Str("event_type", eventType).
			Str("topic", message.Topic).
			Int64("offset", message.Offset).
			Msg("Failed to handle event")
		return err
	}

	span.SetStatus(codes.Ok, "Event handled successfully")
	logger.Info(ctx).
		Str("event_type", eventType).
		Str("topic", message.Topic).
		Msg("Event handled successfully")
	return nil
}
