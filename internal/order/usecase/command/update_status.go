package command

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tair/parts-replenishment/internal/order/domain"
	"github.com/tair/parts-replenishment/kafka"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
	"github.com/tair/parts-replenishment/pkg/logger"
	"github.com/tair/parts-replenishment/pkg/metrics"
	"github.com/tair/parts-replenishment/pkg/tracing"
)

// UpdateStatusCommand requests one state machine move
type UpdateStatusCommand struct {
	OrderID        uint
	Status         domain.Status
	TrackingNumber string
	PerformedBy    string
}

// UpdateStatusHandler handles update status command
type UpdateStatusHandler struct {
	repo      domain.OrderRepository
	receiver  domain.StockReceiver
	tx        *database.Transactor
	publisher kafka.EventPublisher
	now       func() time.Time
}

// NewUpdateStatusHandler creates a new update status handler
func NewUpdateStatusHandler(repo domain.OrderRepository, receiver domain.StockReceiver, tx *database.Transactor, publisher kafka.EventPublisher) *UpdateStatusHandler {
	return &UpdateStatusHandler{
		repo:      repo,
		receiver:  receiver,
		tx:        tx,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Handle applies the transition and its side effects in one transaction.
// Receiving books every line into inventory; any failing line rolls the whole move back.
func (h *UpdateStatusHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (order *domain.Order, err error) {
	ctx, span := tracer.Start(ctx, "order.UpdateStatus")
	span.SetAttributes(
		attribute.Int("order.id", int(cmd.OrderID)),
		attribute.String("order.to", string(cmd.Status)),
	)
	defer func() { tracing.Finish(span, err) }()

	if _, ok := domain.ParseStatus(string(cmd.Status)); !ok {
		return nil, apperror.Validation("invalid status %q", cmd.Status)
	}

	var from domain.Status
	var received []kafka.ReceivedLine
	err = h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := h.repo.FindByIDForUpdate(ctx, cmd.OrderID)
		if err != nil {
			return err
		}
		from = current.Status
		if !domain.CanTransition(from, cmd.Status) {
			return apperror.State("cannot transition from %s to %s", from, cmd.Status)
		}

		now := h.now()
		current.Status = cmd.Status
		switch cmd.Status {
		case domain.StatusOrdered:
			current.OrderDate = &now
		case domain.StatusShipped:
			if cmd.TrackingNumber != "" {
				current.TrackingNumber = cmd.TrackingNumber
			}
		case domain.StatusReceived:
			current.ReceivedDate = &now
			received, err = h.receiveLines(ctx, current, cmd.PerformedBy)
			if err != nil {
				return err
			}
		}

		if err := h.repo.UpdateHeader(ctx, current); err != nil {
			return err
		}
		order, err = h.repo.FindByID(ctx, current.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(string(from), string(order.Status)).Inc()
	logger.Info(ctx).
		Uint("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("from", string(from)).
		Str("to", string(order.Status)).
		Msg("Order status updated")

	h.publish(ctx, &kafka.OrderStatusChangedEvent{
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		VendorID:       order.VendorID,
		From:           string(from),
		To:             string(order.Status),
		TrackingNumber: order.TrackingNumber,
	})
	if order.Status == domain.StatusReceived {
		h.publish(ctx, &kafka.OrderReceivedEvent{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			Lines:       received,
		})
	}
	return order, nil
}

func (h *UpdateStatusHandler) receiveLines(ctx context.Context, order *domain.Order, performedBy string) ([]kafka.ReceivedLine, error) {
	lines := make([]kafka.ReceivedLine, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		newQty, err := h.receiver.ReceiveForOrder(ctx, item.PartID, item.Quantity, order.ID, order.OrderNumber, performedBy)
		if err != nil {
			return nil, fmt.Errorf("receive line for part %d: %w", item.PartID, err)
		}
		if err := h.repo.SetQuantityReceived(ctx, item.ID, item.Quantity); err != nil {
			return nil, err
		}
		item.QuantityReceived = item.Quantity
		lines = append(lines, kafka.ReceivedLine{PartID: item.PartID, Quantity: item.Quantity, NewQty: newQty})
	}
	return lines, nil
}

// publish is best-effort; the transition is already committed
func (h *UpdateStatusHandler) publish(ctx context.Context, event kafka.Event) {
	if err := h.publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("event_type", event.EventType()).
			Msg("Failed to publish order event")
	}
}
