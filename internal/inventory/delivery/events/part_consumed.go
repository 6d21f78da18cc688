// Package events applies inventory events arriving from Kafka to the ledger.
package events

import (
	"context"
	"fmt"

	"github.com/tair/parts-replenishment/internal/inventory/usecase/command"
	"github.com/tair/parts-replenishment/kafka"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/logger"
)

// performedByPrefix marks ledger entries written from consumed events
const performedByPrefix = "kafka:"

// PartConsumedHandler ships stock for every part.consumed event.
// Rejected events (unknown part, insufficient stock) are logged and acknowledged;
// storage failures are returned so the consumer retries and does not commit the offset.
func PartConsumedHandler(ledger *command.Ledger) kafka.EventHandler {
	return kafka.PartConsumedHandler(func(ctx context.Context, event kafka.PartConsumedEvent) error {
		mutation, err := ledger.Ship.Handle(ctx, command.ShipCommand{
			PartID:      event.PartID,
			Quantity:    event.Quantity,
			Reason:      event.Reason,
			PerformedBy: performedByPrefix + event.Source,
		})
		if apperror.KindOf(err) != "" {
			logger.Warn(ctx).
				Err(err).
				Uint("part_id", event.PartID).
				Int("quantity", event.Quantity).
				Str("source", event.Source).
				Msg("Rejected part consumed event")
			return nil
		}
		if err != nil {
			return fmt.Errorf("ship part %d: %w", event.PartID, err)
		}

		logger.Debug(ctx).
			Uint("part_id", event.PartID).
			Int("new_qty", mutation.Inventory.QuantityOnHand).
			Msg("Part consumed event applied")
		return nil
	})
}
