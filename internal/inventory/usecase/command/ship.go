package command

import (
	"context"
	"time"

	"github.com/tair/parts-replenishment/internal/inventory/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
)

const defaultShipReason = "Shipped/consumed"

// ShipCommand represents parts leaving stock
type ShipCommand struct {
	PartID      uint
	Quantity    int
	Reason      string
	PerformedBy string
}

// ShipHandler handles ship command
type ShipHandler struct {
	ledger ledger
}

// NewShipHandler creates a new ship handler
func NewShipHandler(repo domain.InventoryRepository, tx *database.Transactor) *ShipHandler {
	return &ShipHandler{ledger: newLedger(repo, tx)}
}

// Handle executes the ship command
func (h *ShipHandler) Handle(ctx context.Context, cmd ShipCommand) (*domain.Mutation, error) {
	if cmd.Quantity <= 0 {
		return nil, apperror.Validation("quantity must be a positive integer")
	}
	if cmd.Reason == "" {
		cmd.Reason = defaultShipReason
	}

	return h.ledger.apply(ctx, "ship", cmd.PartID, func(inv *domain.Inventory, _ time.Time) (entry, error) {
		if inv.QuantityOnHand < cmd.Quantity {
			return entry{}, apperror.Validation("insufficient inventory: on hand %d, requested %d", inv.QuantityOnHand, cmd.Quantity)
		}
		return entry{
			changeType:  domain.ChangeShip,
			delta:       -cmd.Quantity,
			reason:      cmd.Reason,
			performedBy: cmd.PerformedBy,
		}, nil
	})
}
