package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/parts-replenishment/internal/inventory/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
)

// CountCommand records a physical count
type CountCommand struct {
	PartID         uint
	ActualQuantity int
	PerformedBy    string
}

// CountHandler handles count command
type CountHandler struct {
	ledger ledger
}

// NewCountHandler creates a new count handler
func NewCountHandler(repo domain.InventoryRepository, tx *database.Transactor) *CountHandler {
	return &CountHandler{ledger: newLedger(repo, tx)}
}

// Handle sets on-hand to the counted quantity and logs the variance, even when it is zero
func (h *CountHandler) Handle(ctx context.Context, cmd CountCommand) (*domain.Mutation, error) {
	if cmd.ActualQuantity < 0 {
		return nil, apperror.Validation("actual quantity must be a non-negative integer")
	}

	result, err := h.ledger.apply(ctx, "count", cmd.PartID, func(inv *domain.Inventory, now time.Time) (entry, error) {
		inv.LastCountDate = &now
		variance := cmd.ActualQuantity - inv.QuantityOnHand
		return entry{
			changeType:  domain.ChangeAdjust,
			delta:       variance,
			reason:      fmt.Sprintf("Physical count adjustment (variance: %d)", variance),
			performedBy: cmd.PerformedBy,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	variance := result.Log.QuantityChange
	result.Variance = &variance
	return result, nil
}
