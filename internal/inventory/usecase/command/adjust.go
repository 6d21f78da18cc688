package command

import (
	"context"
	"strings"
	"time"

	"github.com/tair/parts-replenishment/internal/inventory/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
)

// AdjustCommand represents a signed manual correction
type AdjustCommand struct {
	PartID      uint
	Delta       int
	Reason      string
	PerformedBy string
}

// AdjustHandler handles adjust command
type AdjustHandler struct {
	ledger ledger
}

// NewAdjustHandler creates a new adjust handler
func NewAdjustHandler(repo domain.InventoryRepository, tx *database.Transactor) *AdjustHandler {
	return &AdjustHandler{ledger: newLedger(repo, tx)}
}

// Handle executes the adjust command
func (h *AdjustHandler) Handle(ctx context.Context, cmd AdjustCommand) (*domain.Mutation, error) {
	if strings.TrimSpace(cmd.Reason) == "" {
		return nil, apperror.Validation("reason is required")
	}

	return h.ledger.apply(ctx, "adjust", cmd.PartID, func(inv *domain.Inventory, _ time.Time) (entry, error) {
		if inv.QuantityOnHand+cmd.Delta < 0 {
			return entry{}, apperror.Validation("cannot adjust below zero: on hand %d, change %d", inv.QuantityOnHand, cmd.Delta)
		}
		return entry{
			changeType:  domain.ChangeAdjust,
			delta:       cmd.Delta,
			reason:      cmd.Reason,
			performedBy: cmd.PerformedBy,
		}, nil
	})
}
