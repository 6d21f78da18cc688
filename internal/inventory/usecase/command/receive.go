package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/parts-replenishment/internal/inventory/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
)

// ReceiveCommand books incoming goods. OrderNumber, when known, is used in the log reason.
type ReceiveCommand struct {
	PartID      uint
	Quantity    int
	OrderID     *uint
	OrderNumber string
	Reason      string
	PerformedBy string
}

// ReceiveHandler handles receive command
type ReceiveHandler struct {
	ledger ledger
}

// NewReceiveHandler creates a new receive handler
func NewReceiveHandler(repo domain.InventoryRepository, tx *database.Transactor) *ReceiveHandler {
	return &ReceiveHandler{ledger: newLedger(repo, tx)}
}

// Handle executes the receive command. It joins a transaction already in ctx.
func (h *ReceiveHandler) Handle(ctx context.Context, cmd ReceiveCommand) (*domain.Mutation, error) {
	if cmd.Quantity <= 0 {
		return nil, apperror.Validation("quantity must be a positive integer")
	}

	return h.ledger.apply(ctx, "receive", cmd.PartID, func(inv *domain.Inventory, now time.Time) (entry, error) {
		inv.LastOrderDate = &now
		return entry{
			changeType:  domain.ChangeReceive,
			delta:       cmd.Quantity,
			reason:      receiveReason(cmd),
			performedBy: cmd.PerformedBy,
			orderID:     cmd.OrderID,
		}, nil
	})
}

func receiveReason(cmd ReceiveCommand) string {
	switch {
	case cmd.Reason != "":
		return cmd.Reason
	case cmd.OrderNumber != "":
		return "Received from order " + cmd.OrderNumber
	case cmd.OrderID != nil:
		return fmt.Sprintf("Received from order #%d", *cmd.OrderID)
	default:
		return "Manual receipt"
	}
}

// ReceiveForOrder receives one order line inside the caller's transaction
func (h *ReceiveHandler) ReceiveForOrder(ctx context.Context, partID uint, quantity int, orderID uint, orderNumber, performedBy string) (int, error) {
	result, err := h.Handle(ctx, ReceiveCommand{
		PartID:      partID,
		Quantity:    quantity,
		OrderID:     &orderID,
		OrderNumber: orderNumber,
		PerformedBy: performedBy,
	})
	if err != nil {
		return 0, err
	}
	return result.Inventory.QuantityOnHand, nil
}
