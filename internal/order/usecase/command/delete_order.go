package command

import (
	"context"

	"github.com/tair/parts-replenishment/internal/order/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
	"github.com/tair/parts-replenishment/pkg/logger"
)

// DeleteOrderHandler handles delete order command
type DeleteOrderHandler struct {
	repo domain.OrderRepository
	tx   *database.Transactor
}

// NewDeleteOrderHandler creates a new delete order handler
func NewDeleteOrderHandler(repo domain.OrderRepository, tx *database.Transactor) *DeleteOrderHandler {
	return &DeleteOrderHandler{repo: repo, tx: tx}
}

// Handle deletes a DRAFT order and its items
func (h *DeleteOrderHandler) Handle(ctx context.Context, orderID uint) error {
	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := h.repo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status != domain.StatusDraft {
			return apperror.State("can only delete draft orders, order %s is %s", order.OrderNumber, order.Status)
		}
		return h.repo.Delete(ctx, orderID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx).Uint("order_id", orderID).Msg("Order deleted")
	return nil
}
