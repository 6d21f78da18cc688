package query

import (
	"context"

	"github.com/tair/parts-replenishment/internal/order/domain"
)

// GetOrderHandler handles get order query
type GetOrderHandler struct {
	repo domain.OrderRepository
	logs domain.ReceiptLogReader
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(repo domain.OrderRepository, logs domain.ReceiptLogReader) *GetOrderHandler {
	return &GetOrderHandler{repo: repo, logs: logs}
}

// Handle returns the order with items, vendor and the inventory logs it produced
func (h *GetOrderHandler) Handle(ctx context.Context, orderID uint) (*domain.Detail, error) {
	order, err := h.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	logs, err := h.logs.FindLogsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &domain.Detail{Order: order, InventoryLogs: logs}, nil
}
