package query

import (
	"context"

	"github.com/tair/parts-replenishment/internal/inventory/domain"
)

// GetInventoryHandler handles get inventory query
type GetInventoryHandler struct {
	repo domain.InventoryRepository
}

// NewGetInventoryHandler creates a new get inventory handler
func NewGetInventoryHandler(repo domain.InventoryRepository) *GetInventoryHandler {
	return &GetInventoryHandler{repo: repo}
}

// Handle returns the inventory of one part with its part and vendor
func (h *GetInventoryHandler) Handle(ctx context.Context, partID uint) (*domain.Inventory, error) {
	return h.repo.FindByPartID(ctx, partID)
}
