package query

import (
	"context"

	"github.com/tair/parts-replenishment/internal/inventory/domain"
)

// ListInventoryQuery represents the query to list inventory
type ListInventoryQuery struct {
	LowStockOnly bool
	Location     string
}

// ListInventoryHandler handles list inventory query
type ListInventoryHandler struct {
	repo domain.InventoryRepository
}

// NewListInventoryHandler creates a new list inventory handler
func NewListInventoryHandler(repo domain.InventoryRepository) *ListInventoryHandler {
	return &ListInventoryHandler{repo: repo}
}

// Handle executes the list inventory query
func (h *ListInventoryHandler) Handle(ctx context.Context, query ListInventoryQuery) ([]domain.Inventory, error) {
	return h.repo.FindAll(ctx, domain.ListFilter{
		LowStockOnly: query.LowStockOnly,
		Location:     query.Location,
	})
}

// LowStockItem is an inventory row at or below its reorder point
type LowStockItem struct {
	domain.Inventory
	Shortfall int `json:"shortfall"`
	Available int `json:"available"`
}

// LowStockHandler handles low stock query
type LowStockHandler struct {
	repo domain.InventoryRepository
}

// NewLowStockHandler creates a new low stock handler
func NewLowStockHandler(repo domain.InventoryRepository) *LowStockHandler {
	return &LowStockHandler{repo: repo}
}

// Handle lists every inventory row at or below its reorder point
func (h *LowStockHandler) Handle(ctx context.Context) ([]LowStockItem, error) {
	inventories, err := h.repo.FindAll(ctx, domain.ListFilter{LowStockOnly: true})
	if err != nil {
		return nil, err
	}

	items := make([]LowStockItem, 0, len(inventories))
	for _, inv := range inventories {
		items = append(items, LowStockItem{
			Inventory: inv,
			Shortfall: inv.ReorderPoint - inv.QuantityOnHand,
			Available: inv.Available(),
		})
	}
	return items, nil
}
