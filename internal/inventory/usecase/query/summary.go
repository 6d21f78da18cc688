package query

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/parts-replenishment/internal/inventory/domain"
	"github.com/tair/parts-replenishment/pkg/money"
)

// Summary aggregates stock health across all parts
type Summary struct {
	TotalItems        int             `json:"total_items"`
	TotalValue        decimal.Decimal `json:"total_value"`
	LowStockCount     int             `json:"low_stock_count"`
	OutOfStockCount   int             `json:"out_of_stock_count"`
	HealthyStockCount int             `json:"healthy_stock_count"`
}

// SummaryHandler handles inventory summary query
type SummaryHandler struct {
	repo domain.InventoryRepository
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(repo domain.InventoryRepository) *SummaryHandler {
	return &SummaryHandler{repo: repo}
}

// Handle executes the summary query. Out-of-stock rows also count as low stock.
func (h *SummaryHandler) Handle(ctx context.Context) (*Summary, error) {
	inventories, err := h.repo.FindAll(ctx, domain.ListFilter{})
	if err != nil {
		return nil, err
	}

	s := &Summary{TotalItems: len(inventories), TotalValue: decimal.Zero}
	for _, inv := range inventories {
		if inv.Part != nil {
			s.TotalValue = s.TotalValue.Add(inv.Part.UnitPrice.Mul(decimal.NewFromInt(int64(inv.QuantityOnHand))))
		}
		if inv.IsLow() {
			s.LowStockCount++
		}
		if inv.QuantityOnHand == 0 {
			s.OutOfStockCount++
		}
	}
	s.TotalValue = money.Round(s.TotalValue)
	s.HealthyStockCount = s.TotalItems - s.LowStockCount
	return s, nil
}
