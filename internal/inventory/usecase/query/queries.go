package query

import "github.com/tair/parts-replenishment/internal/inventory/domain"

// Queries bundles the read-side handlers
type Queries struct {
	Get      *GetInventoryHandler
	List     *ListInventoryHandler
	LowStock *LowStockHandler
	Summary  *SummaryHandler
	Logs     *ListLogsHandler
}

// NewQueries creates every query handler over one repository
func NewQueries(repo domain.InventoryRepository) *Queries {
	return &Queries{
		Get:      NewGetInventoryHandler(repo),
		List:     NewListInventoryHandler(repo),
		LowStock: NewLowStockHandler(repo),
		Summary:  NewSummaryHandler(repo),
		Logs:     NewListLogsHandler(repo),
	}
}
