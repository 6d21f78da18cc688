package query

import "github.com/tair/parts-replenishment/internal/order/domain"

// Queries bundles the read-side handlers
type Queries struct {
	Get     *GetOrderHandler
	List    *ListOrdersHandler
	Summary *SummaryHandler
}

// NewQueries creates every order query handler
func NewQueries(repo domain.OrderRepository, logs domain.ReceiptLogReader) *Queries {
	return &Queries{
		Get:     NewGetOrderHandler(repo, logs),
		List:    NewListOrdersHandler(repo),
		Summary: NewSummaryHandler(repo),
	}
}
