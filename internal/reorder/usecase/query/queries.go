package query

import "github.com/tair/parts-replenishment/internal/reorder/domain"

// Queries bundles the reorder read side
type Queries struct {
	List        *ListAlertsHandler
	Pending     *PendingAlertsHandler
	Suggestions *SuggestionsHandler
}

func NewQueries(alerts domain.AlertRepository, stock domain.StockReader) *Queries {
	return &Queries{
		List:        NewListAlertsHandler(alerts),
		Pending:     NewPendingAlertsHandler(alerts),
		Suggestions: NewSuggestionsHandler(stock),
	}
}
