package query

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/parts-replenishment/internal/order/domain"
	"github.com/tair/parts-replenishment/pkg/money"
)

// Summary aggregates order counts and values
type Summary struct {
	Total          int                   `json:"total"`
	ByStatus       map[domain.Status]int `json:"by_status"`
	TotalValue     decimal.Decimal       `json:"total_value"`
	ThisMonth      int                   `json:"this_month"`
	ThisMonthValue decimal.Decimal       `json:"this_month_value"`
}

// SummaryHandler handles orders summary query
type SummaryHandler struct {
	repo domain.OrderRepository
	now  func() time.Time
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(repo domain.OrderRepository) *SummaryHandler {
	return &SummaryHandler{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Handle executes the summary query; the month boundary is UTC
func (h *SummaryHandler) Handle(ctx context.Context) (*Summary, error) {
	orders, err := h.repo.FindAllHeaders(ctx)
	if err != nil {
		return nil, err
	}

	now := h.now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	s := &Summary{
		Total:          len(orders),
		ByStatus:       make(map[domain.Status]int),
		TotalValue:     decimal.Zero,
		ThisMonthValue: decimal.Zero,
	}
	for _, o := range orders {
		s.ByStatus[o.Status]++
		s.TotalValue = s.TotalValue.Add(o.Total)
		if !o.CreatedAt.Before(startOfMonth) {
			s.ThisMonth++
			s.ThisMonthValue = s.ThisMonthValue.Add(o.Total)
		}
	}
	s.TotalValue = money.Round(s.TotalValue)
	s.ThisMonthValue = money.Round(s.ThisMonthValue)
	return s, nil
}
