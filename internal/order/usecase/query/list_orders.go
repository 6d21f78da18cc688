package query

import (
	"context"

	"github.com/tair/parts-replenishment/internal/order/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
)

// ListOrdersQuery represents the query to page through orders
type ListOrdersQuery struct {
	Status   string
	VendorID uint
	Page     int
	Limit    int
}

// Pagination describes the returned page
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// OrderPage is one page of orders
type OrderPage struct {
	Data       []domain.Order `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// ListOrdersHandler handles list orders query
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the list orders query, newest first
func (h *ListOrdersHandler) Handle(ctx context.Context, query ListOrdersQuery) (*OrderPage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 50
	}
	if query.Limit > 200 {
		query.Limit = 200
	}

	filter := domain.ListFilter{
		VendorID: query.VendorID,
		Limit:    query.Limit,
		Offset:   (query.Page - 1) * query.Limit,
	}
	if query.Status != "" {
		status, ok := domain.ParseStatus(query.Status)
		if !ok {
			return nil, apperror.Validation("invalid status %q", query.Status)
		}
		filter.Status = status
	}

	orders, total, err := h.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	limit := int64(query.Limit)
	return &OrderPage{
		Data: orders,
		Pagination: Pagination{
			Page:  query.Page,
			Limit: query.Limit,
			Total: total,
			Pages: (total + limit - 1) / limit,
		},
	}, nil
}
