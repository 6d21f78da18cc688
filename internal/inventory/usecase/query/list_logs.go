package query

import (
	"context"

	"github.com/tair/parts-replenishment/internal/inventory/domain"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

// ListLogsQuery represents the query to page through a part's audit trail
type ListLogsQuery struct {
	PartID uint
	Limit  int
	Offset int
}

// LogPage is one page of a part's audit trail with the part's total row count
type LogPage struct {
	Data   []domain.Log `json:"data"`
	Total  int64        `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// ListLogsHandler handles list logs query
type ListLogsHandler struct {
	repo domain.InventoryRepository
}

// NewListLogsHandler creates a new list logs handler
func NewListLogsHandler(repo domain.InventoryRepository) *ListLogsHandler {
	return &ListLogsHandler{repo: repo}
}

// Handle returns log rows newest first
func (h *ListLogsHandler) Handle(ctx context.Context, query ListLogsQuery) (*LogPage, error) {
	if query.Limit <= 0 {
		query.Limit = defaultLogLimit
	}
	if query.Limit > maxLogLimit {
		query.Limit = maxLogLimit
	}
	if query.Offset < 0 {
		query.Offset = 0
	}
	if _, err := h.repo.FindByPartID(ctx, query.PartID); err != nil {
		return nil, err
	}

	logs, err := h.repo.FindLogs(ctx, query.PartID, query.Limit, query.Offset)
	if err != nil {
		return nil, err
	}
	total, err := h.repo.CountLogs(ctx, query.PartID)
	if err != nil {
		return nil, err
	}
	return &LogPage{Data: logs, Total: total, Limit: query.Limit, Offset: query.Offset}, nil
}
