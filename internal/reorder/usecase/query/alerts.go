package query

import (
	"context"

	"github.com/tair/parts-replenishment/internal/reorder/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
)

// ListAlertsQuery filters alerts by status, newest first
type ListAlertsQuery struct {
	Status string
	Limit  int
}

// ListAlertsHandler handles list alerts query
type ListAlertsHandler struct {
	alerts domain.AlertRepository
}

func NewListAlertsHandler(alerts domain.AlertRepository) *ListAlertsHandler {
	return &ListAlertsHandler{alerts: alerts}
}

func (h *ListAlertsHandler) Handle(ctx context.Context, query ListAlertsQuery) ([]domain.Alert, error) {
	if query.Limit <= 0 {
		query.Limit = 50
	}
	var status domain.AlertStatus
	if query.Status != "" {
		parsed, ok := domain.ParseAlertStatus(query.Status)
		if !ok {
			return nil, apperror.Validation("invalid alert status %q", query.Status)
		}
		status = parsed
	}
	return h.alerts.List(ctx, status, query.Limit)
}

// PendingAlerts is every alert still awaiting a decision
type PendingAlerts struct {
	Count  int            `json:"count"`
	Alerts []domain.Alert `json:"alerts"`
}

// PendingAlertsHandler handles pending alerts query
type PendingAlertsHandler struct {
	alerts domain.AlertRepository
}

func NewPendingAlertsHandler(alerts domain.AlertRepository) *PendingAlertsHandler {
	return &PendingAlertsHandler{alerts: alerts}
}

func (h *PendingAlertsHandler) Handle(ctx context.Context) (*PendingAlerts, error) {
	alerts, err := h.alerts.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	return &PendingAlerts{Count: len(alerts), Alerts: alerts}, nil
}
