package command

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tair/parts-replenishment/internal/reorder/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
	"github.com/tair/parts-replenishment/pkg/logger"
	"github.com/tair/parts-replenishment/pkg/metrics"
	"github.com/tair/parts-replenishment/pkg/tracing"
)

// DismissAlertHandler closes a pending alert without ordering
type DismissAlertHandler struct {
	alerts domain.AlertRepository
	tx     *database.Transactor
	now    func() time.Time
}

// NewDismissAlertHandler creates a new dismiss alert handler
func NewDismissAlertHandler(alerts domain.AlertRepository, tx *database.Transactor) *DismissAlertHandler {
	return &DismissAlertHandler{
		alerts: alerts,
		tx:     tx,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (h *DismissAlertHandler) Handle(ctx context.Context, alertID uint) (alert *domain.Alert, err error) {
	ctx, span := tracer.Start(ctx, "reorder.DismissAlert")
	span.SetAttributes(attribute.Int("reorder.alert_id", int(alertID)))
	defer func() { tracing.Finish(span, err) }()

	err = h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		alert, err = h.alerts.FindByIDForUpdate(ctx, alertID)
		if err != nil {
			return err
		}
		if alert.Status != domain.AlertPending {
			return apperror.State("alert %d is not pending (status %s)", alert.ID, alert.Status)
		}
		now := h.now()
		alert.Status = domain.AlertDismissed
		alert.ProcessedAt = &now
		return h.alerts.Update(ctx, alert)
	})
	if err != nil {
		return nil, err
	}

	metrics.AlertsProcessedTotal.WithLabelValues("dismissed").Inc()
	logger.Info(ctx).Uint("alert_id", alert.ID).Uint("part_id", alert.PartID).Msg("Reorder alert dismissed")
	return alert, nil
}
