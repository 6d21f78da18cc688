package command

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tair/parts-replenishment/internal/reorder/domain"
	"github.com/tair/parts-replenishment/kafka"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/logger"
	"github.com/tair/parts-replenishment/pkg/metrics"
	"github.com/tair/parts-replenishment/pkg/tracing"
)

var tracer = otel.Tracer("reorder")

// Scan triggers
const (
	TriggerManual   = "manual"
	TriggerSchedule = "schedule"
	TriggerStartup  = "startup"
)

// ScanHandler creates a PENDING alert for every low-stock part that has none
type ScanHandler struct {
	alerts    domain.AlertRepository
	stock     domain.StockReader
	publisher kafka.EventPublisher
}

// NewScanHandler creates a new scan handler
func NewScanHandler(alerts domain.AlertRepository, stock domain.StockReader, publisher kafka.EventPublisher) *ScanHandler {
	return &ScanHandler{alerts: alerts, stock: stock, publisher: publisher}
}

// Handle runs one scan and returns the alerts it created.
// Each insert is its own statement; the partial unique index on pending
// alerts makes a concurrent duplicate fail, which counts as already alerted.
func (h *ScanHandler) Handle(ctx context.Context, trigger string) (created []domain.Alert, err error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "reorder.Scan")
	span.SetAttributes(attribute.String("reorder.trigger", trigger))
	defer func() {
		metrics.ObserveScan(trigger, start, err)
		span.SetAttributes(attribute.Int("reorder.alerts_created", len(created)))
		tracing.Finish(span, err)
	}()

	low, err := h.stock.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}

	created = []domain.Alert{}
	for i := range low {
		inv := &low[i]
		pending, err := h.alerts.HasPending(ctx, inv.PartID)
		if err != nil {
			return created, err
		}
		if pending {
			continue
		}

		alert := domain.NewAlert(inv)
		if err := h.alerts.Create(ctx, alert); err != nil {
			if apperror.IsIntegrity(err) {
				continue
			}
			return created, err
		}
		created = append(created, *alert)
	}

	metrics.AlertsCreatedTotal.Add(float64(len(created)))
	logger.Info(ctx).
		Str("trigger", trigger).
		Int("low_stock", len(low)).
		Int("alerts_created", len(created)).
		Msg("Reorder scan completed")

	for i := range created {
		alert := &created[i]
		event := &kafka.ReorderAlertCreatedEvent{
			AlertID:      alert.ID,
			PartID:       alert.PartID,
			PartNumber:   alert.PartNumber,
			CurrentQty:   alert.CurrentQty,
			ReorderPoint: alert.ReorderPoint,
			ReorderQty:   alert.ReorderQty,
			VendorID:     alert.VendorID,
		}
		if err := h.publisher.Publish(ctx, event); err != nil {
			logger.Warn(ctx).
				Err(err).
				Uint("alert_id", alert.ID).
				Msg("Failed to publish reorder alert event")
		}
	}
	return created, nil
}
