package command

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	orderdomain "github.com/tair/parts-replenishment/internal/order/domain"
	ordercmd "github.com/tair/parts-replenishment/internal/order/usecase/command"
	"github.com/tair/parts-replenishment/internal/reorder/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
	"github.com/tair/parts-replenishment/pkg/logger"
	"github.com/tair/parts-replenishment/pkg/metrics"
	"github.com/tair/parts-replenishment/pkg/tracing"
)

// OrderCreator creates purchase orders, joining a transaction already in ctx
type OrderCreator interface {
	Handle(ctx context.Context, cmd ordercmd.CreateOrderCommand) (*orderdomain.Order, error)
}

// ProcessResult is the outcome of converting one alert
type ProcessResult struct {
	Alert *domain.Alert      `json:"alert"`
	Order *orderdomain.Order `json:"order"`
}

// ProcessAlertHandler converts a pending alert into a single-line purchase order
type ProcessAlertHandler struct {
	alerts  domain.AlertRepository
	catalog orderdomain.CatalogReader
	orders  OrderCreator
	tx      *database.Transactor
	now     func() time.Time
}

// NewProcessAlertHandler creates a new process alert handler
func NewProcessAlertHandler(alerts domain.AlertRepository, catalog orderdomain.CatalogReader, orders OrderCreator, tx *database.Transactor) *ProcessAlertHandler {
	return &ProcessAlertHandler{
		alerts:  alerts,
		catalog: catalog,
		orders:  orders,
		tx:      tx,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Handle creates the order and marks the alert ORDERED in one transaction
func (h *ProcessAlertHandler) Handle(ctx context.Context, alertID uint) (result *ProcessResult, err error) {
	ctx, span := tracer.Start(ctx, "reorder.ProcessAlert")
	span.SetAttributes(attribute.Int("reorder.alert_id", int(alertID)))
	defer func() {
		outcome := "ordered"
		if err != nil {
			outcome = "failed"
		}
		metrics.AlertsProcessedTotal.WithLabelValues(outcome).Inc()
		tracing.Finish(span, err)
	}()

	err = h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		alert, err := h.alerts.FindByIDForUpdate(ctx, alertID)
		if err != nil {
			return err
		}
		if alert.Status != domain.AlertPending {
			return apperror.State("alert %d is not pending (status %s)", alert.ID, alert.Status)
		}
		if alert.VendorID == nil {
			return apperror.State("no vendor assigned to this part")
		}
		part, err := h.catalog.FindPart(ctx, alert.PartID)
		if err != nil {
			return err
		}

		unitPrice := part.UnitPrice
		order, err := h.orders.Handle(ctx, ordercmd.CreateOrderCommand{
			VendorID: *alert.VendorID,
			Items: []ordercmd.ItemInput{
				{PartID: part.ID, Quantity: alert.ReorderQty, UnitPrice: &unitPrice},
			},
			Notes:           fmt.Sprintf("Auto-generated from reorder alert #%d", alert.ID),
			IsAutoGenerated: true,
			InitialStatus:   orderdomain.StatusPending,
		})
		if err != nil {
			return err
		}

		now := h.now()
		alert.Status = domain.AlertOrdered
		alert.OrderID = &order.ID
		alert.ProcessedAt = &now
		if err := h.alerts.Update(ctx, alert); err != nil {
			return err
		}
		result = &ProcessResult{Alert: alert, Order: order}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("alert_id", result.Alert.ID).
		Uint("order_id", result.Order.ID).
		Str("order_number", result.Order.OrderNumber).
		Msg("Reorder alert processed")
	return result, nil
}
