package command

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tair/parts-replenishment/internal/order/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
	"github.com/tair/parts-replenishment/pkg/logger"
	"github.com/tair/parts-replenishment/pkg/metrics"
	"github.com/tair/parts-replenishment/pkg/money"
	"github.com/tair/parts-replenishment/pkg/tracing"
)

var tracer = otel.Tracer("order-lifecycle")

// maxNumberAttempts bounds retries when a concurrent create took the same order number
const maxNumberAttempts = 5

// ItemInput is one requested line. A nil UnitPrice uses the part's current price.
type ItemInput struct {
	PartID    uint
	Quantity  int
	UnitPrice *decimal.Decimal
	Notes     string
}

// CreateOrderCommand represents the command to create a purchase order
type CreateOrderCommand struct {
	VendorID        uint
	Items           []ItemInput
	Notes           string
	ShippingAddress string
	Tax             decimal.Decimal
	Shipping        decimal.Decimal
	IsAutoGenerated bool
	// InitialStatus is DRAFT unless set; only DRAFT and PENDING are accepted
	InitialStatus domain.Status
}

// CreateOrderHandler handles create order command
type CreateOrderHandler struct {
	repo    domain.OrderRepository
	catalog domain.CatalogReader
	tx      *database.Transactor
	now     func() time.Time
}

// NewCreateOrderHandler creates a new create order handler
func NewCreateOrderHandler(repo domain.OrderRepository, catalog domain.CatalogReader, tx *database.Transactor) *CreateOrderHandler {
	return &CreateOrderHandler{
		repo:    repo,
		catalog: catalog,
		tx:      tx,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used for order number prefixes
func (h *CreateOrderHandler) WithClock(now func() time.Time) *CreateOrderHandler {
	h.now = now
	return h
}

// Handle validates the request, prices every line and persists header and items atomically.
// It joins a transaction already in ctx.
func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (order *domain.Order, err error) {
	ctx, span := tracer.Start(ctx, "order.Create")
	span.SetAttributes(
		attribute.Int("order.vendor_id", int(cmd.VendorID)),
		attribute.Int("order.item_count", len(cmd.Items)),
		attribute.Bool("order.auto_generated", cmd.IsAutoGenerated),
	)
	defer func() { tracing.Finish(span, err) }()

	if err := validateCreate(&cmd); err != nil {
		return nil, err
	}

	err = h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := h.catalog.FindVendor(ctx, cmd.VendorID); err != nil {
			return err
		}

		order = &domain.Order{
			VendorID:        cmd.VendorID,
			Status:          cmd.InitialStatus,
			Notes:           cmd.Notes,
			ShippingAddress: cmd.ShippingAddress,
			IsAutoGenerated: cmd.IsAutoGenerated,
		}
		lineTotals := make([]decimal.Decimal, 0, len(cmd.Items))
		for _, in := range cmd.Items {
			part, err := h.catalog.FindPart(ctx, in.PartID)
			if err != nil {
				return err
			}
			unitPrice := part.UnitPrice
			if in.UnitPrice != nil {
				unitPrice = *in.UnitPrice
			}
			unitPrice = money.Round(unitPrice)
			total := money.LineTotal(in.Quantity, unitPrice)
			lineTotals = append(lineTotals, total)
			order.Items = append(order.Items, domain.Item{
				PartID:     in.PartID,
				Quantity:   in.Quantity,
				UnitPrice:  unitPrice,
				TotalPrice: total,
				Notes:      in.Notes,
			})
		}

		totals := money.ComputeTotals(lineTotals, cmd.Tax, cmd.Shipping)
		order.Subtotal = totals.Subtotal
		order.Tax = totals.Tax
		order.Shipping = totals.Shipping
		order.Total = totals.Total

		if err := h.insertNumbered(ctx, order); err != nil {
			return err
		}

		order, err = h.repo.FindByID(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.WithLabelValues(strconv.FormatBool(order.IsAutoGenerated)).Inc()
	span.SetAttributes(attribute.String("order.number", order.OrderNumber))
	logger.Info(ctx).
		Uint("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Uint("vendor_id", order.VendorID).
		Str("status", string(order.Status)).
		Str("total", order.Total.StringFixed(2)).
		Bool("auto_generated", order.IsAutoGenerated).
		Msg("Order created")
	return order, nil
}

// insertNumbered allocates the next order number and inserts the order inside a savepoint,
// retrying with a fresh number when the unique index reports a collision.
func (h *CreateOrderHandler) insertNumbered(ctx context.Context, order *domain.Order) error {
	prefix := domain.NumberPrefix(h.now())

	var err error
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		err = h.tx.Savepoint(ctx, func(ctx context.Context) error {
			last, err := h.repo.LastNumber(ctx, prefix)
			if err != nil {
				return err
			}
			order.OrderNumber = domain.NextNumber(prefix, last)
			return h.repo.Create(ctx, order)
		})
		if err == nil || !apperror.IsIntegrity(err) {
			return err
		}

		logger.Warn(ctx).
			Str("order_number", order.OrderNumber).
			Int("attempt", attempt).
			Msg("Order number taken, retrying")
		order.ID = 0
		for i := range order.Items {
			order.Items[i].ID = 0
			order.Items[i].OrderID = 0
		}
	}
	return err
}

func validateCreate(cmd *CreateOrderCommand) error {
	if cmd.VendorID == 0 {
		return apperror.Validation("vendor_id is required")
	}
	if len(cmd.Items) == 0 {
		return apperror.Validation("at least one item is required")
	}
	for i, in := range cmd.Items {
		if in.PartID == 0 {
			return apperror.Validation("item %d: part_id is required", i+1)
		}
		if in.Quantity <= 0 {
			return apperror.Validation("item %d: quantity must be a positive integer", i+1)
		}
		if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
			return apperror.Validation("item %d: unit price cannot be negative", i+1)
		}
	}
	if cmd.Tax.IsNegative() || cmd.Shipping.IsNegative() {
		return apperror.Validation("tax and shipping cannot be negative")
	}

	switch cmd.InitialStatus {
	case "":
		cmd.InitialStatus = domain.StatusDraft
	case domain.StatusDraft, domain.StatusPending:
	default:
		return apperror.Validation("orders cannot be created in status %s", cmd.InitialStatus)
	}
	return nil
}
