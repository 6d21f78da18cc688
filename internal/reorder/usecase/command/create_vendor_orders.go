package command

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	inventory "github.com/tair/parts-replenishment/internal/inventory/domain"
	orderdomain "github.com/tair/parts-replenishment/internal/order/domain"
	ordercmd "github.com/tair/parts-replenishment/internal/order/usecase/command"
	"github.com/tair/parts-replenishment/internal/reorder/domain"
	"github.com/tair/parts-replenishment/pkg/logger"
	"github.com/tair/parts-replenishment/pkg/tracing"
)

// VendorOrdersResult lists the orders created, one per vendor
type VendorOrdersResult struct {
	Count  int                  `json:"count"`
	Orders []*orderdomain.Order `json:"orders"`
}

// CreateVendorOrdersHandler builds consolidated orders straight from current low stock
type CreateVendorOrdersHandler struct {
	stock  domain.StockReader
	orders OrderCreator
}

// NewCreateVendorOrdersHandler creates a new create vendor orders handler
func NewCreateVendorOrdersHandler(stock domain.StockReader, orders OrderCreator) *CreateVendorOrdersHandler {
	return &CreateVendorOrdersHandler{stock: stock, orders: orders}
}

// Handle groups low-stock parts with a vendor by vendor, optionally restricted to vendorIDs,
// and creates one PENDING auto-generated order per vendor. Each order commits on its own.
func (h *CreateVendorOrdersHandler) Handle(ctx context.Context, vendorIDs []uint) (result *VendorOrdersResult, err error) {
	ctx, span := tracer.Start(ctx, "reorder.CreateVendorOrders")
	span.SetAttributes(attribute.Int("reorder.vendor_filter", len(vendorIDs)))
	defer func() { tracing.Finish(span, err) }()

	low, err := h.stock.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[uint]bool, len(vendorIDs))
	for _, id := range vendorIDs {
		wanted[id] = true
	}

	byVendor := make(map[uint][]inventory.Inventory)
	for _, inv := range low {
		if inv.Part == nil || inv.Part.VendorID == nil {
			continue
		}
		vendorID := *inv.Part.VendorID
		if len(wanted) > 0 && !wanted[vendorID] {
			continue
		}
		if inv.ReorderQuantity <= 0 {
			logger.Warn(ctx).Uint("part_id", inv.PartID).Msg("Skipping low-stock part with no reorder quantity")
			continue
		}
		byVendor[vendorID] = append(byVendor[vendorID], inv)
	}

	vendors := make([]uint, 0, len(byVendor))
	for id := range byVendor {
		vendors = append(vendors, id)
	}
	sort.Slice(vendors, func(i, j int) bool { return vendors[i] < vendors[j] })

	result = &VendorOrdersResult{Orders: make([]*orderdomain.Order, 0, len(vendors))}
	for _, vendorID := range vendors {
		lines := byVendor[vendorID]
		cmd := ordercmd.CreateOrderCommand{
			VendorID:        vendorID,
			Notes:           "Auto-generated from low stock report",
			IsAutoGenerated: true,
			InitialStatus:   orderdomain.StatusPending,
		}
		for _, inv := range lines {
			unitPrice := inv.Part.UnitPrice
			cmd.Items = append(cmd.Items, ordercmd.ItemInput{
				PartID:    inv.PartID,
				Quantity:  inv.ReorderQuantity,
				UnitPrice: &unitPrice,
			})
		}

		order, err := h.orders.Handle(ctx, cmd)
		if err != nil {
			return result, fmt.Errorf("create order for vendor %d: %w", vendorID, err)
		}
		result.Orders = append(result.Orders, order)
		result.Count++
	}

	logger.Info(ctx).Int("orders_created", result.Count).Msg("Vendor orders created from low stock")
	return result, nil
}
