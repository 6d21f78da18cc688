package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/parts-replenishment/internal/inventory/domain"
	"github.com/tair/parts-replenishment/pkg/tracing"
)

var tracer = otel.Tracer("inventory-repository")

// TracingInventoryRepository wraps an InventoryRepository with spans
type TracingInventoryRepository struct {
	next domain.InventoryRepository
}

// NewTracingInventoryRepository creates a new repository with tracing
func NewTracingInventoryRepository(next domain.InventoryRepository) *TracingInventoryRepository {
	return &TracingInventoryRepository{next: next}
}

func partSpan(ctx context.Context, name string, partID uint) (context.Context, trace.Span) {
	return tracer.Start(ctx, "repository."+name,
		trace.WithAttributes(attribute.Int("inventory.part_id", int(partID))),
	)
}

func (r *TracingInventoryRepository) Create(ctx context.Context, inventory *domain.Inventory) (err error) {
	ctx, span := partSpan(ctx, "Create", inventory.PartID)
	defer func() { tracing.Finish(span, err) }()
	return r.next.Create(ctx, inventory)
}

func (r *TracingInventoryRepository) FindByPartID(ctx context.Context, partID uint) (inv *domain.Inventory, err error) {
	ctx, span := partSpan(ctx, "FindByPartID", partID)
	defer func() { tracing.Finish(span, err) }()
	return r.next.FindByPartID(ctx, partID)
}

func (r *TracingInventoryRepository) FindByPartIDForUpdate(ctx context.Context, partID uint) (inv *domain.Inventory, err error) {
	ctx, span := partSpan(ctx, "FindByPartIDForUpdate", partID)
	defer func() { tracing.Finish(span, err) }()
	inv, err = r.next.FindByPartIDForUpdate(ctx, partID)
	if err == nil {
		span.SetAttributes(attribute.Int("inventory.quantity_on_hand", inv.QuantityOnHand))
	}
	return inv, err
}

func (r *TracingInventoryRepository) Update(ctx context.Context, inventory *domain.Inventory) (err error) {
	ctx, span := partSpan(ctx, "Update", inventory.PartID)
	span.SetAttributes(attribute.Int("inventory.quantity_on_hand", inventory.QuantityOnHand))
	defer func() { tracing.Finish(span, err) }()
	return r.next.Update(ctx, inventory)
}

func (r *TracingInventoryRepository) FindAll(ctx context.Context, filter domain.ListFilter) (inventories []domain.Inventory, err error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll",
		trace.WithAttributes(
			attribute.Bool("query.low_stock_only", filter.LowStockOnly),
			attribute.String("query.location", filter.Location),
		),
	)
	defer func() { tracing.Finish(span, err) }()
	inventories, err = r.next.FindAll(ctx, filter)
	span.SetAttributes(attribute.Int("result.count", len(inventories)))
	return inventories, err
}

func (r *TracingInventoryRepository) FindLowStock(ctx context.Context) (inventories []domain.Inventory, err error) {
	ctx, span := tracer.Start(ctx, "repository.FindLowStock")
	defer func() { tracing.Finish(span, err) }()
	inventories, err = r.next.FindLowStock(ctx)
	span.SetAttributes(attribute.Int("result.count", len(inventories)))
	return inventories, err
}

func (r *TracingInventoryRepository) AppendLog(ctx context.Context, log *domain.Log) (err error) {
	ctx, span := partSpan(ctx, "AppendLog", log.PartID)
	span.SetAttributes(
		attribute.String("log.change_type", string(log.ChangeType)),
		attribute.Int("log.quantity_change", log.QuantityChange),
	)
	defer func() { tracing.Finish(span, err) }()
	return r.next.AppendLog(ctx, log)
}

func (r *TracingInventoryRepository) FindLogs(ctx context.Context, partID uint, limit, offset int) (logs []domain.Log, err error) {
	ctx, span := partSpan(ctx, "FindLogs", partID)
	span.SetAttributes(attribute.Int("query.limit", limit), attribute.Int("query.offset", offset))
	defer func() { tracing.Finish(span, err) }()
	return r.next.FindLogs(ctx, partID, limit, offset)
}

func (r *TracingInventoryRepository) FindLogsByOrder(ctx context.Context, orderID uint) (logs []domain.Log, err error) {
	ctx, span := tracer.Start(ctx, "repository.FindLogsByOrder",
		trace.WithAttributes(attribute.Int("order.id", int(orderID))),
	)
	defer func() { tracing.Finish(span, err) }()
	return r.next.FindLogsByOrder(ctx, orderID)
}

func (r *TracingInventoryRepository) CountLogs(ctx context.Context, partID uint) (count int64, err error) {
	ctx, span := partSpan(ctx, "CountLogs", partID)
	defer func() { tracing.Finish(span, err) }()
	return r.next.CountLogs(ctx, partID)
}
