package command

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	catalogrepo "github.com/tair/parts-replenishment/internal/catalog/repository"
	inventoryrepo "github.com/tair/parts-replenishment/internal/inventory/repository"
	orderdomain "github.com/tair/parts-replenishment/internal/order/domain"
	orderrepo "github.com/tair/parts-replenishment/internal/order/repository"
	ordercmd "github.com/tair/parts-replenishment/internal/order/usecase/command"
	"github.com/tair/parts-replenishment/internal/reorder/domain"
	"github.com/tair/parts-replenishment/internal/reorder/repository"
	"github.com/tair/parts-replenishment/internal/schema/schematest"
	"github.com/tair/parts-replenishment/kafka"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
)

type reorderFixture struct {
	db        *gorm.DB
	alerts    domain.AlertRepository
	orders    orderdomain.OrderRepository
	processor *Processor
	events    *kafka.MemoryPublisher
	vendorID  uint
	// P is low with a vendor, Q is low without one
	partP uint
	partQ uint
}

func newReorderFixture(t *testing.T) *reorderFixture {
	t.Helper()
	db := schematest.NewDB(t)
	vendor := schematest.SeedVendor(t, db, "V")
	p, _ := schematest.SeedPart(t, db, schematest.PartSpec{PartNumber: "P", UnitPrice: "2.00", VendorID: &vendor.ID, OnHand: 5, ReorderPoint: 10, ReorderQty: 20})
	q, _ := schematest.SeedPart(t, db, schematest.PartSpec{PartNumber: "Q", UnitPrice: "1.50", OnHand: 1, ReorderPoint: 5, ReorderQty: 10})
	schematest.SeedPart(t, db, schematest.PartSpec{PartNumber: "HEALTHY", VendorID: &vendor.ID, OnHand: 50, ReorderPoint: 10, ReorderQty: 20})
	schematest.SeedPart(t, db, schematest.PartSpec{PartNumber: "RETIRED", VendorID: &vendor.ID, Inactive: true, OnHand: 0, ReorderPoint: 10, ReorderQty: 20})

	tx := database.NewTransactor(db)
	alerts := repository.NewGormAlertRepository(db)
	orders := orderrepo.NewGormOrderRepository(db)
	catalog := catalogrepo.NewGormCatalogRepository(db)
	create := ordercmd.NewCreateOrderHandler(orders, catalog, tx).
		WithClock(func() time.Time { return time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC) })
	events := &kafka.MemoryPublisher{}

	processor := NewProcessor(alerts, inventoryrepo.NewGormInventoryRepository(db), catalog, create, tx, events)
	return &reorderFixture{
		db:        db,
		alerts:    alerts,
		orders:    orders,
		processor: processor,
		events:    events,
		vendorID:  vendor.ID,
		partP:     p.ID,
		partQ:     q.ID,
	}
}

func (f *reorderFixture) scan(t *testing.T) []domain.Alert {
	t.Helper()
	created, err := f.processor.Scan.Handle(context.Background(), TriggerManual)
	require.NoError(t, err)
	return created
}

func (f *reorderFixture) alertFor(t *testing.T, alerts []domain.Alert, partID uint) domain.Alert {
	t.Helper()
	for _, alert := range alerts {
		if alert.PartID == partID {
			return alert
		}
	}
	t.Fatalf("no alert for part %d", partID)
	return domain.Alert{}
}

func TestScanIsIdempotent(t *testing.T) {
	f := newReorderFixture(t)

	first := f.scan(t)
	require.Len(t, first, 2, "only active low-stock parts are alerted")
	assert.Len(t, f.events.Events(), 2)

	second := f.scan(t)
	assert.Empty(t, second)
	assert.Len(t, f.events.Events(), 2)

	pending, err := f.alerts.FindPending(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

// skipCheck pretends no alert is pending so inserts race the unique index
type skipCheck struct {
	domain.AlertRepository
}

func (skipCheck) HasPending(context.Context, uint) (bool, error) { return false, nil }

func TestScanTreatsDuplicatePendingAsAlerted(t *testing.T) {
	f := newReorderFixture(t)
	f.scan(t)

	racing := NewScanHandler(skipCheck{f.alerts}, inventoryrepo.NewGormInventoryRepository(f.db), kafka.NopPublisher{})
	created, err := racing.Handle(context.Background(), TriggerSchedule)
	require.NoError(t, err)
	assert.Empty(t, created)

	var count int64
	require.NoError(t, f.db.Model(&domain.Alert{}).Where("status = ?", domain.AlertPending).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestScanSnapshotsAndProcessAlertCreatesOrder(t *testing.T) {
	f := newReorderFixture(t)
	ctx := context.Background()

	alert := f.alertFor(t, f.scan(t), f.partP)
	assert.Equal(t, 5, alert.CurrentQty)
	assert.Equal(t, 10, alert.ReorderPoint)
	assert.Equal(t, 20, alert.ReorderQty)
	require.NotNil(t, alert.VendorID)
	assert.Equal(t, f.vendorID, *alert.VendorID)
	assert.Equal(t, "Vendor V", alert.VendorName)
	assert.Equal(t, domain.AlertPending, alert.Status)

	result, err := f.processor.Process.Handle(ctx, alert.ID)
	require.NoError(t, err)

	order := result.Order
	assert.Equal(t, orderdomain.StatusPending, order.Status)
	assert.True(t, order.IsAutoGenerated)
	assert.Equal(t, f.vendorID, order.VendorID)
	assert.Contains(t, order.Notes, "reorder alert #")
	require.Len(t, order.Items, 1)
	assert.Equal(t, f.partP, order.Items[0].PartID)
	assert.Equal(t, 20, order.Items[0].Quantity)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("2.00")))
	assert.True(t, order.Items[0].TotalPrice.Equal(decimal.RequireFromString("40.00")))
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("40.00")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("40.00")))

	stored, err := f.alerts.FindByID(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertOrdered, stored.Status)
	require.NotNil(t, stored.OrderID)
	assert.Equal(t, order.ID, *stored.OrderID)
	assert.NotNil(t, stored.ProcessedAt)

	_, err = f.processor.Process.Handle(ctx, alert.ID)
	assert.True(t, apperror.IsState(err), "processing twice must fail: %v", err)
}

func TestProcessAlertFailures(t *testing.T) {
	f := newReorderFixture(t)
	ctx := context.Background()
	vendorless := f.alertFor(t, f.scan(t), f.partQ)

	_, err := f.processor.Process.Handle(ctx, vendorless.ID)
	assert.True(t, apperror.IsState(err))
	assert.Contains(t, err.Error(), "no vendor assigned")

	stored, err := f.alerts.FindByID(ctx, vendorless.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertPending, stored.Status)

	_, err = f.processor.Process.Handle(ctx, 9999)
	assert.True(t, apperror.IsNotFound(err))

	_, total, err := f.orders.List(ctx, orderdomain.ListFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestProcessAllReportsPerAlert(t *testing.T) {
	f := newReorderFixture(t)
	ctx := context.Background()
	f.scan(t)

	result, err := f.processor.ProcessAll.Handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Results, 2)

	for _, outcome := range result.Results {
		if outcome.PartNumber == "Q" {
			assert.False(t, outcome.Success)
			assert.Contains(t, outcome.Error, "no vendor assigned")
		} else {
			assert.True(t, outcome.Success)
			assert.NotNil(t, outcome.Order)
		}
	}

	pending, err := f.alerts.FindPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, f.partQ, pending[0].PartID)
}

func TestDismissAlert(t *testing.T) {
	f := newReorderFixture(t)
	ctx := context.Background()
	alert := f.alertFor(t, f.scan(t), f.partQ)

	dismissed, err := f.processor.Dismiss.Handle(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertDismissed, dismissed.Status)
	assert.NotNil(t, dismissed.ProcessedAt)

	_, err = f.processor.Dismiss.Handle(ctx, alert.ID)
	assert.True(t, apperror.IsState(err))

	_, err = f.processor.Dismiss.Handle(ctx, 9999)
	assert.True(t, apperror.IsNotFound(err))

	// still low, so the next scan alerts again
	again := f.scan(t)
	require.Len(t, again, 1)
	assert.Equal(t, f.partQ, again[0].PartID)
}

func TestCreateVendorOrdersWithoutAlerts(t *testing.T) {
	f := newReorderFixture(t)
	ctx := context.Background()
	other := schematest.SeedVendor(t, f.db, "W")
	schematest.SeedPart(t, f.db, schematest.PartSpec{PartNumber: "T1", UnitPrice: "3.00", VendorID: &other.ID, OnHand: 0, ReorderPoint: 2, ReorderQty: 4})
	schematest.SeedPart(t, f.db, schematest.PartSpec{PartNumber: "T2", UnitPrice: "1.00", VendorID: &other.ID, OnHand: 1, ReorderPoint: 1, ReorderQty: 6})

	result, err := f.processor.VendorOrders.Handle(ctx, []uint{other.ID})
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	order := result.Orders[0]
	assert.Equal(t, other.ID, order.VendorID)
	assert.Equal(t, orderdomain.StatusPending, order.Status)
	assert.True(t, order.IsAutoGenerated)
	assert.Len(t, order.Items, 2)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("18.00")), order.Total.String())

	result, err = f.processor.VendorOrders.Handle(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count, "one order per vendor; vendorless parts are skipped")

	pending, err := f.alerts.FindPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
