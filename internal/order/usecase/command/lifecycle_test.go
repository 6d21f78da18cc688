package command

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	catalogrepo "github.com/tair/parts-replenishment/internal/catalog/repository"
	inventorydomain "github.com/tair/parts-replenishment/internal/inventory/domain"
	inventoryrepo "github.com/tair/parts-replenishment/internal/inventory/repository"
	inventorycmd "github.com/tair/parts-replenishment/internal/inventory/usecase/command"
	"github.com/tair/parts-replenishment/internal/order/domain"
	"github.com/tair/parts-replenishment/internal/order/repository"
	"github.com/tair/parts-replenishment/internal/schema/schematest"
	"github.com/tair/parts-replenishment/kafka"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
)

var october = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)

type orderFixture struct {
	db        *gorm.DB
	repo      domain.OrderRepository
	inventory inventorydomain.InventoryRepository
	lifecycle *Lifecycle
	events    *kafka.MemoryPublisher
	vendorID  uint
	partA     uint
	partB     uint
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db := schematest.NewDB(t)
	vendor := schematest.SeedVendor(t, db, "ACME")
	a, _ := schematest.SeedPart(t, db, schematest.PartSpec{PartNumber: "P-A", UnitPrice: "2.00", VendorID: &vendor.ID, OnHand: 5, ReorderPoint: 10, ReorderQty: 20})
	b, _ := schematest.SeedPart(t, db, schematest.PartSpec{PartNumber: "P-B", UnitPrice: "0.35", VendorID: &vendor.ID, OnHand: 1, ReorderPoint: 4, ReorderQty: 8})

	tx := database.NewTransactor(db)
	repo := repository.NewGormOrderRepository(db)
	inv := inventoryrepo.NewGormInventoryRepository(db)
	events := &kafka.MemoryPublisher{}
	lifecycle := NewLifecycle(repo, catalogrepo.NewGormCatalogRepository(db), inventorycmd.NewReceiveHandler(inv, tx), tx, events)
	lifecycle.Create.WithClock(func() time.Time { return october })

	return &orderFixture{db: db, repo: repo, inventory: inv, lifecycle: lifecycle, events: events, vendorID: vendor.ID, partA: a.ID, partB: b.ID}
}

func (f *orderFixture) createDraft(t *testing.T) *domain.Order {
	t.Helper()
	order, err := f.lifecycle.Create.Handle(context.Background(), CreateOrderCommand{
		VendorID: f.vendorID,
		Items: []ItemInput{
			{PartID: f.partA, Quantity: 20},
			{PartID: f.partB, Quantity: 8},
		},
	})
	require.NoError(t, err)
	return order
}

func (f *orderFixture) forceStatus(t *testing.T, orderID uint, status domain.Status) {
	t.Helper()
	require.NoError(t, f.db.Model(&domain.Order{}).Where("id = ?", orderID).Update("status", status).Error)
}

func (f *orderFixture) onHand(t *testing.T, partID uint) int {
	t.Helper()
	inv, err := f.inventory.FindByPartID(context.Background(), partID)
	require.NoError(t, err)
	return inv.QuantityOnHand
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreateOrderPricesLines(t *testing.T) {
	f := newOrderFixture(t)
	override := dec("1.25")

	order, err := f.lifecycle.Create.Handle(context.Background(), CreateOrderCommand{
		VendorID: f.vendorID,
		Items: []ItemInput{
			{PartID: f.partA, Quantity: 20},
			{PartID: f.partB, Quantity: 3, UnitPrice: &override, Notes: "rush"},
		},
		Tax:      dec("1.00"),
		Shipping: dec("5.50"),
		Notes:    "monthly restock",
	})
	require.NoError(t, err)

	assert.Equal(t, "PO2026100001", order.OrderNumber)
	assert.Equal(t, domain.StatusDraft, order.Status)
	assert.False(t, order.IsAutoGenerated)
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].UnitPrice.Equal(dec("2.00")))
	assert.True(t, order.Items[0].TotalPrice.Equal(dec("40.00")))
	assert.True(t, order.Items[1].UnitPrice.Equal(dec("1.25")))
	assert.True(t, order.Items[1].TotalPrice.Equal(dec("3.75")))
	assert.Equal(t, "rush", order.Items[1].Notes)
	assert.Zero(t, order.Items[0].QuantityReceived)
	assert.True(t, order.Subtotal.Equal(dec("43.75")), order.Subtotal.String())
	assert.True(t, order.Total.Equal(dec("50.25")), order.Total.String())
	require.NotNil(t, order.Vendor)
	assert.Equal(t, "ACME", order.Vendor.Code)
}

func TestCreateOrderNumbersFollowMonthSequence(t *testing.T) {
	f := newOrderFixture(t)

	first := f.createDraft(t)
	second := f.createDraft(t)
	assert.Equal(t, "PO2026100001", first.OrderNumber)
	assert.Equal(t, "PO2026100002", second.OrderNumber)

	f.lifecycle.Create.WithClock(func() time.Time { return october.AddDate(0, 1, 0) })
	november := f.createDraft(t)
	assert.Equal(t, "PO2026110001", november.OrderNumber)
}

func TestCreateOrderNumbersPastFourDigits(t *testing.T) {
	f := newOrderFixture(t)
	last := f.createDraft(t)
	require.NoError(t, f.db.Model(&domain.Order{}).Where("id = ?", last.ID).Update("order_number", "PO2026109999").Error)

	next := f.createDraft(t)
	after := f.createDraft(t)
	assert.Equal(t, "PO20261010000", next.OrderNumber)
	assert.Equal(t, "PO20261010001", after.OrderNumber)
}

// staleNumbers reports no existing orders on its first lookup, like a concurrent creator would
type staleNumbers struct {
	domain.OrderRepository
	calls int
}

func (s *staleNumbers) LastNumber(ctx context.Context, prefix string) (string, error) {
	s.calls++
	if s.calls == 1 {
		return "", nil
	}
	return s.OrderRepository.LastNumber(ctx, prefix)
}

func TestCreateOrderRetriesTakenNumber(t *testing.T) {
	f := newOrderFixture(t)
	f.createDraft(t)

	stale := &staleNumbers{OrderRepository: f.repo}
	handler := NewCreateOrderHandler(stale, catalogrepo.NewGormCatalogRepository(f.db), database.NewTransactor(f.db)).
		WithClock(func() time.Time { return october })

	order, err := handler.Handle(context.Background(), CreateOrderCommand{
		VendorID: f.vendorID,
		Items:    []ItemInput{{PartID: f.partA, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "PO2026100002", order.OrderNumber)
	assert.Equal(t, 2, stale.calls)
	require.Len(t, order.Items, 1)

	var orders, items int64
	f.db.Model(&domain.Order{}).Count(&orders)
	f.db.Model(&domain.Item{}).Count(&items)
	assert.EqualValues(t, 2, orders)
	assert.EqualValues(t, 3, items)
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.lifecycle.Create.Handle(ctx, CreateOrderCommand{VendorID: f.vendorID})
	assert.True(t, apperror.IsValidation(err))

	_, err = f.lifecycle.Create.Handle(ctx, CreateOrderCommand{VendorID: f.vendorID, Items: []ItemInput{{PartID: f.partA, Quantity: 0}}})
	assert.True(t, apperror.IsValidation(err))

	_, err = f.lifecycle.Create.Handle(ctx, CreateOrderCommand{VendorID: f.vendorID + 50, Items: []ItemInput{{PartID: f.partA, Quantity: 1}}})
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.lifecycle.Create.Handle(ctx, CreateOrderCommand{VendorID: f.vendorID, Items: []ItemInput{
		{PartID: f.partA, Quantity: 1},
		{PartID: f.partB + 50, Quantity: 1},
	}})
	assert.True(t, apperror.IsNotFound(err))

	var orders int64
	f.db.Model(&domain.Order{}).Count(&orders)
	assert.Zero(t, orders)
}

func TestTransitionTable(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	for _, from := range domain.Statuses() {
		for _, to := range domain.Statuses() {
			t.Run(fmt.Sprintf("%s_to_%s", from, to), func(t *testing.T) {
				order := f.createDraft(t)
				f.forceStatus(t, order.ID, from)

				updated, err := f.lifecycle.UpdateStatus.Handle(ctx, UpdateStatusCommand{OrderID: order.ID, Status: to})
				if domain.CanTransition(from, to) {
					require.NoError(t, err)
					assert.Equal(t, to, updated.Status)
					return
				}

				require.Error(t, err)
				assert.True(t, apperror.IsState(err), err.Error())
				reloaded, err := f.repo.FindByID(ctx, order.ID)
				require.NoError(t, err)
				assert.Equal(t, from, reloaded.Status)
			})
		}
	}
}

func TestLifecycleFromDraftToReceived(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.createDraft(t)

	steps := []domain.Status{domain.StatusPending, domain.StatusApproved, domain.StatusOrdered, domain.StatusShipped, domain.StatusReceived}
	var current *domain.Order
	for _, next := range steps {
		var err error
		current, err = f.lifecycle.UpdateStatus.Handle(ctx, UpdateStatusCommand{OrderID: order.ID, Status: next, TrackingNumber: "1Z999", PerformedBy: "dock"})
		require.NoError(t, err, next)
		assert.Equal(t, next, current.Status)

		_, err = f.lifecycle.UpdateStatus.Handle(ctx, UpdateStatusCommand{OrderID: order.ID, Status: next})
		assert.True(t, apperror.IsState(err), "repeating %s must fail", next)
	}

	assert.NotNil(t, current.OrderDate)
	assert.NotNil(t, current.ReceivedDate)
	assert.Equal(t, "1Z999", current.TrackingNumber)
	for _, item := range current.Items {
		assert.Equal(t, item.Quantity, item.QuantityReceived)
	}
	assert.Equal(t, 25, f.onHand(t, f.partA))
	assert.Equal(t, 9, f.onHand(t, f.partB))

	logs, err := f.inventory.FindLogsByOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	for _, log := range logs {
		assert.Equal(t, inventorydomain.ChangeReceive, log.ChangeType)
		assert.Equal(t, log.PreviousQty+log.QuantityChange, log.NewQty)
		assert.Equal(t, "Received from order "+order.OrderNumber, log.Reason)
		assert.Equal(t, "dock", log.PerformedBy)
		require.NotNil(t, log.OrderID)
		assert.Equal(t, order.ID, *log.OrderID)
	}

	events := f.events.Events()
	require.Len(t, events, 6)
	last := events[5].(*kafka.OrderReceivedEvent)
	assert.Equal(t, order.OrderNumber, last.OrderNumber)
	assert.Len(t, last.Lines, 2)
	changed := events[4].(*kafka.OrderStatusChangedEvent)
	assert.Equal(t, "SHIPPED", changed.From)
	assert.Equal(t, "RECEIVED", changed.To)
}

func TestReceiveFailureRollsBackTransition(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.createDraft(t)
	f.forceStatus(t, order.ID, domain.StatusShipped)
	require.NoError(t, f.db.Where("part_id = ?", f.partB).Delete(&inventorydomain.Inventory{}).Error)

	_, err := f.lifecycle.UpdateStatus.Handle(ctx, UpdateStatusCommand{OrderID: order.ID, Status: domain.StatusReceived})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	reloaded, err := f.repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, reloaded.Status)
	assert.Nil(t, reloaded.ReceivedDate)
	for _, item := range reloaded.Items {
		assert.Zero(t, item.QuantityReceived)
	}
	assert.Equal(t, 5, f.onHand(t, f.partA))
	logs, err := f.inventory.FindLogsByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
	assert.Empty(t, f.events.Events())
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newOrderFixture(t)
	order := f.createDraft(t)

	_, err := f.lifecycle.UpdateStatus.Handle(context.Background(), UpdateStatusCommand{OrderID: order.ID, Status: "LOST"})
	assert.True(t, apperror.IsValidation(err))

	_, err = f.lifecycle.UpdateStatus.Handle(context.Background(), UpdateStatusCommand{OrderID: order.ID + 99, Status: domain.StatusPending})
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteOnlyDrafts(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	draft := f.createDraft(t)
	require.NoError(t, f.lifecycle.Delete.Handle(ctx, draft.ID))
	_, err := f.repo.FindByID(ctx, draft.ID)
	assert.True(t, apperror.IsNotFound(err))
	var items int64
	f.db.Model(&domain.Item{}).Where("order_id = ?", draft.ID).Count(&items)
	assert.Zero(t, items)

	for _, status := range domain.Statuses()[1:] {
		order := f.createDraft(t)
		f.forceStatus(t, order.ID, status)

		err := f.lifecycle.Delete.Handle(ctx, order.ID)
		assert.True(t, apperror.IsState(err), status)

		reloaded, err := f.repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, status, reloaded.Status)
		assert.Len(t, reloaded.Items, 2)
	}

	assert.True(t, apperror.IsNotFound(f.lifecycle.Delete.Handle(ctx, 9999)))
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, kafka.Event) error {
	return errors.New("broker down")
}

func TestPublishFailureKeepsTransition(t *testing.T) {
	f := newOrderFixture(t)
	order := f.createDraft(t)
	handler := NewUpdateStatusHandler(f.repo, nil, database.NewTransactor(f.db), failingPublisher{})

	updated, err := handler.Handle(context.Background(), UpdateStatusCommand{OrderID: order.ID, Status: domain.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, updated.Status)
}
