package query

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryrepo "github.com/tair/parts-replenishment/internal/inventory/repository"
	"github.com/tair/parts-replenishment/internal/order/domain"
	"github.com/tair/parts-replenishment/internal/order/repository"
	"github.com/tair/parts-replenishment/internal/schema/schematest"
	"github.com/tair/parts-replenishment/pkg/apperror"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newQueries(t *testing.T) (*Queries, uint) {
	t.Helper()
	db := schematest.NewDB(t)
	acme := schematest.SeedVendor(t, db, "ACME")
	bolt := schematest.SeedVendor(t, db, "BOLT")

	for _, o := range []domain.Order{
		{OrderNumber: "PO2026100001", VendorID: acme.ID, Status: domain.StatusDraft, Total: dec("40.00"), CreatedAt: time.Date(2026, time.October, 2, 8, 0, 0, 0, time.UTC)},
		{OrderNumber: "PO2026090007", VendorID: acme.ID, Status: domain.StatusPending, Total: dec("10.50"), CreatedAt: time.Date(2026, time.September, 28, 8, 0, 0, 0, time.UTC)},
		{OrderNumber: "PO2026100002", VendorID: bolt.ID, Status: domain.StatusDraft, Total: dec("5.25"), CreatedAt: time.Date(2026, time.October, 10, 8, 0, 0, 0, time.UTC)},
	} {
		o.Subtotal = o.Total
		require.NoError(t, db.Create(&o).Error)
	}

	q := NewQueries(repository.NewGormOrderRepository(db), inventoryrepo.NewGormInventoryRepository(db))
	q.Summary.now = func() time.Time { return time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC) }
	return q, bolt.ID
}

func TestOrdersSummary(t *testing.T) {
	q, _ := newQueries(t)

	s, err := q.Summary.Handle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.ByStatus[domain.StatusDraft])
	assert.Equal(t, 1, s.ByStatus[domain.StatusPending])
	assert.True(t, s.TotalValue.Equal(dec("55.75")), s.TotalValue.String())
	assert.Equal(t, 2, s.ThisMonth)
	assert.True(t, s.ThisMonthValue.Equal(dec("45.25")), s.ThisMonthValue.String())
}

func TestListOrdersFiltersAndPages(t *testing.T) {
	q, boltID := newQueries(t)
	ctx := context.Background()

	page, err := q.List.Handle(ctx, ListOrdersQuery{Status: "DRAFT"})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.EqualValues(t, 2, page.Pagination.Total)

	page, err = q.List.Handle(ctx, ListOrdersQuery{VendorID: boltID})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "PO2026100002", page.Data[0].OrderNumber)

	page, err = q.List.Handle(ctx, ListOrdersQuery{Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.EqualValues(t, 3, page.Pagination.Pages)

	_, err = q.List.Handle(ctx, ListOrdersQuery{Status: "LOST"})
	assert.True(t, apperror.IsValidation(err))
}

func TestGetOrder(t *testing.T) {
	q, _ := newQueries(t)
	ctx := context.Background()

	detail, err := q.Get.Handle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "PO2026100001", detail.OrderNumber)
	assert.Empty(t, detail.InventoryLogs)

	_, err = q.Get.Handle(ctx, 42)
	assert.True(t, apperror.IsNotFound(err))
}
