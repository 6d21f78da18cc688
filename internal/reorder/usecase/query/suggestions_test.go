package query

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryrepo "github.com/tair/parts-replenishment/internal/inventory/repository"
	"github.com/tair/parts-replenishment/internal/reorder/repository"
	"github.com/tair/parts-replenishment/internal/schema/schematest"
	"github.com/tair/parts-replenishment/pkg/apperror"
)

func TestSuggestions(t *testing.T) {
	db := schematest.NewDB(t)
	vendor := schematest.SeedVendor(t, db, "V")
	schematest.SeedPart(t, db, schematest.PartSpec{PartNumber: "SMALL", UnitPrice: "0.50", VendorID: &vendor.ID, OnHand: 9, ReorderPoint: 10, ReorderQty: 100})
	schematest.SeedPart(t, db, schematest.PartSpec{PartNumber: "BIG", UnitPrice: "2.00", VendorID: &vendor.ID, OnHand: 0, ReorderPoint: 8, ReorderQty: 20})
	schematest.SeedPart(t, db, schematest.PartSpec{PartNumber: "LOOSE", UnitPrice: "1.25", OnHand: 1, ReorderPoint: 4, ReorderQty: 4})
	schematest.SeedPart(t, db, schematest.PartSpec{PartNumber: "FINE", VendorID: &vendor.ID, OnHand: 30, ReorderPoint: 10, ReorderQty: 20})

	queries := NewQueries(repository.NewGormAlertRepository(db), inventoryrepo.NewGormInventoryRepository(db))
	report, err := queries.Suggestions.Handle(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Suggestions, 3)
	assert.Equal(t, "BIG", report.Suggestions[0].PartNumber)
	assert.Equal(t, 8, report.Suggestions[0].Shortfall)
	assert.Equal(t, "LOOSE", report.Suggestions[1].PartNumber)
	assert.Equal(t, "SMALL", report.Suggestions[2].PartNumber)
	assert.True(t, report.Suggestions[0].EstimatedCost.Equal(decimal.RequireFromString("40.00")))
	assert.Equal(t, 7, report.Suggestions[0].LeadTimeDays)

	require.Len(t, report.ByVendor, 2)
	assert.Equal(t, vendor.ID, report.ByVendor[0].VendorID)
	assert.Len(t, report.ByVendor[0].Items, 2)
	assert.True(t, report.ByVendor[0].TotalEstimatedCost.Equal(decimal.RequireFromString("90.00")))
	assert.Zero(t, report.ByVendor[1].VendorID)

	assert.Equal(t, 3, report.Summary.TotalItems)
	assert.Equal(t, 1, report.Summary.VendorCount)
	assert.True(t, report.Summary.TotalEstimatedCost.Equal(decimal.RequireFromString("95.00")), report.Summary.TotalEstimatedCost.String())
}

func TestListAlertsRejectsUnknownStatus(t *testing.T) {
	db := schematest.NewDB(t)
	queries := NewQueries(repository.NewGormAlertRepository(db), inventoryrepo.NewGormInventoryRepository(db))

	_, err := queries.List.Handle(context.Background(), ListAlertsQuery{Status: "SNOOZED"})
	assert.True(t, apperror.IsValidation(err))

	pending, err := queries.Pending.Handle(context.Background())
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}
