// Package schematest builds migrated test databases and seeds catalog rows.
package schematest

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalog "github.com/tair/parts-replenishment/internal/catalog/domain"
	inventory "github.com/tair/parts-replenishment/internal/inventory/domain"
	"github.com/tair/parts-replenishment/internal/schema"
	"github.com/tair/parts-replenishment/pkg/database/dbtest"
)

// NewDB returns an isolated, migrated database
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db := dbtest.Open(t)
	if err := schema.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedVendor inserts an active vendor
func SeedVendor(t testing.TB, db *gorm.DB, code string) *catalog.Vendor {
	t.Helper()
	vendor := &catalog.Vendor{
		Code:         code,
		Name:         "Vendor " + code,
		LeadTimeDays: catalog.DefaultLeadTimeDays,
		IsActive:     true,
	}
	if err := db.Create(vendor).Error; err != nil {
		t.Fatalf("seed vendor %s: %v", code, err)
	}
	return vendor
}

// PartSpec describes a part and its stock for SeedPart
type PartSpec struct {
	PartNumber   string
	UnitPrice    string
	VendorID     *uint
	Inactive     bool
	OnHand       int
	ReorderPoint int
	ReorderQty   int
}

// SeedPart inserts a part with its inventory row
func SeedPart(t testing.TB, db *gorm.DB, spec PartSpec) (*catalog.Part, *inventory.Inventory) {
	t.Helper()
	if spec.UnitPrice == "" {
		spec.UnitPrice = "1.00"
	}
	part := &catalog.Part{
		PartNumber: spec.PartNumber,
		Name:       fmt.Sprintf("Part %s", spec.PartNumber),
		UnitPrice:  decimal.RequireFromString(spec.UnitPrice),
		IsActive:   !spec.Inactive,
		VendorID:   spec.VendorID,
	}
	if err := db.Create(part).Error; err != nil {
		t.Fatalf("seed part %s: %v", spec.PartNumber, err)
	}
	inv := &inventory.Inventory{
		PartID:          part.ID,
		QuantityOnHand:  spec.OnHand,
		ReorderPoint:    spec.ReorderPoint,
		ReorderQuantity: spec.ReorderQty,
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("seed inventory %s: %v", spec.PartNumber, err)
	}
	return part, inv
}
