package domain

import (
	"context"
	"time"

	inventory "github.com/tair/parts-replenishment/internal/inventory/domain"
)

// AlertStatus is the state of a reorder alert
type AlertStatus string

const (
	AlertPending   AlertStatus = "PENDING"
	AlertOrdered   AlertStatus = "ORDERED"
	AlertDismissed AlertStatus = "DISMISSED"
)

// ParseAlertStatus validates a status name
func ParseAlertStatus(s string) (AlertStatus, bool) {
	switch status := AlertStatus(s); status {
	case AlertPending, AlertOrdered, AlertDismissed:
		return status, true
	}
	return "", false
}

// Alert snapshots a low-stock condition at scan time.
// At most one PENDING alert exists per part.
type Alert struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	PartID       uint        `json:"part_id" gorm:"not null;index"`
	PartNumber   string      `json:"part_number" gorm:"size:64;not null"`
	PartName     string      `json:"part_name" gorm:"size:255"`
	CurrentQty   int         `json:"current_qty" gorm:"not null"`
	ReorderPoint int         `json:"reorder_point" gorm:"not null"`
	ReorderQty   int         `json:"reorder_qty" gorm:"not null"`
	VendorID     *uint       `json:"vendor_id,omitempty"`
	VendorName   string      `json:"vendor_name,omitempty" gorm:"size:255"`
	Status       AlertStatus `json:"status" gorm:"size:16;not null;index"`
	OrderID      *uint       `json:"order_id,omitempty"`
	CreatedAt    time.Time   `json:"created_at" gorm:"index"`
	ProcessedAt  *time.Time  `json:"processed_at,omitempty"`
}

// TableName specifies the table name
func (Alert) TableName() string {
	return "reorder_alerts"
}

// NewAlert snapshots a low inventory row. The part (and vendor, if any) must be loaded.
func NewAlert(inv *inventory.Inventory) *Alert {
	alert := &Alert{
		PartID:       inv.PartID,
		CurrentQty:   inv.QuantityOnHand,
		ReorderPoint: inv.ReorderPoint,
		ReorderQty:   inv.ReorderQuantity,
		Status:       AlertPending,
	}
	if part := inv.Part; part != nil {
		alert.PartNumber = part.PartNumber
		alert.PartName = part.Name
		alert.VendorID = part.VendorID
		if part.Vendor != nil {
			alert.VendorName = part.Vendor.Name
		}
	}
	return alert
}

// AlertRepository defines the contract for alert data access
type AlertRepository interface {
	HasPending(ctx context.Context, partID uint) (bool, error)
	// Create inserts a PENDING alert; another pending alert for the part is an integrity error
	Create(ctx context.Context, alert *Alert) error
	FindByID(ctx context.Context, id uint) (*Alert, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*Alert, error)
	Update(ctx context.Context, alert *Alert) error
	List(ctx context.Context, status AlertStatus, limit int) ([]Alert, error)
	FindPending(ctx context.Context) ([]Alert, error)
}

// StockReader yields inventory of active parts at or below their reorder point
type StockReader interface {
	FindLowStock(ctx context.Context) ([]inventory.Inventory, error)
}
