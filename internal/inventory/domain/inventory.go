package domain

import (
	"context"
	"time"

	catalog "github.com/tair/parts-replenishment/internal/catalog/domain"
)

// Reorder settings a new part starts with
const (
	DefaultReorderPoint    = 10
	DefaultReorderQuantity = 50
)

// ChangeType classifies a ledger mutation
type ChangeType string

const (
	ChangeAdjust  ChangeType = "ADJUST"
	ChangeReceive ChangeType = "RECEIVE"
	ChangeShip    ChangeType = "SHIP"
)

// Inventory is the on-hand state of one part
type Inventory struct {
	ID               uint          `json:"id" gorm:"primaryKey"`
	PartID           uint          `json:"part_id" gorm:"not null;uniqueIndex"`
	Part             *catalog.Part `json:"part,omitempty" gorm:"foreignKey:PartID"`
	QuantityOnHand   int           `json:"quantity_on_hand" gorm:"not null"`
	QuantityReserved int           `json:"quantity_reserved" gorm:"not null"`
	ReorderPoint     int           `json:"reorder_point" gorm:"not null"`
	ReorderQuantity  int           `json:"reorder_quantity" gorm:"not null"`
	MaxQuantity      *int          `json:"max_quantity,omitempty"`
	Location         string        `json:"location,omitempty" gorm:"size:128"`
	LastCountDate    *time.Time    `json:"last_count_date,omitempty"`
	LastOrderDate    *time.Time    `json:"last_order_date,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// TableName specifies the table name
func (Inventory) TableName() string {
	return "inventory"
}

// IsLow reports whether on-hand stock is at or below the reorder point
func (i *Inventory) IsLow() bool {
	return i.QuantityOnHand <= i.ReorderPoint
}

// Available is stock not reserved for anything else
func (i *Inventory) Available() int {
	return i.QuantityOnHand - i.QuantityReserved
}

// Log is one immutable row of the audit trail.
// NewQty always equals PreviousQty + QuantityChange.
type Log struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	PartID         uint       `json:"part_id" gorm:"not null;index"`
	ChangeType     ChangeType `json:"change_type" gorm:"size:16;not null"`
	QuantityChange int        `json:"quantity_change" gorm:"not null"`
	PreviousQty    int        `json:"previous_qty" gorm:"not null"`
	NewQty         int        `json:"new_qty" gorm:"not null"`
	OrderID        *uint      `json:"order_id,omitempty" gorm:"index"`
	Reason         string     `json:"reason,omitempty"`
	PerformedBy    string     `json:"performed_by,omitempty" gorm:"size:128"`
	CreatedAt      time.Time  `json:"created_at" gorm:"index"`
}

// TableName specifies the table name
func (Log) TableName() string {
	return "inventory_logs"
}

// Mutation is the result of a committed ledger operation
type Mutation struct {
	Inventory *Inventory `json:"inventory"`
	Log       *Log       `json:"log"`
	Variance  *int       `json:"variance,omitempty"`
}

// Settings is a partial update of reorder metadata; nil fields are left alone
type Settings struct {
	ReorderPoint    *int    `json:"reorder_point"`
	ReorderQuantity *int    `json:"reorder_quantity"`
	MaxQuantity     *int    `json:"max_quantity"`
	Location        *string `json:"location"`

	// ClearMaxQuantity removes the ceiling; it cannot be combined with MaxQuantity
	ClearMaxQuantity bool `json:"clear_max_quantity"`
}

// ListFilter narrows ListInventory
type ListFilter struct {
	LowStockOnly bool
	Location     string
}

// InventoryRepository defines the contract for inventory data access
type InventoryRepository interface {
	Create(ctx context.Context, inventory *Inventory) error
	FindByPartID(ctx context.Context, partID uint) (*Inventory, error)
	// FindByPartIDForUpdate reads the row and holds it until the surrounding transaction ends
	FindByPartIDForUpdate(ctx context.Context, partID uint) (*Inventory, error)
	Update(ctx context.Context, inventory *Inventory) error
	FindAll(ctx context.Context, filter ListFilter) ([]Inventory, error)
	// FindLowStock returns inventory of active parts at or below their reorder point
	FindLowStock(ctx context.Context) ([]Inventory, error)
	AppendLog(ctx context.Context, log *Log) error
	FindLogs(ctx context.Context, partID uint, limit, offset int) ([]Log, error)
	FindLogsByOrder(ctx context.Context, orderID uint) ([]Log, error)
	CountLogs(ctx context.Context, partID uint) (int64, error)
}
