package domain

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	catalog "github.com/tair/parts-replenishment/internal/catalog/domain"
	inventory "github.com/tair/parts-replenishment/internal/inventory/domain"
)

// Status is a purchase order state
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusOrdered   Status = "ORDERED"
	StatusShipped   Status = "SHIPPED"
	StatusReceived  Status = "RECEIVED"
	StatusCancelled Status = "CANCELLED"
)

// transitions lists every legal move; anything absent is rejected
var transitions = map[Status][]Status{
	StatusDraft:     {StatusPending, StatusCancelled},
	StatusPending:   {StatusApproved, StatusCancelled},
	StatusApproved:  {StatusOrdered, StatusCancelled},
	StatusOrdered:   {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusReceived},
	StatusReceived:  {},
	StatusCancelled: {},
}

// Statuses returns every status in lifecycle order
func Statuses() []Status {
	return []Status{StatusDraft, StatusPending, StatusApproved, StatusOrdered, StatusShipped, StatusReceived, StatusCancelled}
}

// ParseStatus validates a status name
func ParseStatus(s string) (Status, bool) {
	status := Status(s)
	_, ok := transitions[status]
	return status, ok
}

// CanTransition reports whether from -> to is a legal move
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Order is a purchase order header
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	OrderNumber     string          `json:"order_number" gorm:"size:32;not null;uniqueIndex"`
	VendorID        uint            `json:"vendor_id" gorm:"not null;index"`
	Vendor          *catalog.Vendor `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Status          Status          `json:"status" gorm:"size:16;not null;index"`
	OrderDate       *time.Time      `json:"order_date,omitempty"`
	ReceivedDate    *time.Time      `json:"received_date,omitempty"`
	TrackingNumber  string          `json:"tracking_number,omitempty" gorm:"size:128"`
	ShippingAddress string          `json:"shipping_address,omitempty"`
	Subtotal        decimal.Decimal `json:"subtotal" gorm:"type:numeric(12,2);not null"`
	Tax             decimal.Decimal `json:"tax" gorm:"type:numeric(12,2);not null"`
	Shipping        decimal.Decimal `json:"shipping" gorm:"type:numeric(12,2);not null"`
	Total           decimal.Decimal `json:"total" gorm:"type:numeric(12,2);not null"`
	IsAutoGenerated bool            `json:"is_auto_generated" gorm:"not null"`
	Notes           string          `json:"notes,omitempty"`
	Items           []Item          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// Item is one line of an order. TotalPrice is Quantity × UnitPrice.
type Item struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	OrderID          uint            `json:"order_id" gorm:"not null;index"`
	PartID           uint            `json:"part_id" gorm:"not null;index"`
	Part             *catalog.Part   `json:"part,omitempty" gorm:"foreignKey:PartID"`
	Quantity         int             `json:"quantity" gorm:"not null"`
	UnitPrice        decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2);not null"`
	TotalPrice       decimal.Decimal `json:"total_price" gorm:"type:numeric(12,2);not null"`
	QuantityReceived int             `json:"quantity_received" gorm:"not null"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Item) TableName() string {
	return "order_items"
}

// Detail is an order together with the ledger entries its receipt produced
type Detail struct {
	*Order
	InventoryLogs []inventory.Log `json:"inventory_logs"`
}

// NumberPrefix is the PO<yyyy><mm> prefix shared by orders of one month
func NumberPrefix(t time.Time) string {
	return fmt.Sprintf("PO%04d%02d", t.Year(), int(t.Month()))
}

// NextNumber returns the number following last within prefix, starting at 0001
func NextNumber(prefix, last string) string {
	sequence := 1
	if len(last) > len(prefix) {
		if n, err := strconv.Atoi(last[len(prefix):]); err == nil {
			sequence = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, sequence)
}

// ListFilter narrows and pages ListOrders
type ListFilter struct {
	Status   Status
	VendorID uint
	Limit    int
	Offset   int
}

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	// Create inserts the header and its items; a taken order number is an integrity error
	Create(ctx context.Context, order *Order) error
	// LastNumber returns the highest order number with prefix, or "" if none
	LastNumber(ctx context.Context, prefix string) (string, error)
	FindByID(ctx context.Context, id uint) (*Order, error)
	// FindByIDForUpdate loads the order and its items, holding the header row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uint) (*Order, error)
	UpdateHeader(ctx context.Context, order *Order) error
	SetQuantityReceived(ctx context.Context, itemID uint, quantity int) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ListFilter) ([]Order, int64, error)
	FindAllHeaders(ctx context.Context) ([]Order, error)
}

// StockReceiver books goods into inventory on behalf of an order and returns the new on-hand quantity
type StockReceiver interface {
	ReceiveForOrder(ctx context.Context, partID uint, quantity int, orderID uint, orderNumber, performedBy string) (int, error)
}

// ReceiptLogReader reads the ledger entries written for an order
type ReceiptLogReader interface {
	FindLogsByOrder(ctx context.Context, orderID uint) ([]inventory.Log, error)
}

// CatalogReader is the part of the catalog orders read from
type CatalogReader interface {
	FindVendor(ctx context.Context, id uint) (*catalog.Vendor, error)
	FindPart(ctx context.Context, id uint) (*catalog.Part, error)
}
