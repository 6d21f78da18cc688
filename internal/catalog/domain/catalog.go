package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLeadTimeDays applies to vendors that never configured one
const DefaultLeadTimeDays = 7

// Vendor supplies parts
type Vendor struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Code         string    `json:"code" gorm:"size:32;not null;uniqueIndex"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	ContactName  string    `json:"contact_name,omitempty" gorm:"size:255"`
	Email        string    `json:"email,omitempty" gorm:"size:255"`
	Phone        string    `json:"phone,omitempty" gorm:"size:64"`
	LeadTimeDays int       `json:"lead_time_days" gorm:"not null"`
	IsActive     bool      `json:"is_active" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Vendor) TableName() string {
	return "vendors"
}

// EffectiveLeadTime falls back to DefaultLeadTimeDays
func (v *Vendor) EffectiveLeadTime() int {
	if v == nil || v.LeadTimeDays <= 0 {
		return DefaultLeadTimeDays
	}
	return v.LeadTimeDays
}

// Part is a stocked item. Its inventory row is created alongside it.
type Part struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	PartNumber  string          `json:"part_number" gorm:"size:64;not null;uniqueIndex"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2);not null"`
	IsActive    bool            `json:"is_active" gorm:"not null;index"`
	CategoryID  *uint           `json:"category_id,omitempty" gorm:"index"`
	VendorID    *uint           `json:"vendor_id,omitempty" gorm:"index"`
	Vendor      *Vendor         `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Part) TableName() string {
	return "parts"
}

// Repository defines the contract for catalog data access.
// Lookups return an apperror NotFound when the row is missing.
type Repository interface {
	CreateVendor(ctx context.Context, vendor *Vendor) error
	CreatePart(ctx context.Context, part *Part) error
	FindVendor(ctx context.Context, id uint) (*Vendor, error)
	FindPart(ctx context.Context, id uint) (*Part, error)
	ListVendors(ctx context.Context) ([]Vendor, error)
}
