package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/parts-replenishment/internal/order/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	db := database.Conn(ctx, r.db)

	items := order.Items
	order.Items = nil
	err := db.Omit(clause.Associations).Create(order).Error
	order.Items = items
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Wrap(apperror.KindIntegrity, err, "order number %s already exists", order.OrderNumber)
	}
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	if len(order.Items) > 0 {
		if err := db.Omit(clause.Associations).Create(&order.Items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
	}
	return nil
}

// LastNumber returns the highest number within prefix. Longer numbers sort
// first so the sequence keeps growing past 9999.
func (r *GormOrderRepository) LastNumber(ctx context.Context, prefix string) (string, error) {
	var numbers []string
	err := database.Conn(ctx, r.db).
		Model(&domain.Order{}).
		Where("order_number LIKE ?", prefix+"%").
		Order("LENGTH(order_number) DESC").
		Order("order_number DESC").
		Limit(1).
		Pluck("order_number", &numbers).Error
	if err != nil {
		return "", fmt.Errorf("failed to read last order number: %w", err)
	}
	if len(numbers) == 0 {
		return "", nil
	}
	return numbers[0], nil
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	err := database.Conn(ctx, r.db).
		Preload("Vendor").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.Part").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("order %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

// FindByIDForUpdate locks the header with a no-op write, see the inventory repository
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uint) (*domain.Order, error) {
	res := database.Conn(ctx, r.db).
		Model(&domain.Order{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", gorm.Expr("updated_at"))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to lock order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound("order %d not found", id)
	}
	return r.FindByID(ctx, id)
}

func (r *GormOrderRepository) UpdateHeader(ctx context.Context, order *domain.Order) error {
	if err := database.Conn(ctx, r.db).Omit(clause.Associations).Save(order).Error; err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

func (r *GormOrderRepository) SetQuantityReceived(ctx context.Context, itemID uint, quantity int) error {
	err := database.Conn(ctx, r.db).
		Model(&domain.Item{}).
		Where("id = ?", itemID).
		Update("quantity_received", quantity).Error
	if err != nil {
		return fmt.Errorf("failed to update received quantity: %w", err)
	}
	return nil
}

// Delete removes the items first so no foreign key cascade is needed
func (r *GormOrderRepository) Delete(ctx context.Context, id uint) error {
	db := database.Conn(ctx, r.db)
	if err := db.Where("order_id = ?", id).Delete(&domain.Item{}).Error; err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}
	if err := db.Delete(&domain.Order{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

func (r *GormOrderRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Order, int64, error) {
	filtered := func() *gorm.DB {
		query := database.Conn(ctx, r.db).Model(&domain.Order{})
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.VendorID != 0 {
			query = query.Where("vendor_id = ?", filter.VendorID)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []domain.Order
	err := filtered().
		Preload("Vendor").
		Preload("Items.Part").
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

func (r *GormOrderRepository) FindAllHeaders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := database.Conn(ctx, r.db).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return orders, nil
}
