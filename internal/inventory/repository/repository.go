package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/parts-replenishment/internal/inventory/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
)

type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) Create(ctx context.Context, inventory *domain.Inventory) error {
	err := database.Conn(ctx, r.db).Omit(clause.Associations).Create(inventory).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Wrap(apperror.KindIntegrity, err, "inventory for part %d already exists", inventory.PartID)
	}
	if err != nil {
		return fmt.Errorf("failed to create inventory: %w", err)
	}
	return nil
}

func (r *GormInventoryRepository) FindByPartID(ctx context.Context, partID uint) (*domain.Inventory, error) {
	var inventory domain.Inventory
	err := database.Conn(ctx, r.db).
		Preload("Part.Vendor").
		Where("part_id = ?", partID).
		First(&inventory).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("inventory record for part %d not found", partID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory: %w", err)
	}
	return &inventory, nil
}

// FindByPartIDForUpdate takes the row lock with a no-op write before reading,
// which works the same on PostgreSQL and on SQLite (no FOR UPDATE there).
func (r *GormInventoryRepository) FindByPartIDForUpdate(ctx context.Context, partID uint) (*domain.Inventory, error) {
	db := database.Conn(ctx, r.db)
	res := db.Model(&domain.Inventory{}).
		Where("part_id = ?", partID).
		UpdateColumn("updated_at", gorm.Expr("updated_at"))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to lock inventory: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound("inventory record for part %d not found", partID)
	}

	var inventory domain.Inventory
	if err := db.Where("part_id = ?", partID).First(&inventory).Error; err != nil {
		return nil, fmt.Errorf("failed to read locked inventory: %w", err)
	}
	return &inventory, nil
}

func (r *GormInventoryRepository) Update(ctx context.Context, inventory *domain.Inventory) error {
	if err := database.Conn(ctx, r.db).Omit(clause.Associations).Save(inventory).Error; err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}
	return nil
}

func (r *GormInventoryRepository) FindAll(ctx context.Context, filter domain.ListFilter) ([]domain.Inventory, error) {
	query := database.Conn(ctx, r.db).Preload("Part.Vendor")
	if filter.LowStockOnly {
		query = query.Where("quantity_on_hand <= reorder_point")
	}
	if location := strings.TrimSpace(filter.Location); location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}

	var inventories []domain.Inventory
	if err := query.Order("part_id").Find(&inventories).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return inventories, nil
}

func (r *GormInventoryRepository) FindLowStock(ctx context.Context) ([]domain.Inventory, error) {
	var inventories []domain.Inventory
	err := database.Conn(ctx, r.db).
		Joins("JOIN parts ON parts.id = inventory.part_id").
		Where("parts.is_active = ?", true).
		Where("inventory.quantity_on_hand <= inventory.reorder_point").
		Preload("Part.Vendor").
		Order("inventory.part_id").
		Find(&inventories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find low stock: %w", err)
	}
	return inventories, nil
}

func (r *GormInventoryRepository) AppendLog(ctx context.Context, log *domain.Log) error {
	if err := database.Conn(ctx, r.db).Create(log).Error; err != nil {
		return fmt.Errorf("failed to append inventory log: %w", err)
	}
	return nil
}

func (r *GormInventoryRepository) FindLogs(ctx context.Context, partID uint, limit, offset int) ([]domain.Log, error) {
	var logs []domain.Log
	err := database.Conn(ctx, r.db).
		Where("part_id = ?", partID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory logs: %w", err)
	}
	return logs, nil
}

func (r *GormInventoryRepository) FindLogsByOrder(ctx context.Context, orderID uint) ([]domain.Log, error) {
	var logs []domain.Log
	if err := database.Conn(ctx, r.db).Where("order_id = ?", orderID).Order("id").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to find order inventory logs: %w", err)
	}
	return logs, nil
}

func (r *GormInventoryRepository) CountLogs(ctx context.Context, partID uint) (int64, error) {
	var count int64
	if err := database.Conn(ctx, r.db).Model(&domain.Log{}).Where("part_id = ?", partID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count inventory logs: %w", err)
	}
	return count, nil
}
