package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/parts-replenishment/internal/reorder/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
)

type GormAlertRepository struct {
	db *gorm.DB
}

func NewGormAlertRepository(db *gorm.DB) *GormAlertRepository {
	return &GormAlertRepository{db: db}
}

func (r *GormAlertRepository) HasPending(ctx context.Context, partID uint) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).
		Model(&domain.Alert{}).
		Where("part_id = ? AND status = ?", partID, domain.AlertPending).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check pending alerts: %w", err)
	}
	return count > 0, nil
}

func (r *GormAlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	err := database.Conn(ctx, r.db).Create(alert).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Wrap(apperror.KindIntegrity, err, "part %d already has a pending alert", alert.PartID)
	}
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (r *GormAlertRepository) FindByID(ctx context.Context, id uint) (*domain.Alert, error) {
	var alert domain.Alert
	err := database.Conn(ctx, r.db).First(&alert, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("alert %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find alert: %w", err)
	}
	return &alert, nil
}

// FindByIDForUpdate locks the alert with a no-op write before reading it
func (r *GormAlertRepository) FindByIDForUpdate(ctx context.Context, id uint) (*domain.Alert, error) {
	res := database.Conn(ctx, r.db).
		Model(&domain.Alert{}).
		Where("id = ?", id).
		UpdateColumn("status", gorm.Expr("status"))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to lock alert: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound("alert %d not found", id)
	}
	return r.FindByID(ctx, id)
}

func (r *GormAlertRepository) Update(ctx context.Context, alert *domain.Alert) error {
	if err := database.Conn(ctx, r.db).Save(alert).Error; err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}
	return nil
}

func (r *GormAlertRepository) List(ctx context.Context, status domain.AlertStatus, limit int) ([]domain.Alert, error) {
	query := database.Conn(ctx, r.db)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var alerts []domain.Alert
	if err := query.Order("created_at DESC").Order("id DESC").Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

func (r *GormAlertRepository) FindPending(ctx context.Context) ([]domain.Alert, error) {
	var alerts []domain.Alert
	err := database.Conn(ctx, r.db).
		Where("status = ?", domain.AlertPending).
		Order("id").
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pending alerts: %w", err)
	}
	return alerts, nil
}
