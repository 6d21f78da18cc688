package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/parts-replenishment/internal/catalog/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
)

type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) CreateVendor(ctx context.Context, vendor *domain.Vendor) error {
	err := database.Conn(ctx, r.db).Create(vendor).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Wrap(apperror.KindIntegrity, err, "vendor code %s already exists", vendor.Code)
	}
	if err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil
}

func (r *GormCatalogRepository) CreatePart(ctx context.Context, part *domain.Part) error {
	err := database.Conn(ctx, r.db).Omit("Vendor").Create(part).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Wrap(apperror.KindIntegrity, err, "part number %s already exists", part.PartNumber)
	}
	if err != nil {
		return fmt.Errorf("failed to create part: %w", err)
	}
	return nil
}

func (r *GormCatalogRepository) FindVendor(ctx context.Context, id uint) (*domain.Vendor, error) {
	var vendor domain.Vendor
	err := database.Conn(ctx, r.db).First(&vendor, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("vendor %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}
	return &vendor, nil
}

func (r *GormCatalogRepository) FindPart(ctx context.Context, id uint) (*domain.Part, error) {
	var part domain.Part
	err := database.Conn(ctx, r.db).Preload("Vendor").First(&part, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("part %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find part: %w", err)
	}
	return &part, nil
}

func (r *GormCatalogRepository) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	var vendors []domain.Vendor
	if err := database.Conn(ctx, r.db).Order("name").Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	return vendors, nil
}
