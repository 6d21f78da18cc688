package command

import (
	"context"
	"strings"

	"github.com/tair/parts-replenishment/internal/catalog/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/logger"
)

// CreateVendorCommand represents the command to register a vendor
type CreateVendorCommand struct {
	Code         string
	Name         string
	ContactName  string
	Email        string
	Phone        string
	LeadTimeDays int
}

// CreateVendorHandler handles create vendor command
type CreateVendorHandler struct {
	repo domain.Repository
}

// NewCreateVendorHandler creates a new create vendor handler
func NewCreateVendorHandler(repo domain.Repository) *CreateVendorHandler {
	return &CreateVendorHandler{repo: repo}
}

// Handle executes the create vendor command
func (h *CreateVendorHandler) Handle(ctx context.Context, cmd CreateVendorCommand) (*domain.Vendor, error) {
	cmd.Code = strings.TrimSpace(cmd.Code)
	cmd.Name = strings.TrimSpace(cmd.Name)
	if cmd.Code == "" {
		return nil, apperror.Validation("vendor code is required")
	}
	if cmd.Name == "" {
		return nil, apperror.Validation("vendor name is required")
	}
	if cmd.LeadTimeDays < 0 {
		return nil, apperror.Validation("lead time cannot be negative")
	}
	if cmd.LeadTimeDays == 0 {
		cmd.LeadTimeDays = domain.DefaultLeadTimeDays
	}

	vendor := &domain.Vendor{
		Code:         cmd.Code,
		Name:         cmd.Name,
		ContactName:  cmd.ContactName,
		Email:        cmd.Email,
		Phone:        cmd.Phone,
		LeadTimeDays: cmd.LeadTimeDays,
		IsActive:     true,
	}
	if err := h.repo.CreateVendor(ctx, vendor); err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("vendor_id", vendor.ID).
		Str("code", vendor.Code).
		Msg("Vendor created")
	return vendor, nil
}
