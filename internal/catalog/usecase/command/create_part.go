package command

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/parts-replenishment/internal/catalog/domain"
	inventory "github.com/tair/parts-replenishment/internal/inventory/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
	"github.com/tair/parts-replenishment/pkg/logger"
	"github.com/tair/parts-replenishment/pkg/money"
)

// CreatePartCommand represents the command to add a part together with its inventory row
type CreatePartCommand struct {
	PartNumber      string
	Name            string
	Description     string
	UnitPrice       decimal.Decimal
	VendorID        *uint
	CategoryID      *uint
	Inactive        bool
	InitialQuantity int
	ReorderPoint    *int
	ReorderQuantity *int
	MaxQuantity     *int
	Location        string
}

// CreatePartHandler handles create part command
type CreatePartHandler struct {
	repo      domain.Repository
	inventory inventory.InventoryRepository
	tx        *database.Transactor
}

// NewCreatePartHandler creates a new create part handler
func NewCreatePartHandler(repo domain.Repository, inventoryRepo inventory.InventoryRepository, tx *database.Transactor) *CreatePartHandler {
	return &CreatePartHandler{repo: repo, inventory: inventoryRepo, tx: tx}
}

// Handle creates the part and its inventory atomically
func (h *CreatePartHandler) Handle(ctx context.Context, cmd CreatePartCommand) (*domain.Part, *inventory.Inventory, error) {
	cmd.PartNumber = strings.TrimSpace(cmd.PartNumber)
	if cmd.PartNumber == "" {
		return nil, nil, apperror.Validation("part number is required")
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, nil, apperror.Validation("part name is required")
	}
	if cmd.UnitPrice.IsNegative() {
		return nil, nil, apperror.Validation("unit price cannot be negative")
	}
	if cmd.InitialQuantity < 0 {
		return nil, nil, apperror.Validation("initial quantity cannot be negative")
	}

	reorderPoint := inventory.DefaultReorderPoint
	if cmd.ReorderPoint != nil {
		reorderPoint = *cmd.ReorderPoint
	}
	reorderQty := inventory.DefaultReorderQuantity
	if cmd.ReorderQuantity != nil {
		reorderQty = *cmd.ReorderQuantity
	}
	if reorderPoint < 0 || reorderQty < 0 {
		return nil, nil, apperror.Validation("reorder settings cannot be negative")
	}

	part := &domain.Part{
		PartNumber:  cmd.PartNumber,
		Name:        strings.TrimSpace(cmd.Name),
		Description: cmd.Description,
		UnitPrice:   money.Round(cmd.UnitPrice),
		IsActive:    !cmd.Inactive,
		VendorID:    cmd.VendorID,
		CategoryID:  cmd.CategoryID,
	}
	inv := &inventory.Inventory{
		QuantityOnHand:  cmd.InitialQuantity,
		ReorderPoint:    reorderPoint,
		ReorderQuantity: reorderQty,
		MaxQuantity:     cmd.MaxQuantity,
		Location:        cmd.Location,
	}

	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if cmd.VendorID != nil {
			if _, err := h.repo.FindVendor(ctx, *cmd.VendorID); err != nil {
				return err
			}
		}
		if err := h.repo.CreatePart(ctx, part); err != nil {
			return err
		}
		inv.PartID = part.ID
		return h.inventory.Create(ctx, inv)
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info(ctx).
		Uint("part_id", part.ID).
		Str("part_number", part.PartNumber).
		Int("quantity_on_hand", inv.QuantityOnHand).
		Msg("Part created")
	return part, inv, nil
}
