package command

import (
	"context"

	"github.com/tair/parts-replenishment/internal/inventory/domain"
	"github.com/tair/parts-replenishment/pkg/apperror"
	"github.com/tair/parts-replenishment/pkg/database"
	"github.com/tair/parts-replenishment/pkg/logger"
)

// UpdateSettingsCommand changes reorder metadata; it never touches quantities or the log
type UpdateSettingsCommand struct {
	PartID   uint
	Settings domain.Settings
}

// UpdateSettingsHandler handles update settings command
type UpdateSettingsHandler struct {
	repo domain.InventoryRepository
	tx   *database.Transactor
}

// NewUpdateSettingsHandler creates a new update settings handler
func NewUpdateSettingsHandler(repo domain.InventoryRepository, tx *database.Transactor) *UpdateSettingsHandler {
	return &UpdateSettingsHandler{repo: repo, tx: tx}
}

// Handle executes the update settings command
func (h *UpdateSettingsHandler) Handle(ctx context.Context, cmd UpdateSettingsCommand) (*domain.Inventory, error) {
	s := cmd.Settings
	for name, v := range map[string]*int{
		"reorder_point":    s.ReorderPoint,
		"reorder_quantity": s.ReorderQuantity,
		"max_quantity":     s.MaxQuantity,
	} {
		if v != nil && *v < 0 {
			return nil, apperror.Validation("%s cannot be negative", name)
		}
	}
	if s.ClearMaxQuantity && s.MaxQuantity != nil {
		return nil, apperror.Validation("max_quantity cannot be set and cleared at once")
	}

	var updated *domain.Inventory
	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		inv, err := h.repo.FindByPartIDForUpdate(ctx, cmd.PartID)
		if err != nil {
			return err
		}
		if s.ReorderPoint != nil {
			inv.ReorderPoint = *s.ReorderPoint
		}
		if s.ReorderQuantity != nil {
			inv.ReorderQuantity = *s.ReorderQuantity
		}
		if s.MaxQuantity != nil {
			inv.MaxQuantity = s.MaxQuantity
		}
		if s.ClearMaxQuantity {
			inv.MaxQuantity = nil
		}
		if s.Location != nil {
			inv.Location = *s.Location
		}
		if err := h.repo.Update(ctx, inv); err != nil {
			return err
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("part_id", cmd.PartID).
		Int("reorder_point", updated.ReorderPoint).
		Int("reorder_quantity", updated.ReorderQuantity).
		Msg("Inventory settings updated")
	return updated, nil
}
