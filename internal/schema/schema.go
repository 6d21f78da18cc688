// Package schema owns the table layout shared by every component.
package schema

import (
	"fmt"

	"gorm.io/gorm"

	catalog "github.com/tair/parts-replenishment/internal/catalog/domain"
	inventory "github.com/tair/parts-replenishment/internal/inventory/domain"
	order "github.com/tair/parts-replenishment/internal/order/domain"
	reorder "github.com/tair/parts-replenishment/internal/reorder/domain"
	"github.com/tair/parts-replenishment/pkg/logger"
)

// pendingAlertIndex allows at most one PENDING alert per part.
// Both PostgreSQL and SQLite accept partial indexes.
const pendingAlertIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_reorder_alerts_pending_part
	ON reorder_alerts (part_id) WHERE status = 'PENDING'`

// Migrate creates or updates every table and index
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&catalog.Vendor{},
		&catalog.Part{},
		&inventory.Inventory{},
		&inventory.Log{},
		&order.Order{},
		&order.Item{},
		&reorder.Alert{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err := db.Exec(pendingAlertIndex).Error; err != nil {
		return fmt.Errorf("failed to create pending alert index: %w", err)
	}

	logger.Logger.Info().Msg("Database schema migrated")
	return nil
}
