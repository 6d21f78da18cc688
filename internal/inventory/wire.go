package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/parts-replenishment/internal/inventory/delivery/http"
	"github.com/tair/parts-replenishment/internal/inventory/domain"
	"github.com/tair/parts-replenishment/internal/inventory/repository"
	"github.com/tair/parts-replenishment/internal/inventory/usecase/command"
	"github.com/tair/parts-replenishment/internal/inventory/usecase/query"
)

// ProvideInventoryRepository provides the traced inventory repository
func ProvideInventoryRepository(db *gorm.DB) domain.InventoryRepository {
	return repository.NewTracingInventoryRepository(repository.NewGormInventoryRepository(db))
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideInventoryRepository,
)

var HandlerSet = wire.NewSet(
	command.NewLedger,
	query.NewQueries,
	http.NewInventoryHandler,
)

var ProviderSet = wire.NewSet(
	RepositorySet,
	HandlerSet,
)
