package reorder

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	inventory "github.com/tair/parts-replenishment/internal/inventory/domain"
	ordercmd "github.com/tair/parts-replenishment/internal/order/usecase/command"
	"github.com/tair/parts-replenishment/internal/reorder/delivery/http"
	"github.com/tair/parts-replenishment/internal/reorder/domain"
	"github.com/tair/parts-replenishment/internal/reorder/repository"
	"github.com/tair/parts-replenishment/internal/reorder/usecase/command"
	"github.com/tair/parts-replenishment/internal/reorder/usecase/query"
)

// ProvideAlertRepository provides the alert repository
func ProvideAlertRepository(db *gorm.DB) domain.AlertRepository {
	return repository.NewGormAlertRepository(db)
}

// ProvideStockReader reads low stock from the inventory repository
func ProvideStockReader(repo inventory.InventoryRepository) domain.StockReader {
	return repo
}

// ProvideOrderCreator creates alert orders through the order lifecycle
func ProvideOrderCreator(lifecycle *ordercmd.Lifecycle) command.OrderCreator {
	return lifecycle.Create
}

// ProvideScanner exposes the scan handler to the scheduler
func ProvideScanner(processor *command.Processor) *command.ScanHandler {
	return processor.Scan
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideAlertRepository,
	ProvideStockReader,
	ProvideOrderCreator,
)

var ProviderSet = wire.NewSet(
	RepositorySet,
	command.NewProcessor,
	ProvideScanner,
	query.NewQueries,
	http.NewReorderHandler,
)
