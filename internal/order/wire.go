package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	catalog "github.com/tair/parts-replenishment/internal/catalog/domain"
	inventory "github.com/tair/parts-replenishment/internal/inventory/domain"
	inventorycmd "github.com/tair/parts-replenishment/internal/inventory/usecase/command"
	"github.com/tair/parts-replenishment/internal/order/delivery/http"
	"github.com/tair/parts-replenishment/internal/order/domain"
	"github.com/tair/parts-replenishment/internal/order/repository"
	"github.com/tair/parts-replenishment/internal/order/usecase/command"
	"github.com/tair/parts-replenishment/internal/order/usecase/query"
)

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewGormOrderRepository(db)
}

// ProvideStockReceiver books received lines through the inventory ledger
func ProvideStockReceiver(ledger *inventorycmd.Ledger) domain.StockReceiver {
	return ledger.Receive
}

// ProvideReceiptLogReader reads receipt logs from the inventory repository
func ProvideReceiptLogReader(repo inventory.InventoryRepository) domain.ReceiptLogReader {
	return repo
}

// ProvideCatalogReader reads vendors and parts from the catalog repository
func ProvideCatalogReader(repo catalog.Repository) domain.CatalogReader {
	return repo
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
	ProvideStockReceiver,
	ProvideReceiptLogReader,
	ProvideCatalogReader,
)

var ProviderSet = wire.NewSet(
	RepositorySet,
	command.NewLifecycle,
	query.NewQueries,
	http.NewOrderHandler,
)
