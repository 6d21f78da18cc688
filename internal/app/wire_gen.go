// Provider graph for the InitializeApp injector in wire.go, in the layout
// wire emits. `go generate ./internal/app` replaces this file with wire's output.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package app

import (
	"gorm.io/gorm"

	"github.com/tair/parts-replenishment/internal/catalog"
	"github.com/tair/parts-replenishment/internal/catalog/delivery/http"
	"github.com/tair/parts-replenishment/internal/catalog/usecase/command"
	"github.com/tair/parts-replenishment/internal/catalog/usecase/query"
	"github.com/tair/parts-replenishment/internal/inventory"
	http2 "github.com/tair/parts-replenishment/internal/inventory/delivery/http"
	command2 "github.com/tair/parts-replenishment/internal/inventory/usecase/command"
	query2 "github.com/tair/parts-replenishment/internal/inventory/usecase/query"
	"github.com/tair/parts-replenishment/internal/order"
	http3 "github.com/tair/parts-replenishment/internal/order/delivery/http"
	command3 "github.com/tair/parts-replenishment/internal/order/usecase/command"
	query3 "github.com/tair/parts-replenishment/internal/order/usecase/query"
	"github.com/tair/parts-replenishment/internal/reorder"
	http4 "github.com/tair/parts-replenishment/internal/reorder/delivery/http"
	command4 "github.com/tair/parts-replenishment/internal/reorder/usecase/command"
	query4 "github.com/tair/parts-replenishment/internal/reorder/usecase/query"
	"github.com/tair/parts-replenishment/kafka"
	"github.com/tair/parts-replenishment/pkg/database"
)

// Injectors from wire.go:

// InitializeApp initializes every module with its dependencies
func InitializeApp(db *gorm.DB, publisher kafka.EventPublisher) (*App, error) {
	repository := catalog.ProvideCatalogRepository(db)
	createVendorHandler := command.NewCreateVendorHandler(repository)
	inventoryRepository := inventory.ProvideInventoryRepository(db)
	transactor := database.NewTransactor(db)
	createPartHandler := command.NewCreatePartHandler(repository, inventoryRepository, transactor)
	getPartHandler := query.NewGetPartHandler(repository)
	listVendorsHandler := query.NewListVendorsHandler(repository)
	catalogHandler := http.NewCatalogHandler(createVendorHandler, createPartHandler, getPartHandler, listVendorsHandler)
	ledger := command2.NewLedger(inventoryRepository, transactor)
	queries := query2.NewQueries(inventoryRepository)
	inventoryHandler := http2.NewInventoryHandler(ledger, queries)
	orderRepository := order.ProvideOrderRepository(db)
	catalogReader := order.ProvideCatalogReader(repository)
	stockReceiver := order.ProvideStockReceiver(ledger)
	lifecycle := command3.NewLifecycle(orderRepository, catalogReader, stockReceiver, transactor, publisher)
	receiptLogReader := order.ProvideReceiptLogReader(inventoryRepository)
	queryQueries := query3.NewQueries(orderRepository, receiptLogReader)
	orderHandler := http3.NewOrderHandler(lifecycle, queryQueries)
	alertRepository := reorder.ProvideAlertRepository(db)
	stockReader := reorder.ProvideStockReader(inventoryRepository)
	orderCreator := reorder.ProvideOrderCreator(lifecycle)
	processor := command4.NewProcessor(alertRepository, stockReader, catalogReader, orderCreator, transactor, publisher)
	queries2 := query4.NewQueries(alertRepository, stockReader)
	reorderHandler := http4.NewReorderHandler(processor, queries2)
	scanHandler := reorder.ProvideScanner(processor)
	app := &App{
		Catalog:   catalogHandler,
		Inventory: inventoryHandler,
		Orders:    orderHandler,
		Reorder:   reorderHandler,
		Ledger:    ledger,
		Scanner:   scanHandler,
	}
	return app, nil
}
