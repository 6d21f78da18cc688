package command

import (
	orderdomain "github.com/tair/parts-replenishment/internal/order/domain"
	"github.com/tair/parts-replenishment/internal/reorder/domain"
	"github.com/tair/parts-replenishment/kafka"
	"github.com/tair/parts-replenishment/pkg/database"
)

// Processor bundles the reorder monitor and alert processor commands
type Processor struct {
	Scan         *ScanHandler
	Process      *ProcessAlertHandler
	ProcessAll   *ProcessAllHandler
	Dismiss      *DismissAlertHandler
	VendorOrders *CreateVendorOrdersHandler
}

func NewProcessor(
	alerts domain.AlertRepository,
	stock domain.StockReader,
	catalog orderdomain.CatalogReader,
	orders OrderCreator,
	tx *database.Transactor,
	publisher kafka.EventPublisher,
) *Processor {
	process := NewProcessAlertHandler(alerts, catalog, orders, tx)
	return &Processor{
		Scan:         NewScanHandler(alerts, stock, publisher),
		Process:      process,
		ProcessAll:   NewProcessAllHandler(alerts, process),
		Dismiss:      NewDismissAlertHandler(alerts, tx),
		VendorOrders: NewCreateVendorOrdersHandler(stock, orders),
	}
}
