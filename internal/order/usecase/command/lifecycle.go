package command

import (
	"github.com/tair/parts-replenishment/internal/order/domain"
	"github.com/tair/parts-replenishment/kafka"
	"github.com/tair/parts-replenishment/pkg/database"
)

// Lifecycle bundles the order mutation handlers
type Lifecycle struct {
	Create       *CreateOrderHandler
	UpdateStatus *UpdateStatusHandler
	Delete       *DeleteOrderHandler
}

// NewLifecycle creates every order mutation handler
func NewLifecycle(repo domain.OrderRepository, catalog domain.CatalogReader, receiver domain.StockReceiver, tx *database.Transactor, publisher kafka.EventPublisher) *Lifecycle {
	return &Lifecycle{
		Create:       NewCreateOrderHandler(repo, catalog, tx),
		UpdateStatus: NewUpdateStatusHandler(repo, receiver, tx, publisher),
		Delete:       NewDeleteOrderHandler(repo, tx),
	}
}
