//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/parts-replenishment/internal/catalog"
	"github.com/tair/parts-replenishment/internal/inventory"
	"github.com/tair/parts-replenishment/internal/order"
	"github.com/tair/parts-replenishment/internal/reorder"
	"github.com/tair/parts-replenishment/kafka"
	"github.com/tair/parts-replenishment/pkg/database"
)

// InitializeApp initializes every module with its dependencies
func InitializeApp(db *gorm.DB, publisher kafka.EventPublisher) (*App, error) {
	wire.Build(
		database.NewTransactor,
		catalog.ProviderSet,
		inventory.ProviderSet,
		order.ProviderSet,
		reorder.ProviderSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil
}
