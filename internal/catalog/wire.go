package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/parts-replenishment/internal/catalog/delivery/http"
	"github.com/tair/parts-replenishment/internal/catalog/domain"
	"github.com/tair/parts-replenishment/internal/catalog/repository"
	"github.com/tair/parts-replenishment/internal/catalog/usecase/command"
	"github.com/tair/parts-replenishment/internal/catalog/usecase/query"
)

// ProvideCatalogRepository provides the catalog repository
func ProvideCatalogRepository(db *gorm.DB) domain.Repository {
	return repository.NewGormCatalogRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCatalogRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewCreateVendorHandler,
	command.NewCreatePartHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetPartHandler,
	query.NewListVendorsHandler,
)

var ProviderSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
	http.NewCatalogHandler,
)
