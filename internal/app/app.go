// Package app assembles the service's handlers from a database handle and an event publisher.
package app

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"

	catalogHTTP "github.com/tair/parts-replenishment/internal/catalog/delivery/http"
	inventoryHTTP "github.com/tair/parts-replenishment/internal/inventory/delivery/http"
	inventorycmd "github.com/tair/parts-replenishment/internal/inventory/usecase/command"
	orderHTTP "github.com/tair/parts-replenishment/internal/order/delivery/http"
	reorderHTTP "github.com/tair/parts-replenishment/internal/reorder/delivery/http"
	reordercmd "github.com/tair/parts-replenishment/internal/reorder/usecase/command"
	"github.com/tair/parts-replenishment/pkg/response"
)

// App holds everything main wires into the HTTP server, the scheduler and the consumer
type App struct {
	Catalog   *catalogHTTP.CatalogHandler
	Inventory *inventoryHTTP.InventoryHandler
	Orders    *orderHTTP.OrderHandler
	Reorder   *reorderHTTP.ReorderHandler
	Ledger    *inventorycmd.Ledger
	Scanner   *reordercmd.ScanHandler
}

// RegisterRoutes registers every API route
func (a *App) RegisterRoutes(router *mux.Router) {
	a.Catalog.RegisterRoutes(router)
	a.Inventory.RegisterRoutes(router)
	a.Orders.RegisterRoutes(router)
	a.Reorder.RegisterRoutes(router)
}

// RegisterHealthCheck registers the health check endpoint
func RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			response.JSON(w, http.StatusServiceUnavailable, response.Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}
		response.OK(w, http.StatusOK, "Replenishment service is healthy", nil)
	}).Methods("GET")
}
