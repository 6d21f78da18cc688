package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for the replenishment service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListInventory godoc
// @Summary List inventory
// @Description List inventory rows, optionally only low stock or filtered by location substring
// @Tags Inventory
// @Produce json
// @Param low_stock query bool false "Only rows at or below their reorder point"
// @Param location query string false "Location substring"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/inventory [get]
func (h *InventoryHandler) ListInventoryDoc() {}

// AdjustInventory godoc
// @Summary Adjust stock
// @Description Apply a signed delta. Rejected if the result would be negative.
// @Tags Inventory
// @Accept json
// @Produce json
// @Param part_id path int true "Part ID"
// @Param request body object{quantity=int,reason=string,performed_by=string} true "Adjustment"
// @Success 200 {object} object{success=bool,message=string,data=object{inventory=object,log=object}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{part_id}/adjust [post]
func (h *InventoryHandler) AdjustDoc() {}

// ReceiveInventory godoc
// @Summary Receive stock
// @Tags Inventory
// @Accept json
// @Produce json
// @Param part_id path int true "Part ID"
// @Param request body object{quantity=int,order_id=int,performed_by=string} true "Receipt"
// @Success 200 {object} object{success=bool,message=string,data=object{inventory=object,log=object}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{part_id}/receive [post]
func (h *InventoryHandler) ReceiveDoc() {}

// ShipInventory godoc
// @Summary Ship or consume stock
// @Tags Inventory
// @Accept json
// @Produce json
// @Param part_id path int true "Part ID"
// @Param request body object{quantity=int,reason=string,performed_by=string} true "Shipment"
// @Success 200 {object} object{success=bool,message=string,data=object{inventory=object,log=object}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{part_id}/ship [post]
func (h *InventoryHandler) ShipDoc() {}

// CountInventory godoc
// @Summary Record a physical count
// @Tags Inventory
// @Accept json
// @Produce json
// @Param part_id path int true "Part ID"
// @Param request body object{actual_quantity=int,performed_by=string} true "Count"
// @Success 200 {object} object{success=bool,message=string,data=object{inventory=object,log=object,variance=int}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{part_id}/count [post]
func (h *InventoryHandler) CountDoc() {}

// ListInventoryLogs godoc
// @Summary Page through a part's audit trail
// @Tags Inventory
// @Produce json
// @Param part_id path int true "Part ID"
// @Param limit query int false "Page size (default 50, max 500)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} object{success=bool,data=object{data=[]object,total=int,limit=int,offset=int}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{part_id}/logs [get]
func (h *InventoryHandler) ListLogsDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *InventoryHandler) HealthCheckDoc() {}
