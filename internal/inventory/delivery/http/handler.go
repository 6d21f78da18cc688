package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/parts-replenishment/internal/inventory/domain"
	"github.com/tair/parts-replenishment/internal/inventory/usecase/command"
	"github.com/tair/parts-replenishment/internal/inventory/usecase/query"
	"github.com/tair/parts-replenishment/pkg/response"
)

// InventoryHandler handles HTTP requests for the inventory ledger
type InventoryHandler struct {
	ledger  *command.Ledger
	queries *query.Queries
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(ledger *command.Ledger, queries *query.Queries) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, queries: queries}
}

// ListInventory handles GET /api/inventory
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	inventories, err := h.queries.List.Handle(r.Context(), query.ListInventoryQuery{
		LowStockOnly: r.URL.Query().Get("low_stock") == "true",
		Location:     r.URL.Query().Get("location"),
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "", inventories)
}

// GetLowStock handles GET /api/inventory/low-stock
func (h *InventoryHandler) GetLowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.LowStock.Handle(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "", items)
}

// GetSummary handles GET /api/inventory/summary
func (h *InventoryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.queries.Summary.Handle(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "", summary)
}

// GetInventory handles GET /api/inventory/{part_id}
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	partID, ok := response.PathID(w, r, "part_id")
	if !ok {
		return
	}
	inventory, err := h.queries.Get.Handle(r.Context(), partID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "", inventory)
}

// UpdateSettings handles PUT /api/inventory/{part_id}
func (h *InventoryHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	partID, ok := response.PathID(w, r, "part_id")
	if !ok {
		return
	}
	var req domain.Settings
	if !response.Decode(w, r, &req) {
		return
	}

	inventory, err := h.ledger.UpdateSettings.Handle(r.Context(), command.UpdateSettingsCommand{PartID: partID, Settings: req})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "Inventory settings updated", inventory)
}

// Adjust handles POST /api/inventory/{part_id}/adjust
func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	partID, ok := response.PathID(w, r, "part_id")
	if !ok {
		return
	}
	var req struct {
		Quantity    int    `json:"quantity"`
		Reason      string `json:"reason"`
		PerformedBy string `json:"performed_by"`
	}
	if !response.Decode(w, r, &req) {
		return
	}

	result, err := h.ledger.Adjust.Handle(r.Context(), command.AdjustCommand{
		PartID:      partID,
		Delta:       req.Quantity,
		Reason:      req.Reason,
		PerformedBy: req.PerformedBy,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "Inventory adjusted", result)
}

// Receive handles POST /api/inventory/{part_id}/receive
func (h *InventoryHandler) Receive(w http.ResponseWriter, r *http.Request) {
	partID, ok := response.PathID(w, r, "part_id")
	if !ok {
		return
	}
	var req struct {
		Quantity    int    `json:"quantity"`
		OrderID     *uint  `json:"order_id"`
		PerformedBy string `json:"performed_by"`
	}
	if !response.Decode(w, r, &req) {
		return
	}

	result, err := h.ledger.Receive.Handle(r.Context(), command.ReceiveCommand{
		PartID:      partID,
		Quantity:    req.Quantity,
		OrderID:     req.OrderID,
		PerformedBy: req.PerformedBy,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "Inventory received", result)
}

// Ship handles POST /api/inventory/{part_id}/ship
func (h *InventoryHandler) Ship(w http.ResponseWriter, r *http.Request) {
	partID, ok := response.PathID(w, r, "part_id")
	if !ok {
		return
	}
	var req struct {
		Quantity    int    `json:"quantity"`
		Reason      string `json:"reason"`
		PerformedBy string `json:"performed_by"`
	}
	if !response.Decode(w, r, &req) {
		return
	}

	result, err := h.ledger.Ship.Handle(r.Context(), command.ShipCommand{
		PartID:      partID,
		Quantity:    req.Quantity,
		Reason:      req.Reason,
		PerformedBy: req.PerformedBy,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "Inventory shipped", result)
}

// Count handles POST /api/inventory/{part_id}/count
func (h *InventoryHandler) Count(w http.ResponseWriter, r *http.Request) {
	partID, ok := response.PathID(w, r, "part_id")
	if !ok {
		return
	}
	var req struct {
		ActualQuantity *int   `json:"actual_quantity"`
		PerformedBy    string `json:"performed_by"`
	}
	if !response.Decode(w, r, &req) {
		return
	}
	if req.ActualQuantity == nil {
		response.BadRequest(w, "actual_quantity is required")
		return
	}

	result, err := h.ledger.Count.Handle(r.Context(), command.CountCommand{
		PartID:         partID,
		ActualQuantity: *req.ActualQuantity,
		PerformedBy:    req.PerformedBy,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "Physical count recorded", result)
}

// ListLogs handles GET /api/inventory/{part_id}/logs
func (h *InventoryHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	partID, ok := response.PathID(w, r, "part_id")
	if !ok {
		return
	}
	page, err := h.queries.Logs.Handle(r.Context(), query.ListLogsQuery{
		PartID: partID,
		Limit:  response.QueryInt(r, "limit", 0),
		Offset: response.QueryInt(r, "offset", 0),
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "", page)
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/inventory", h.ListInventory).Methods("GET")
	router.HandleFunc("/api/inventory/low-stock", h.GetLowStock).Methods("GET")
	router.HandleFunc("/api/inventory/summary", h.GetSummary).Methods("GET")
	router.HandleFunc("/api/inventory/{part_id:[0-9]+}", h.GetInventory).Methods("GET")
	router.HandleFunc("/api/inventory/{part_id:[0-9]+}", h.UpdateSettings).Methods("PUT")
	router.HandleFunc("/api/inventory/{part_id:[0-9]+}/adjust", h.Adjust).Methods("POST")
	router.HandleFunc("/api/inventory/{part_id:[0-9]+}/receive", h.Receive).Methods("POST")
	router.HandleFunc("/api/inventory/{part_id:[0-9]+}/ship", h.Ship).Methods("POST")
	router.HandleFunc("/api/inventory/{part_id:[0-9]+}/count", h.Count).Methods("POST")
	router.HandleFunc("/api/inventory/{part_id:[0-9]+}/logs", h.ListLogs).Methods("GET")
}
