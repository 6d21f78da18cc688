package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/parts-replenishment/internal/order/domain"
	"github.com/tair/parts-replenishment/internal/order/usecase/command"
	"github.com/tair/parts-replenishment/internal/order/usecase/query"
	"github.com/tair/parts-replenishment/pkg/response"
)

// OrderHandler handles HTTP requests for purchase orders
type OrderHandler struct {
	lifecycle *command.Lifecycle
	queries   *query.Queries
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(lifecycle *command.Lifecycle, queries *query.Queries) *OrderHandler {
	return &OrderHandler{lifecycle: lifecycle, queries: queries}
}

type createOrderRequest struct {
	VendorID        uint            `json:"vendor_id"`
	Notes           string          `json:"notes"`
	ShippingAddress string          `json:"shipping_address"`
	Tax             decimal.Decimal `json:"tax"`
	Shipping        decimal.Decimal `json:"shipping"`
	IsAutoGenerated bool            `json:"is_auto_generated"`
	Items           []struct {
		PartID    uint             `json:"part_id"`
		Quantity  int              `json:"quantity"`
		UnitPrice *decimal.Decimal `json:"unit_price"`
		Notes     string           `json:"notes"`
	} `json:"items"`
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !response.Decode(w, r, &req) {
		return
	}

	cmd := command.CreateOrderCommand{
		VendorID:        req.VendorID,
		Notes:           req.Notes,
		ShippingAddress: req.ShippingAddress,
		Tax:             req.Tax,
		Shipping:        req.Shipping,
		IsAutoGenerated: req.IsAutoGenerated,
	}
	for _, item := range req.Items {
		unitPrice := item.UnitPrice
		// a zero override falls back to the part's price
		if unitPrice != nil && unitPrice.IsZero() {
			unitPrice = nil
		}
		cmd.Items = append(cmd.Items, command.ItemInput{
			PartID:    item.PartID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			Notes:     item.Notes,
		})
	}

	order, err := h.lifecycle.Create.Handle(r.Context(), cmd)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusCreated, "Order created successfully", order)
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	vendorID, _ := strconv.ParseUint(r.URL.Query().Get("vendor_id"), 10, 32)
	page, err := h.queries.List.Handle(r.Context(), query.ListOrdersQuery{
		Status:   r.URL.Query().Get("status"),
		VendorID: uint(vendorID),
		Page:     response.QueryInt(r, "page", 1),
		Limit:    response.QueryInt(r, "limit", 50),
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "", page)
}

// GetSummary handles GET /api/orders/summary
func (h *OrderHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.queries.Summary.Handle(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "", summary)
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := response.PathID(w, r, "id")
	if !ok {
		return
	}
	detail, err := h.queries.Get.Handle(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "", detail)
}

// UpdateStatus handles PATCH /api/orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := response.PathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Status         string `json:"status"`
		TrackingNumber string `json:"tracking_number"`
		PerformedBy    string `json:"performed_by"`
	}
	if !response.Decode(w, r, &req) {
		return
	}

	order, err := h.lifecycle.UpdateStatus.Handle(r.Context(), command.UpdateStatusCommand{
		OrderID:        id,
		Status:         domain.Status(req.Status),
		TrackingNumber: req.TrackingNumber,
		PerformedBy:    req.PerformedBy,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "Order status updated", order)
}

// DeleteOrder handles DELETE /api/orders/{id}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := response.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.lifecycle.Delete.Handle(r.Context(), id); err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "Order deleted successfully", nil)
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/orders", h.ListOrders).Methods("GET")
	router.HandleFunc("/api/orders", h.CreateOrder).Methods("POST")
	router.HandleFunc("/api/orders/summary", h.GetSummary).Methods("GET")
	router.HandleFunc("/api/orders/{id:[0-9]+}", h.GetOrder).Methods("GET")
	router.HandleFunc("/api/orders/{id:[0-9]+}", h.DeleteOrder).Methods("DELETE")
	router.HandleFunc("/api/orders/{id:[0-9]+}/status", h.UpdateStatus).Methods("PATCH")
}
