package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/parts-replenishment/internal/reorder/usecase/command"
	"github.com/tair/parts-replenishment/internal/reorder/usecase/query"
	"github.com/tair/parts-replenishment/pkg/response"
)

// ReorderHandler handles HTTP requests for reorder alerts and suggestions
type ReorderHandler struct {
	processor *command.Processor
	queries   *query.Queries
}

// NewReorderHandler creates a new reorder handler
func NewReorderHandler(processor *command.Processor, queries *query.Queries) *ReorderHandler {
	return &ReorderHandler{processor: processor, queries: queries}
}

// ListAlerts handles GET /api/reorder/alerts
func (h *ReorderHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.queries.List.Handle(r.Context(), query.ListAlertsQuery{
		Status: r.URL.Query().Get("status"),
		Limit:  response.QueryInt(r, "limit", 50),
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "", alerts)
}

// PendingAlerts handles GET /api/reorder/alerts/pending
func (h *ReorderHandler) PendingAlerts(w http.ResponseWriter, r *http.Request) {
	pending, err := h.queries.Pending.Handle(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "", pending)
}

// Check handles POST /api/reorder/check
func (h *ReorderHandler) Check(w http.ResponseWriter, r *http.Request) {
	created, err := h.processor.Scan.Handle(r.Context(), command.TriggerManual)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "Reorder check completed", map[string]interface{}{
		"alerts_created": len(created),
		"alerts":         created,
	})
}

// ProcessAlert handles POST /api/reorder/alerts/{id}/process
func (h *ReorderHandler) ProcessAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := response.PathID(w, r, "id")
	if !ok {
		return
	}
	result, err := h.processor.Process.Handle(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "Order created from alert", result)
}

// DismissAlert handles POST /api/reorder/alerts/{id}/dismiss
func (h *ReorderHandler) DismissAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := response.PathID(w, r, "id")
	if !ok {
		return
	}
	alert, err := h.processor.Dismiss.Handle(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "Alert dismissed", alert)
}

// ProcessAll handles POST /api/reorder/process-all
func (h *ReorderHandler) ProcessAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.processor.ProcessAll.Handle(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "Pending alerts processed", result)
}

// Suggestions handles GET /api/reorder/suggestions
func (h *ReorderHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	report, err := h.queries.Suggestions.Handle(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "", report)
}

// CreateOrders handles POST /api/reorder/create-orders. An empty body orders for every vendor.
func (h *ReorderHandler) CreateOrders(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VendorIDs []uint `json:"vendor_ids"`
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			response.BadRequest(w, "Invalid request body")
			return
		}
	}

	result, err := h.processor.VendorOrders.Handle(r.Context(), req.VendorIDs)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusCreated, "Vendor orders created", result)
}

// RegisterRoutes registers all reorder routes
func (h *ReorderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/reorder/alerts", h.ListAlerts).Methods("GET")
	router.HandleFunc("/api/reorder/alerts/pending", h.PendingAlerts).Methods("GET")
	router.HandleFunc("/api/reorder/alerts/{id:[0-9]+}/process", h.ProcessAlert).Methods("POST")
	router.HandleFunc("/api/reorder/alerts/{id:[0-9]+}/dismiss", h.DismissAlert).Methods("POST")
	router.HandleFunc("/api/reorder/check", h.Check).Methods("POST")
	router.HandleFunc("/api/reorder/process-all", h.ProcessAll).Methods("POST")
	router.HandleFunc("/api/reorder/suggestions", h.Suggestions).Methods("GET")
	router.HandleFunc("/api/reorder/create-orders", h.CreateOrders).Methods("POST")
}
