package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/parts-replenishment/internal/catalog/usecase/command"
	"github.com/tair/parts-replenishment/internal/catalog/usecase/query"
	"github.com/tair/parts-replenishment/pkg/response"
)

// CatalogHandler handles HTTP requests for vendors and parts
type CatalogHandler struct {
	createVendor *command.CreateVendorHandler
	createPart   *command.CreatePartHandler
	getPart      *query.GetPartHandler
	listVendors  *query.ListVendorsHandler
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	createVendor *command.CreateVendorHandler,
	createPart *command.CreatePartHandler,
	getPart *query.GetPartHandler,
	listVendors *query.ListVendorsHandler,
) *CatalogHandler {
	return &CatalogHandler{
		createVendor: createVendor,
		createPart:   createPart,
		getPart:      getPart,
		listVendors:  listVendors,
	}
}

// CreateVendor handles POST /api/vendors
func (h *CatalogHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code         string `json:"code"`
		Name         string `json:"name"`
		ContactName  string `json:"contact_name"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
		LeadTimeDays int    `json:"lead_time_days"`
	}
	if !response.Decode(w, r, &req) {
		return
	}

	vendor, err := h.createVendor.Handle(r.Context(), command.CreateVendorCommand{
		Code:         req.Code,
		Name:         req.Name,
		ContactName:  req.ContactName,
		Email:        req.Email,
		Phone:        req.Phone,
		LeadTimeDays: req.LeadTimeDays,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusCreated, "Vendor created successfully", vendor)
}

// ListVendors handles GET /api/vendors
func (h *CatalogHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.listVendors.Handle(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "", vendors)
}

// CreatePart handles POST /api/parts
func (h *CatalogHandler) CreatePart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PartNumber      string          `json:"part_number"`
		Name            string          `json:"name"`
		Description     string          `json:"description"`
		UnitPrice       decimal.Decimal `json:"unit_price"`
		VendorID        *uint           `json:"vendor_id"`
		CategoryID      *uint           `json:"category_id"`
		InitialQuantity int             `json:"initial_quantity"`
		ReorderPoint    *int            `json:"reorder_point"`
		ReorderQuantity *int            `json:"reorder_quantity"`
		MaxQuantity     *int            `json:"max_quantity"`
		Location        string          `json:"location"`
	}
	if !response.Decode(w, r, &req) {
		return
	}

	part, inv, err := h.createPart.Handle(r.Context(), command.CreatePartCommand{
		PartNumber:      req.PartNumber,
		Name:            req.Name,
		Description:     req.Description,
		UnitPrice:       req.UnitPrice,
		VendorID:        req.VendorID,
		CategoryID:      req.CategoryID,
		InitialQuantity: req.InitialQuantity,
		ReorderPoint:    req.ReorderPoint,
		ReorderQuantity: req.ReorderQuantity,
		MaxQuantity:     req.MaxQuantity,
		Location:        req.Location,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusCreated, "Part created successfully", map[string]interface{}{
		"part":      part,
		"inventory": inv,
	})
}

// GetPart handles GET /api/parts/{id}
func (h *CatalogHandler) GetPart(w http.ResponseWriter, r *http.Request) {
	id, ok := response.PathID(w, r, "id")
	if !ok {
		return
	}
	part, err := h.getPart.Handle(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, "", part)
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/vendors", h.ListVendors).Methods("GET")
	router.HandleFunc("/api/vendors", h.CreateVendor).Methods("POST")
	router.HandleFunc("/api/parts", h.CreatePart).Methods("POST")
	router.HandleFunc("/api/parts/{id:[0-9]+}", h.GetPart).Methods("GET")
}
